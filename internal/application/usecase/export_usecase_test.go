package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestExportUseCase(t *testing.T, archive *mockArchiveRepository) (*ExportUseCase, *mockExportRepository, *mockMailRelay) {
	t.Helper()
	exportRepo := new(mockExportRepository)
	relay := new(mockMailRelay)
	logger := zerolog.New(zerolog.NewTestWriter(t))

	var uc *ExportUseCase
	if archive != nil {
		uc = NewExportUseCase(exportRepo, relay, archive, "ETB", logger)
	} else {
		uc = NewExportUseCase(exportRepo, relay, nil, "ETB", logger)
	}
	uc.now = func() time.Time { return time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC) }
	return uc, exportRepo, relay
}

func transactionsSource() ReportSource {
	return ReportSource{
		Title:   "Transactions",
		Headers: []string{"Reference", "Amount", "Date"},
		Rows: []entity.ReportRow{
			entity.Record{"Reference": "AP1", "Amount": "ETB 100", "amount": 100, "date": "2024-05-01"},
			entity.Record{"Reference": "AP2", "Amount": "ETB 200", "amount": 200, "date": "2024-06-01"},
		},
		Summary: entity.Summary{
			{Label: "Total Transactions", Value: "2"},
			{Label: "Total Amount", Value: "ETB 300"},
		},
		Filename: "transactions-report.pdf",
	}
}

func mayRange() entity.DateRange {
	return NormalizeRange(date(2024, 5, 1), date(2024, 5, 31))
}

func TestPrepare_FiltersAndRecomputes(t *testing.T) {
	uc, _, _ := newTestExportUseCase(t, nil)

	req := uc.Prepare(transactionsSource(), mayRange())

	require.Len(t, req.Rows, 1)
	assert.Equal(t, "1", req.Summary[0].Value)
	assert.Equal(t, "ETB 100", req.Summary[1].Value)
	assert.True(t, req.DateRange.Bounded())
	assert.Equal(t, 2024, req.GeneratedAt.Year())
}

func TestPrepare_NoRangeKeepsSummary(t *testing.T) {
	uc, _, _ := newTestExportUseCase(t, nil)
	src := transactionsSource()

	req := uc.Prepare(src, entity.DateRange{})

	assert.Len(t, req.Rows, 2)
	assert.Equal(t, src.Summary, req.Summary)
	req.Summary[0].Value = "changed"
	assert.Equal(t, "2", src.Summary[0].Value)
}

func TestDownload_PDF(t *testing.T) {
	archive := new(mockArchiveRepository)
	uc, exportRepo, _ := newTestExportUseCase(t, archive)

	rendered := entity.RenderedReport{Reference: "RPT-1", Filename: "transactions.pdf", Format: entity.FormatPDF, Content: []byte("%PDF")}
	exportRepo.On("Render", mock.Anything, entity.FormatPDF, mock.MatchedBy(func(req entity.ReportRequest) bool {
		return len(req.Rows) == 1
	})).Return(rendered, nil).Once()
	archive.On("Store", mock.Anything, mock.AnythingOfType("entity.RenderedReport")).Return("s3://bucket/reports/x.pdf", nil).Once()

	report, err := uc.Download(context.Background(), transactionsSource(), mayRange(), entity.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "transactions-report.pdf", report.Filename)
	assert.Equal(t, entity.FormatPDF, report.Format)

	exportRepo.AssertExpectations(t)
	archive.AssertExpectations(t)
}

func TestDownload_PDFFallsBackToHTML(t *testing.T) {
	uc, exportRepo, _ := newTestExportUseCase(t, nil)

	exportRepo.On("Render", mock.Anything, entity.FormatPDF, mock.Anything).
		Return(entity.RenderedReport{}, errors.New("font missing")).Once()
	exportRepo.On("Render", mock.Anything, entity.FormatHTML, mock.Anything).
		Return(entity.RenderedReport{Filename: "transactions.html", Format: entity.FormatHTML, Content: []byte("<html>")}, nil).Once()

	report, err := uc.Download(context.Background(), transactionsSource(), entity.DateRange{}, entity.FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, entity.FormatHTML, report.Format)
	assert.Equal(t, "transactions-report.html", report.Filename)
	exportRepo.AssertExpectations(t)
}

func TestDownload_ArchiveFailureIsNotFatal(t *testing.T) {
	archive := new(mockArchiveRepository)
	uc, exportRepo, _ := newTestExportUseCase(t, archive)

	exportRepo.On("Render", mock.Anything, entity.FormatCSV, mock.Anything).
		Return(entity.RenderedReport{Filename: "t.csv", Format: entity.FormatCSV}, nil)
	archive.On("Store", mock.Anything, mock.Anything).Return("", errors.New("access denied"))

	_, err := uc.Download(context.Background(), transactionsSource(), entity.DateRange{}, entity.FormatCSV)
	assert.NoError(t, err)
}

func TestDownload_OtherFormatErrorsPropagate(t *testing.T) {
	uc, exportRepo, _ := newTestExportUseCase(t, nil)

	exportRepo.On("Render", mock.Anything, entity.FormatXLSX, mock.Anything).
		Return(entity.RenderedReport{}, errors.New("boom"))

	_, err := uc.Download(context.Background(), transactionsSource(), entity.DateRange{}, entity.FormatXLSX)
	assert.EqualError(t, err, "boom")
	exportRepo.AssertNotCalled(t, "Render", mock.Anything, entity.FormatHTML, mock.Anything)
}

func TestValidateEmailOptions(t *testing.T) {
	assert.ErrorIs(t, ValidateEmailOptions(EmailOptions{To: "   "}), types.ErrMissingRecipient)
	assert.ErrorIs(t, ValidateEmailOptions(EmailOptions{To: "not-an-address"}), types.ErrInvalidRecipient)
	assert.NoError(t, ValidateEmailOptions(EmailOptions{To: "finance@example.com"}))
}

func TestEmail_MissingRecipientSkipsNetwork(t *testing.T) {
	uc, exportRepo, relay := newTestExportUseCase(t, nil)

	ok := uc.Email(context.Background(), transactionsSource(), entity.DateRange{}, EmailOptions{})

	assert.False(t, ok)
	exportRepo.AssertNotCalled(t, "Render", mock.Anything, mock.Anything, mock.Anything)
	relay.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestEmail_BuildsRelayPayload(t *testing.T) {
	uc, exportRepo, relay := newTestExportUseCase(t, nil)

	exportRepo.On("Render", mock.Anything, entity.FormatHTML, mock.Anything).
		Return(entity.RenderedReport{Filename: "transactions.html", Format: entity.FormatHTML, Content: []byte("<html>report</html>")}, nil)
	relay.On("Submit", mock.Anything, entity.EmailRequest{
		To:      "finance@example.com",
		Subject: "Transactions Export",
		Message: "Please find attached the Transactions report.",
		HTMLAttachment: &entity.Attachment{
			Filename:    "transactions-report.html",
			Content:     "<html>report</html>",
			ContentType: "text/html",
		},
	}).Return(entity.EmailResult{Success: true, Demo: true}, nil).Once()

	ok := uc.Email(context.Background(), transactionsSource(), mayRange(), EmailOptions{To: " finance@example.com "})

	assert.True(t, ok)
	relay.AssertExpectations(t)
}

func TestEmail_RelayFailureReturnsFalse(t *testing.T) {
	uc, exportRepo, relay := newTestExportUseCase(t, nil)

	exportRepo.On("Render", mock.Anything, entity.FormatHTML, mock.Anything).
		Return(entity.RenderedReport{Format: entity.FormatHTML}, nil)
	relay.On("Submit", mock.Anything, mock.Anything).Return(entity.EmailResult{}, errors.New("connection refused"))

	assert.False(t, uc.Email(context.Background(), transactionsSource(), entity.DateRange{}, EmailOptions{To: "a@b.co"}))
}

func TestSendEmail_UnsuccessfulResult(t *testing.T) {
	uc, exportRepo, relay := newTestExportUseCase(t, nil)

	exportRepo.On("Render", mock.Anything, entity.FormatHTML, mock.Anything).
		Return(entity.RenderedReport{Format: entity.FormatHTML}, nil)
	relay.On("Submit", mock.Anything, mock.Anything).Return(entity.EmailResult{Success: false, Message: "quota"}, nil)

	_, err := uc.SendEmail(context.Background(), transactionsSource(), entity.DateRange{}, EmailOptions{To: "a@b.co", Subject: "Custom"})
	assert.ErrorIs(t, err, types.ErrRelayRejected)
}

func TestWriteFiles(t *testing.T) {
	uc, exportRepo, _ := newTestExportUseCase(t, nil)
	dir := t.TempDir()

	for _, f := range []entity.Format{entity.FormatCSV, entity.FormatJSON} {
		report := entity.RenderedReport{Format: f, Filename: "t." + f.Extension()}
		exportRepo.On("Render", mock.Anything, f, mock.Anything).Return(report, nil).Once()
		exportRepo.On("SaveToFile", report, "transactions", dir).Return(dir+"/transactions."+f.Extension(), nil).Once()
	}

	paths, err := uc.WriteFiles(context.Background(), transactionsSource(), entity.DateRange{},
		[]entity.Format{entity.FormatCSV, entity.FormatJSON}, "transactions", dir)
	require.NoError(t, err)
	assert.Equal(t, []string{dir + "/transactions.csv", dir + "/transactions.json"}, paths)
	exportRepo.AssertExpectations(t)
}

func TestWriteFiles_Error(t *testing.T) {
	uc, exportRepo, _ := newTestExportUseCase(t, nil)

	exportRepo.On("Render", mock.Anything, entity.FormatCSV, mock.Anything).Return(entity.RenderedReport{}, types.ErrUnsupportedFormat)

	_, err := uc.WriteFiles(context.Background(), transactionsSource(), entity.DateRange{},
		[]entity.Format{entity.FormatCSV}, "transactions", t.TempDir())
	assert.ErrorIs(t, err, types.ErrUnsupportedFormat)
}

package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
	"github.com/payethio/payethio-dashboard-go/internal/domain/repository"
	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ReportSource is the data an export action starts from, before any date filtering.
type ReportSource struct {
	Title   string
	Headers []string
	Rows    []entity.ReportRow
	Summary entity.Summary
	// DateExtractor reads the row date. Nil means RecordDate.
	DateExtractor DateExtractor
	// Filename is the suggested download name, e.g. "transactions-report.pdf".
	Filename string
}

// EmailOptions holds what the user typed in the email dialog.
type EmailOptions struct {
	To      string
	Subject string
	Message string
}

// ExportUseCase runs the export pipeline: filter, recompute summary, render, deliver.
type ExportUseCase struct {
	exportRepo  repository.ExportRepository
	mailRelay   repository.MailRelay
	archiveRepo repository.ArchiveRepository
	currency    string
	now         func() time.Time
	logger      zerolog.Logger
}

// NewExportUseCase creates a new export use case. archiveRepo may be nil.
func NewExportUseCase(
	exportRepo repository.ExportRepository,
	mailRelay repository.MailRelay,
	archiveRepo repository.ArchiveRepository,
	currency string,
	logger zerolog.Logger,
) *ExportUseCase {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &ExportUseCase{
		exportRepo:  exportRepo,
		mailRelay:   mailRelay,
		archiveRepo: archiveRepo,
		currency:    currency,
		now:         time.Now,
		logger:      logger,
	}
}

// Prepare applies the date range and recomputes the summary from the surviving rows.
// The summary is only recomputed when a range is active; otherwise the caller's
// precomputed values are kept.
func (uc *ExportUseCase) Prepare(src ReportSource, rng entity.DateRange) entity.ReportRequest {
	rows := FilterByDate(src.Rows, rng, src.DateExtractor)
	summary := src.Summary.Clone()
	if !rng.IsZero() {
		summary = RecomputeSummary(rows, src.Summary, uc.currency)
	}

	return entity.ReportRequest{
		Title:       src.Title,
		Headers:     src.Headers,
		Rows:        rows,
		Summary:     summary,
		DateRange:   rng,
		GeneratedAt: uc.now(),
	}
}

// Download renders the report for download. When the PDF path fails it falls back to
// the HTML document and swaps the .pdf extension of the suggested filename.
func (uc *ExportUseCase) Download(
	ctx context.Context,
	src ReportSource,
	rng entity.DateRange,
	format entity.Format,
) (entity.RenderedReport, error) {
	req := uc.Prepare(src, rng)

	report, err := uc.exportRepo.Render(ctx, format, req)
	if err != nil {
		if format != entity.FormatPDF || errors.Is(err, context.Canceled) {
			return entity.RenderedReport{}, err
		}
		uc.log(ctx).Warn().Err(err).Str("title", src.Title).Msg("PDF rendering failed, falling back to HTML")
		report, err = uc.exportRepo.Render(ctx, entity.FormatHTML, req)
		if err != nil {
			return entity.RenderedReport{}, err
		}
	}

	if src.Filename != "" {
		report.Filename = entity.SwapExtension(src.Filename, report.Format.Extension())
	}

	uc.archive(ctx, report)
	return report, nil
}

// ValidateEmailOptions checks the recipient before anything is rendered or sent.
func ValidateEmailOptions(opts EmailOptions) error {
	to := strings.TrimSpace(opts.To)
	if to == "" {
		return types.ErrMissingRecipient
	}
	if _, err := mail.ParseAddress(to); err != nil {
		return fmt.Errorf("%w: %s", types.ErrInvalidRecipient, to)
	}
	return nil
}

// BuildEmailRequest renders the HTML report and wraps it into a relay payload.
func (uc *ExportUseCase) BuildEmailRequest(
	ctx context.Context,
	src ReportSource,
	rng entity.DateRange,
	opts EmailOptions,
) (entity.EmailRequest, error) {
	if err := ValidateEmailOptions(opts); err != nil {
		return entity.EmailRequest{}, err
	}

	report, err := uc.exportRepo.Render(ctx, entity.FormatHTML, uc.Prepare(src, rng))
	if err != nil {
		return entity.EmailRequest{}, err
	}

	filename := report.Filename
	if src.Filename != "" {
		filename = entity.SwapExtension(src.Filename, entity.FormatHTML.Extension())
	}

	subject := strings.TrimSpace(opts.Subject)
	if subject == "" {
		subject = fmt.Sprintf("%s Export", src.Title)
	}
	message := strings.TrimSpace(opts.Message)
	if message == "" {
		message = fmt.Sprintf("Please find attached the %s report.", src.Title)
	}

	return entity.EmailRequest{
		To:      strings.TrimSpace(opts.To),
		Subject: subject,
		Message: message,
		HTMLAttachment: &entity.Attachment{
			Filename:    filename,
			Content:     string(report.Content),
			ContentType: "text/html",
		},
	}, nil
}

// SendEmail builds the payload and submits it to the mail relay.
func (uc *ExportUseCase) SendEmail(
	ctx context.Context,
	src ReportSource,
	rng entity.DateRange,
	opts EmailOptions,
) (entity.EmailResult, error) {
	req, err := uc.BuildEmailRequest(ctx, src, rng, opts)
	if err != nil {
		return entity.EmailResult{}, err
	}

	result, err := uc.mailRelay.Submit(ctx, req)
	if err != nil {
		return entity.EmailResult{}, err
	}
	if !result.Success {
		return result, fmt.Errorf("%w: %s", types.ErrRelayRejected, result.Message)
	}
	return result, nil
}

// Email is the fire-and-forget form of SendEmail: failures are logged and reported as false.
func (uc *ExportUseCase) Email(
	ctx context.Context,
	src ReportSource,
	rng entity.DateRange,
	opts EmailOptions,
) bool {
	result, err := uc.SendEmail(ctx, src, rng, opts)
	if err != nil {
		uc.log(ctx).Error().Err(err).Str("title", src.Title).Str("to", opts.To).Msg("Failed to send report email")
		return false
	}
	uc.log(ctx).Info().Str("title", src.Title).Str("to", opts.To).Bool("demo", result.Demo).Msg("Report email sent")
	return true
}

// WriteFiles renders every format concurrently and writes the files to dir. The
// returned paths follow the order of formats.
func (uc *ExportUseCase) WriteFiles(
	ctx context.Context,
	src ReportSource,
	rng entity.DateRange,
	formats []entity.Format,
	baseName string,
	dir string,
) ([]string, error) {
	req := uc.Prepare(src, rng)
	paths := make([]string, len(formats))

	g, gctx := errgroup.WithContext(ctx)
	for i, format := range formats {
		g.Go(func() error {
			report, err := uc.exportRepo.Render(gctx, format, req)
			if err != nil {
				return err
			}
			path, err := uc.exportRepo.SaveToFile(report, baseName, dir)
			if err != nil {
				return err
			}
			paths[i] = path
			uc.archive(gctx, report)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}

// --- Funções Auxiliares ---

func (uc *ExportUseCase) archive(ctx context.Context, report entity.RenderedReport) {
	if uc.archiveRepo == nil {
		return
	}
	location, err := uc.archiveRepo.Store(ctx, report)
	if err != nil {
		uc.log(ctx).Warn().Err(err).Str("reference", report.Reference).Msg("Could not archive report")
		return
	}
	uc.log(ctx).Debug().Str("reference", report.Reference).Str("location", location).Msg("Report archived")
}

// log prefere o logger da requisição; sem ele usa o logger do caso de uso.
func (uc *ExportUseCase) log(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &uc.logger
}

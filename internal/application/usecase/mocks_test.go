package usecase

import (
	"context"

	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

type mockExportRepository struct {
	mock.Mock
}

func (m *mockExportRepository) Render(ctx context.Context, format entity.Format, req entity.ReportRequest) (entity.RenderedReport, error) {
	args := m.Called(ctx, format, req)
	return args.Get(0).(entity.RenderedReport), args.Error(1)
}

func (m *mockExportRepository) SaveToFile(report entity.RenderedReport, baseName string, outputDir string) (string, error) {
	args := m.Called(report, baseName, outputDir)
	return args.String(0), args.Error(1)
}

func (m *mockExportRepository) Formats() []entity.Format {
	args := m.Called()
	return args.Get(0).([]entity.Format)
}

type mockMailRelay struct {
	mock.Mock
}

func (m *mockMailRelay) Submit(ctx context.Context, req entity.EmailRequest) (entity.EmailResult, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(entity.EmailResult), args.Error(1)
}

type mockArchiveRepository struct {
	mock.Mock
}

func (m *mockArchiveRepository) Store(ctx context.Context, report entity.RenderedReport) (string, error) {
	args := m.Called(ctx, report)
	return args.String(0), args.Error(1)
}

func (m *mockArchiveRepository) Identity(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

type mockSampleProvider struct {
	mock.Mock
}

func (m *mockSampleProvider) Transactions(ctx context.Context, userType entity.UserType) ([]entity.Transaction, error) {
	args := m.Called(ctx, userType)
	return args.Get(0).([]entity.Transaction), args.Error(1)
}

func (m *mockSampleProvider) Customers(ctx context.Context, userType entity.UserType) ([]entity.Customer, error) {
	args := m.Called(ctx, userType)
	return args.Get(0).([]entity.Customer), args.Error(1)
}

func (m *mockSampleProvider) Withdrawals(ctx context.Context, userType entity.UserType) ([]entity.Withdrawal, error) {
	args := m.Called(ctx, userType)
	return args.Get(0).([]entity.Withdrawal), args.Error(1)
}

func (m *mockSampleProvider) BalanceChanges(ctx context.Context, userType entity.UserType) ([]entity.BalanceChange, error) {
	args := m.Called(ctx, userType)
	return args.Get(0).([]entity.BalanceChange), args.Error(1)
}

func (m *mockSampleProvider) Funding(ctx context.Context, userType entity.UserType) ([]entity.FundingEntry, error) {
	args := m.Called(ctx, userType)
	return args.Get(0).([]entity.FundingEntry), args.Error(1)
}

func (m *mockSampleProvider) Balance(ctx context.Context, userType entity.UserType) (entity.Balance, error) {
	args := m.Called(ctx, userType)
	return args.Get(0).(entity.Balance), args.Error(1)
}

type mockSessionRepository struct {
	mock.Mock
}

func (m *mockSessionRepository) Create(ctx context.Context, session entity.Session) (entity.Session, error) {
	args := m.Called(ctx, session)
	if fn, ok := args.Get(0).(func(context.Context, entity.Session) entity.Session); ok {
		return fn(ctx, session), args.Error(1)
	}
	return args.Get(0).(entity.Session), args.Error(1)
}

func (m *mockSessionRepository) Get(ctx context.Context, token string) (entity.Session, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(entity.Session), args.Error(1)
}

func (m *mockSessionRepository) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

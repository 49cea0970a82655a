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

var testNow = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func newTestDashboard(t *testing.T) (*DashboardUseCase, *mockSampleProvider) {
	t.Helper()
	sample := new(mockSampleProvider)
	exporter := NewExportUseCase(new(mockExportRepository), new(mockMailRelay), nil, "ETB", zerolog.New(zerolog.NewTestWriter(t)))
	exporter.now = func() time.Time { return testNow }

	uc := NewDashboardUseCase(sample, exporter, nil, "ETB")
	uc.now = func() time.Time { return testNow }
	return uc, sample
}

func sampleTransactions() []entity.Transaction {
	return []entity.Transaction{
		{ID: 1, Status: "completed", Customer: "Abebe Kebede", Amount: 1500, PaymentMethod: "telebirr", Reference: "AP1", Timestamp: time.Date(2024, 5, 3, 9, 0, 0, 0, time.UTC)},
		{ID: 2, Status: "failed", Customer: "Sara Tesfaye", Amount: 250.5, PaymentMethod: "CBE Birr", Reference: "AP2", Timestamp: time.Date(2024, 6, 2, 9, 0, 0, 0, time.UTC)},
		{ID: 3, Status: "completed", Customer: "Hana Girma", Amount: 500, PaymentMethod: "Card", Reference: "AP3", Timestamp: time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)},
	}
}

func TestParseDataset(t *testing.T) {
	d, err := ParseDataset(" Withdrawals ")
	require.NoError(t, err)
	assert.Equal(t, DatasetWithdrawals, d)

	_, err = ParseDataset("invoices")
	assert.ErrorIs(t, err, types.ErrUnknownDataset)
}

func TestSource_Transactions(t *testing.T) {
	uc, sample := newTestDashboard(t)
	sample.On("Transactions", mock.Anything, entity.UserTypeDemo).Return(sampleTransactions(), nil)

	src, err := uc.Source(context.Background(), entity.UserTypeDemo, DatasetTransactions, TableFilter{})
	require.NoError(t, err)

	assert.Equal(t, "Transactions Report", src.Title)
	assert.Len(t, src.Headers, 8)
	require.Len(t, src.Rows, 3)
	assert.Equal(t, "ETB 1,500", src.Rows[0].Cell(3, "Amount"))
	assert.Equal(t, "Completed", src.Rows[0].Cell(0, "Status"))

	value, ok := src.Summary.Get("Total Amount")
	require.True(t, ok)
	assert.Equal(t, "ETB 2,250.5", value)
	value, _ = src.Summary.Get("Success Rate")
	assert.Equal(t, "66.7%", value)
}

func TestView_FiltersRecomputesAndPages(t *testing.T) {
	uc, sample := newTestDashboard(t)
	sample.On("Transactions", mock.Anything, entity.UserTypeDemo).Return(sampleTransactions(), nil)

	rng, err := ParseRange("2024-06-01", "2024-06-30")
	require.NoError(t, err)

	view, err := uc.View(context.Background(), entity.UserTypeDemo, DatasetTransactions, TableFilter{}, rng, 2, 1)
	require.NoError(t, err)

	assert.Equal(t, 2, view.Total)
	assert.Equal(t, 2, view.Pages)
	assert.Equal(t, 2, view.Page)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "Hana Girma", view.Rows[0][1])

	count, _ := view.Summary.Get("Total Transactions")
	amount, _ := view.Summary.Get("Total Amount")
	assert.Equal(t, "2", count)
	assert.Equal(t, "ETB 750.5", amount)
}

func TestView_WithdrawalTuples(t *testing.T) {
	uc, sample := newTestDashboard(t)
	sample.On("Withdrawals", mock.Anything, entity.UserTypeDemo).Return([]entity.Withdrawal{
		{ID: "WD001", Amount: 1000, Status: "completed", Bank: "CBE", Reference: "CAR1", Date: time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "WD002", Amount: 3000, Status: "pending", Bank: "DSH", Reference: "CAR2", Date: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "WD003", Amount: 9000, Status: "failed", Bank: "AWB", Reference: "CAR3", Date: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)},
	}, nil)

	rng, err := ParseRange("2024-05-01", "2024-05-31")
	require.NoError(t, err)

	view, err := uc.View(context.Background(), entity.UserTypeDemo, DatasetWithdrawals, TableFilter{}, rng, 1, 0)
	require.NoError(t, err)

	require.Len(t, view.Rows, 2)
	assert.Equal(t, []string{"WD001", "ETB 1,000", "CBE", "Completed", "2024-05-02", "CAR1"}, view.Rows[0])
	summary := func(label string) string {
		value, ok := view.Summary.Get(label)
		require.True(t, ok, label)
		return value
	}
	assert.Equal(t, "2", summary("Total Withdrawals"))
	assert.Equal(t, "ETB 10,000", summary("Total Amount"))
	assert.Equal(t, "ETB 1,000", summary("Total Withdrawn"))
	assert.Equal(t, "ETB 3,000", summary("Pending Amount"))

	// sem período, Total Withdrawn continua contando só as concluídas
	view, err = uc.View(context.Background(), entity.UserTypeDemo, DatasetWithdrawals, TableFilter{}, entity.DateRange{}, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, "3", summary("Total Withdrawals"))
	assert.Equal(t, "ETB 13,000", summary("Total Amount"))
	assert.Equal(t, "ETB 1,000", summary("Total Withdrawn"))
}

func TestView_WithdrawalSummaryIgnoresFailedInRange(t *testing.T) {
	uc, sample := newTestDashboard(t)
	sample.On("Withdrawals", mock.Anything, entity.UserTypeDemo).Return([]entity.Withdrawal{
		{ID: "WD001", Amount: 1000, Status: "completed", Bank: "CBE", Reference: "CAR1", Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "WD002", Amount: 9000, Status: "failed", Bank: "CBE", Reference: "CAR2", Date: time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)},
	}, nil)

	unfiltered, err := uc.View(context.Background(), entity.UserTypeDemo, DatasetWithdrawals, TableFilter{}, entity.DateRange{}, 1, 0)
	require.NoError(t, err)

	rng, err := ParseRange("2024-01-01", "2024-12-31")
	require.NoError(t, err)
	ranged, err := uc.View(context.Background(), entity.UserTypeDemo, DatasetWithdrawals, TableFilter{}, rng, 1, 0)
	require.NoError(t, err)

	before, _ := unfiltered.Summary.Get("Total Withdrawn")
	after, _ := ranged.Summary.Get("Total Withdrawn")
	assert.Equal(t, "ETB 1,000", before)
	assert.Equal(t, before, after)
}

func TestView_TransactionSearch(t *testing.T) {
	uc, sample := newTestDashboard(t)
	transactions := sampleTransactions()
	transactions[0].Email = "abebe@gmail.com"
	transactions[0].Phone = "+251911000001"
	transactions[1].BankReference = "CARXYZ1"
	sample.On("Transactions", mock.Anything, entity.UserTypeDemo).Return(transactions, nil)

	tests := []struct {
		name   string
		filter TableFilter
		want   []string
	}{
		{name: "no filter", filter: TableFilter{}, want: []string{"Abebe Kebede", "Sara Tesfaye", "Hana Girma"}},
		{name: "all fields by name", filter: TableFilter{Query: "HANA"}, want: []string{"Hana Girma"}},
		{name: "customer by email", filter: TableFilter{Query: "abebe@", Field: "customer"}, want: []string{"Abebe Kebede"}},
		{name: "customer by phone", filter: TableFilter{Query: "251911", Field: "customer"}, want: []string{"Abebe Kebede"}},
		{name: "amount", filter: TableFilter{Query: "250.5", Field: "amount"}, want: []string{"Sara Tesfaye"}},
		{name: "amount field ignores names", filter: TableFilter{Query: "hana", Field: "amount"}, want: []string{}},
		{name: "reference matches bank ref", filter: TableFilter{Query: "carxyz", Field: "reference"}, want: []string{"Sara Tesfaye"}},
		{name: "status", filter: TableFilter{Status: "Completed"}, want: []string{"Abebe Kebede", "Hana Girma"}},
		{name: "status all", filter: TableFilter{Status: "all"}, want: []string{"Abebe Kebede", "Sara Tesfaye", "Hana Girma"}},
		{name: "query and status", filter: TableFilter{Query: "AP", Field: "reference", Status: "failed"}, want: []string{"Sara Tesfaye"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			view, err := uc.View(context.Background(), entity.UserTypeDemo, DatasetTransactions, tt.filter, entity.DateRange{}, 1, 0)
			require.NoError(t, err)

			names := make([]string, 0, len(view.Rows))
			for _, row := range view.Rows {
				names = append(names, row[1])
			}
			assert.Equal(t, tt.want, names)
			count, _ := view.Summary.Get("Total Transactions")
			assert.Equal(t, FormatCount(len(tt.want)), count)
		})
	}
}

func TestView_CustomerFilters(t *testing.T) {
	uc, sample := newTestDashboard(t)
	sample.On("Customers", mock.Anything, entity.UserTypeDemo).Return([]entity.Customer{
		{ID: 1, FullName: "Abebe Kebede", Email: "abebe@gmail.com", Phone: "+251911000001", Status: "active", RiskLevel: "low", TotalSpent: 1000, JoinDate: testNow},
		{ID: 2, FullName: "Sara Tesfaye", Email: "sara@gmail.com", Phone: "+251922000002", Status: "inactive", RiskLevel: "high", TotalSpent: 300, JoinDate: testNow},
		{ID: 3, FullName: "Hana Girma", Email: "hana@gmail.com", Phone: "+251933000003", Status: "active", RiskLevel: "high", TotalSpent: 700, JoinDate: testNow},
	}, nil)

	view, err := uc.View(context.Background(), entity.UserTypeDemo, DatasetCustomers, TableFilter{Status: "active", Risk: "HIGH"}, entity.DateRange{}, 1, 0)
	require.NoError(t, err)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "Hana Girma", view.Rows[0][0])
	total, _ := view.Summary.Get("Total Customers")
	revenue, _ := view.Summary.Get("Total Revenue")
	assert.Equal(t, "1", total)
	assert.Equal(t, "ETB 700", revenue)

	view, err = uc.View(context.Background(), entity.UserTypeDemo, DatasetCustomers, TableFilter{Query: "251922", Field: "phone"}, entity.DateRange{}, 1, 0)
	require.NoError(t, err)
	require.Len(t, view.Rows, 1)
	assert.Equal(t, "Sara Tesfaye", view.Rows[0][0])

	view, err = uc.View(context.Background(), entity.UserTypeDemo, DatasetCustomers, TableFilter{Query: "gmail", Field: "name"}, entity.DateRange{}, 1, 0)
	require.NoError(t, err)
	assert.Empty(t, view.Rows)
}

func TestSource_InvalidFilter(t *testing.T) {
	uc, _ := newTestDashboard(t)

	tests := []struct {
		name    string
		dataset Dataset
		filter  TableFilter
	}{
		{name: "unknown field", dataset: DatasetTransactions, filter: TableFilter{Query: "x", Field: "bank"}},
		{name: "customer field on customers", dataset: DatasetCustomers, filter: TableFilter{Field: "customer"}},
		{name: "unknown status", dataset: DatasetTransactions, filter: TableFilter{Status: "refunded"}},
		{name: "risk outside customers", dataset: DatasetTransactions, filter: TableFilter{Risk: "high"}},
		{name: "unknown risk", dataset: DatasetCustomers, filter: TableFilter{Risk: "extreme"}},
		{name: "search on balance", dataset: DatasetBalance, filter: TableFilter{Query: "fee"}},
		{name: "status on funds", dataset: DatasetFunds, filter: TableFilter{Status: "completed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Source(context.Background(), entity.UserTypeDemo, tt.dataset, tt.filter)
			assert.ErrorIs(t, err, types.ErrInvalidFilter)
		})
	}
}

func TestView_RegisteredUserIsEmpty(t *testing.T) {
	uc, sample := newTestDashboard(t)
	sample.On("BalanceChanges", mock.Anything, entity.UserTypeRegistered).Return([]entity.BalanceChange{}, nil)
	sample.On("Balance", mock.Anything, entity.UserTypeRegistered).Return(entity.Balance{}, nil)

	view, err := uc.View(context.Background(), entity.UserTypeRegistered, DatasetBalance, TableFilter{}, entity.DateRange{}, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, view.Rows)
	assert.Equal(t, 1, view.Pages)
	total, _ := view.Summary.Get("Total Balance")
	assert.Equal(t, "ETB 0", total)
}

func TestSource_ProviderError(t *testing.T) {
	uc, sample := newTestDashboard(t)
	sample.On("Funding", mock.Anything, entity.UserTypeDemo).Return([]entity.FundingEntry(nil), errors.New("boom"))

	_, err := uc.Source(context.Background(), entity.UserTypeDemo, DatasetFunds, TableFilter{})
	assert.EqualError(t, err, "boom")

	_, err = uc.Source(context.Background(), entity.UserTypeDemo, Dataset("nope"), TableFilter{})
	assert.ErrorIs(t, err, types.ErrUnknownDataset)
}

func TestOverview(t *testing.T) {
	uc, sample := newTestDashboard(t)
	sample.On("Transactions", mock.Anything, entity.UserTypeDemo).Return(sampleTransactions(), nil)
	sample.On("Customers", mock.Anything, entity.UserTypeDemo).Return(make([]entity.Customer, 4), nil)
	sample.On("Balance", mock.Anything, entity.UserTypeDemo).Return(entity.Balance{Total: 10, Available: 8, Pending: 2}, nil)

	overview, err := uc.Overview(context.Background(), entity.UserTypeDemo)
	require.NoError(t, err)

	assert.Equal(t, 2000.0, overview.TotalRevenue)
	assert.Equal(t, 3, overview.TotalTransactions)
	assert.Equal(t, 4, overview.TotalCustomers)
	assert.Equal(t, 1000.0, overview.AverageTicket)
	assert.InDelta(t, 66.67, overview.SuccessRate, 0.01)

	require.Len(t, overview.RevenueTrend, trendMonths)
	assert.Equal(t, "Jan 2024", overview.RevenueTrend[0].Month)
	assert.Equal(t, entity.MonthlyAmount{Month: "May 2024", Amount: 1500}, overview.RevenueTrend[4])
	assert.Equal(t, entity.MonthlyAmount{Month: "Jun 2024", Amount: 500}, overview.RevenueTrend[5])
}

package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/pterm/pterm"

	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
	"github.com/payethio/payethio-dashboard-go/internal/domain/repository"
	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
)

// Dataset names one exportable table of the dashboard.
type Dataset string

const (
	DatasetTransactions Dataset = "transactions"
	DatasetCustomers    Dataset = "customers"
	DatasetWithdrawals  Dataset = "withdrawals"
	DatasetBalance      Dataset = "balance"
	DatasetFunds        Dataset = "funds"
)

// Datasets lists every dataset in menu order.
var Datasets = []Dataset{DatasetTransactions, DatasetCustomers, DatasetWithdrawals, DatasetBalance, DatasetFunds}

// ParseDataset resolves a dataset name, case-insensitively.
func ParseDataset(name string) (Dataset, error) {
	d := Dataset(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Datasets {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("%w: %q", types.ErrUnknownDataset, name)
}

const (
	displayDateLayout = "Jan 2, 2006"
	withdrawalDateCol = 4
	trendMonths       = 6
)

// DatasetView is one page of a dataset as shown by the dashboard tables.
type DatasetView struct {
	Dataset Dataset        `json:"dataset"`
	Title   string         `json:"title"`
	Headers []string       `json:"headers"`
	Rows    [][]string     `json:"rows"`
	Summary entity.Summary `json:"summary"`
	Total   int            `json:"total"`
	Page    int            `json:"page"`
	PerPage int            `json:"per_page"`
	Pages   int            `json:"pages"`
}

// DashboardUseCase turns sample business data into dashboard views and report sources.
type DashboardUseCase struct {
	sampleRepo repository.SampleDataProvider
	exporter   *ExportUseCase
	console    types.ConsoleInterface
	currency   string
	now        func() time.Time
}

// NewDashboardUseCase creates a new dashboard use case. console may be nil when the
// use case only serves HTTP requests.
func NewDashboardUseCase(
	sampleRepo repository.SampleDataProvider,
	exporter *ExportUseCase,
	console types.ConsoleInterface,
	currency string,
) *DashboardUseCase {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &DashboardUseCase{
		sampleRepo: sampleRepo,
		exporter:   exporter,
		console:    console,
		currency:   currency,
		now:        time.Now,
	}
}

// Source builds the report source of dataset for the given user type, keeping only
// the rows that pass filter. The summary describes the filtered rows.
func (uc *DashboardUseCase) Source(ctx context.Context, userType entity.UserType, dataset Dataset, filter TableFilter) (ReportSource, error) {
	if err := filter.Validate(dataset); err != nil {
		return ReportSource{}, err
	}
	filter = filter.normalize()

	switch dataset {
	case DatasetTransactions:
		return uc.transactionsSource(ctx, userType, filter)
	case DatasetCustomers:
		return uc.customersSource(ctx, userType, filter)
	case DatasetWithdrawals:
		return uc.withdrawalsSource(ctx, userType, filter)
	case DatasetBalance:
		return uc.balanceSource(ctx, userType)
	case DatasetFunds:
		return uc.fundsSource(ctx, userType)
	default:
		return ReportSource{}, fmt.Errorf("%w: %q", types.ErrUnknownDataset, dataset)
	}
}

// View filters a dataset and returns the requested page. page starts at 1; perPage <= 0
// returns every row.
func (uc *DashboardUseCase) View(
	ctx context.Context,
	userType entity.UserType,
	dataset Dataset,
	filter TableFilter,
	rng entity.DateRange,
	page, perPage int,
) (DatasetView, error) {
	src, err := uc.Source(ctx, userType, dataset, filter)
	if err != nil {
		return DatasetView{}, err
	}
	req := uc.exporter.Prepare(src, rng)
	rows := req.DisplayRows()

	view := DatasetView{
		Dataset: dataset,
		Title:   src.Title,
		Headers: src.Headers,
		Summary: req.Summary,
		Total:   len(rows),
		Page:    1,
		PerPage: perPage,
		Pages:   1,
	}

	if perPage <= 0 {
		view.PerPage = len(rows)
		view.Rows = rows
		return view, nil
	}

	view.Pages = (len(rows) + perPage - 1) / perPage
	if view.Pages == 0 {
		view.Pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > view.Pages {
		page = view.Pages
	}
	view.Page = page

	start := (page - 1) * perPage
	end := start + perPage
	if end > len(rows) {
		end = len(rows)
	}
	view.Rows = rows[start:end]
	return view, nil
}

// Overview computes the KPIs of the dashboard home page.
func (uc *DashboardUseCase) Overview(ctx context.Context, userType entity.UserType) (entity.Overview, error) {
	transactions, err := uc.sampleRepo.Transactions(ctx, userType)
	if err != nil {
		return entity.Overview{}, err
	}
	customers, err := uc.sampleRepo.Customers(ctx, userType)
	if err != nil {
		return entity.Overview{}, err
	}
	balance, err := uc.sampleRepo.Balance(ctx, userType)
	if err != nil {
		return entity.Overview{}, err
	}

	overview := entity.Overview{
		TotalCustomers:    len(customers),
		TotalTransactions: len(transactions),
		Balance:           balance,
		RevenueTrend:      uc.revenueTrend(transactions),
	}

	completed := 0
	for _, t := range transactions {
		if t.Status == "completed" {
			completed++
			overview.TotalRevenue += t.Amount
		}
	}
	if completed > 0 {
		overview.AverageTicket = overview.TotalRevenue / float64(completed)
	}
	if len(transactions) > 0 {
		overview.SuccessRate = float64(completed) / float64(len(transactions)) * 100
	}
	return overview, nil
}

// RunOverview imprime os indicadores do painel e a tendência de receita no console.
func (uc *DashboardUseCase) RunOverview(ctx context.Context, userType entity.UserType) error {
	status := uc.console.Status("Loading dashboard overview...")
	overview, err := uc.Overview(ctx, userType)
	status.Stop()
	if err != nil {
		return err
	}

	table := uc.console.CreateTable()
	table.AddColumn("Metric")
	table.AddColumn("Value")
	table.AddRow("Total Revenue", FormatCurrency(uc.currency, overview.TotalRevenue))
	table.AddRow("Total Transactions", FormatCount(overview.TotalTransactions))
	table.AddRow("Total Customers", FormatCount(overview.TotalCustomers))
	table.AddRow("Average Ticket", FormatCurrency(uc.currency, overview.AverageTicket))
	table.AddRow("Success Rate", fmt.Sprintf("%.1f%%", overview.SuccessRate))
	table.AddRow("Total Balance", FormatCurrency(uc.currency, overview.Balance.Total))
	table.AddRow("Available Balance", FormatCurrency(uc.currency, overview.Balance.Available))
	table.AddRow("Pending Balance", FormatCurrency(uc.currency, overview.Balance.Pending))
	uc.console.Print(table.Render())

	months := make([]types.MonthlyAmount, 0, len(overview.RevenueTrend))
	for _, m := range overview.RevenueTrend {
		months = append(months, types.MonthlyAmount{Month: m.Month, Amount: m.Amount})
	}
	uc.console.DisplayTrendBars("Revenue trend", uc.currency, months)
	return nil
}

// RunExport executa o comando export: filtra, renderiza e grava os relatórios pedidos,
// e opcionalmente os envia por email.
func (uc *DashboardUseCase) RunExport(ctx context.Context, args *types.ExportArgs) error {
	dataset, err := ParseDataset(args.Dataset)
	if err != nil {
		return err
	}
	rng, err := ParseRange(args.From, args.To)
	if err != nil {
		return err
	}

	reportTypes := args.ReportType
	if len(reportTypes) == 0 {
		reportTypes = []string{string(entity.FormatPDF)}
	}
	formats := make([]entity.Format, 0, len(reportTypes))
	for _, rt := range reportTypes {
		format, ok := entity.ParseFormat(rt)
		if !ok {
			return fmt.Errorf("%w: %q", types.ErrUnsupportedFormat, rt)
		}
		formats = append(formats, format)
	}

	userType := entity.UserType(args.UserType)
	if userType == "" {
		userType = entity.UserTypeDemo
	}

	filter := TableFilter{Query: args.Query, Field: args.Field, Status: args.Status, Risk: args.Risk}
	src, err := uc.Source(ctx, userType, dataset, filter)
	if err != nil {
		return err
	}

	if args.Preview {
		uc.previewReport(src, rng)
	}

	baseName := args.ReportName
	if baseName == "" {
		baseName = strings.TrimSuffix(src.Filename, ".pdf")
	}

	status := uc.console.Status(fmt.Sprintf("Rendering %s report...", dataset))
	paths, err := uc.exporter.WriteFiles(ctx, src, rng, formats, baseName, args.Dir)
	status.Stop()
	if err != nil {
		uc.console.LogError("Failed to export %s report: %s", dataset, err)
		return err
	}
	for i, path := range paths {
		uc.console.LogSuccess("Successfully exported to %s: %s", strings.ToUpper(string(formats[i])), path)
	}

	if args.Email != "" {
		opts := EmailOptions{To: args.Email, Subject: args.Subject, Message: args.Message}
		if err := ValidateEmailOptions(opts); err != nil {
			uc.console.LogError("%s", err)
			return err
		}
		status := uc.console.Status(fmt.Sprintf("Sending report to %s...", args.Email))
		sent := uc.exporter.Email(ctx, src, rng, opts)
		status.Stop()
		if !sent {
			uc.console.LogError("Failed to send email. Please try again.")
			return types.ErrRelayRejected
		}
		uc.console.LogSuccess("Email sent successfully to %s", args.Email)
	}
	return nil
}

// previewReport mostra no console as primeiras linhas do relatório filtrado.
func (uc *DashboardUseCase) previewReport(src ReportSource, rng entity.DateRange) {
	const previewRows = 10
	req := uc.exporter.Prepare(src, rng)

	for _, item := range req.Summary {
		uc.console.LogInfo("%s: %s", item.Label, item.Value)
	}

	table := uc.console.CreateTable()
	for _, h := range req.Headers {
		table.AddColumn(h)
	}
	rows := req.DisplayRows()
	for i, row := range rows {
		if i == previewRows {
			break
		}
		cells := make([]interface{}, len(row))
		for j, c := range row {
			cells[j] = c
		}
		table.AddRow(cells...)
	}
	uc.console.Print(table.Render())
	if len(rows) > previewRows {
		uc.console.Println(pterm.FgGray.Sprintf("... and %d more rows", len(rows)-previewRows))
	}
}

// --- Fontes de relatório por dataset ---

func (uc *DashboardUseCase) transactionsSource(ctx context.Context, userType entity.UserType, filter TableFilter) (ReportSource, error) {
	all, err := uc.sampleRepo.Transactions(ctx, userType)
	if err != nil {
		return ReportSource{}, err
	}
	transactions := make([]entity.Transaction, 0, len(all))
	for _, t := range all {
		if filter.matchTransaction(t) {
			transactions = append(transactions, t)
		}
	}

	var total float64
	completed := 0
	rows := make([]entity.ReportRow, 0, len(transactions))
	for _, t := range transactions {
		total += t.Amount
		if t.Status == "completed" {
			completed++
		}
		rows = append(rows, entity.Record{
			"Status":       titleCase(t.Status),
			"Customer":     t.Customer,
			"Phone":        t.Phone,
			"Amount":       FormatCurrency(uc.currency, t.Amount),
			"Payment":      t.PaymentMethod,
			"PayEthio Ref": t.Reference,
			"Bank Ref":     t.BankReference,
			"Date":         t.Timestamp.Format(displayDateLayout),
			"amount":       t.Amount,
			"timestamp":    t.Timestamp,
		})
	}

	successRate := 0.0
	if len(transactions) > 0 {
		successRate = float64(completed) / float64(len(transactions)) * 100
	}

	return ReportSource{
		Title:   "Transactions Report",
		Headers: []string{"Status", "Customer", "Phone", "Amount", "Payment", "PayEthio Ref", "Bank Ref", "Date"},
		Rows:    rows,
		Summary: entity.Summary{
			{Label: "Total Transactions", Value: FormatCount(len(transactions))},
			{Label: "Total Amount", Value: FormatCurrency(uc.currency, total)},
			{Label: "Success Rate", Value: fmt.Sprintf("%.1f%%", successRate)},
		},
		Filename: "payethio-transactions.pdf",
	}, nil
}

func (uc *DashboardUseCase) customersSource(ctx context.Context, userType entity.UserType, filter TableFilter) (ReportSource, error) {
	all, err := uc.sampleRepo.Customers(ctx, userType)
	if err != nil {
		return ReportSource{}, err
	}
	customers := make([]entity.Customer, 0, len(all))
	for _, c := range all {
		if filter.matchCustomer(c) {
			customers = append(customers, c)
		}
	}

	var revenue float64
	active := 0
	rows := make([]entity.ReportRow, 0, len(customers))
	for _, c := range customers {
		revenue += c.TotalSpent
		if c.Status == "active" {
			active++
		}
		rows = append(rows, entity.Record{
			"Name":         c.FullName,
			"Email":        c.Email,
			"Phone":        c.Phone,
			"Status":       titleCase(c.Status),
			"Total Spent":  FormatCurrency(uc.currency, c.TotalSpent),
			"Transactions": FormatCount(c.TransactionCount),
			"Join Date":    c.JoinDate.Format(displayDateLayout),
			"date":         c.JoinDate,
		})
	}

	avg := 0.0
	if len(customers) > 0 {
		avg = revenue / float64(len(customers))
	}

	return ReportSource{
		Title:   "Customers Report",
		Headers: []string{"Name", "Email", "Phone", "Status", "Total Spent", "Transactions", "Join Date"},
		Rows:    rows,
		Summary: entity.Summary{
			{Label: "Total Customers", Value: FormatCount(len(customers)), Kind: entity.SummaryKindCount},
			{Label: "Active Customers", Value: FormatCount(active)},
			{Label: "Total Revenue", Value: FormatCurrency(uc.currency, revenue)},
			{Label: "Avg Customer Value", Value: FormatCurrency(uc.currency, float64(int64(avg)))},
		},
		Filename: "payethio-customers.pdf",
	}, nil
}

func (uc *DashboardUseCase) withdrawalsSource(ctx context.Context, userType entity.UserType, filter TableFilter) (ReportSource, error) {
	all, err := uc.sampleRepo.Withdrawals(ctx, userType)
	if err != nil {
		return ReportSource{}, err
	}
	withdrawals := make([]entity.Withdrawal, 0, len(all))
	for _, w := range all {
		if filter.matchWithdrawal(w) {
			withdrawals = append(withdrawals, w)
		}
	}

	var amount, withdrawn, pending float64
	rows := make([]entity.ReportRow, 0, len(withdrawals))
	for _, w := range withdrawals {
		amount += w.Amount
		switch w.Status {
		case "completed":
			withdrawn += w.Amount
		case "pending", "processing":
			pending += w.Amount
		}
		rows = append(rows, entity.Tuple{
			w.ID,
			FormatCurrency(uc.currency, w.Amount),
			w.Bank,
			titleCase(w.Status),
			w.Date.Format("2006-01-02"),
			w.Reference,
		})
	}

	return ReportSource{
		Title:   "Withdrawals Report",
		Headers: []string{"ID", "Amount", "Bank", "Status", "Date", "Reference"},
		Rows:    rows,
		Summary: entity.Summary{
			{Label: "Total Withdrawals", Value: FormatCount(len(withdrawals)), Kind: entity.SummaryKindCount},
			// soma de todas as linhas, recalculada com o período
			{Label: "Total Amount", Value: FormatCurrency(uc.currency, amount), Kind: entity.SummaryKindAmount},
			// só concluídos e pendentes, não recalculados com o período
			{Label: "Total Withdrawn", Value: FormatCurrency(uc.currency, withdrawn)},
			{Label: "Pending Amount", Value: FormatCurrency(uc.currency, pending)},
		},
		DateExtractor: TupleDateAt(withdrawalDateCol),
		Filename:      "payethio-withdrawals.pdf",
	}, nil
}

func (uc *DashboardUseCase) balanceSource(ctx context.Context, userType entity.UserType) (ReportSource, error) {
	changes, err := uc.sampleRepo.BalanceChanges(ctx, userType)
	if err != nil {
		return ReportSource{}, err
	}
	balance, err := uc.sampleRepo.Balance(ctx, userType)
	if err != nil {
		return ReportSource{}, err
	}

	rows := make([]entity.ReportRow, 0, len(changes))
	for _, c := range changes {
		signed := c.Amount
		label := "Credit"
		if c.Type != "credit" {
			signed = -c.Amount
			label = "Debit"
		}
		rows = append(rows, entity.Record{
			"Type":        label,
			"Description": c.Description,
			"Amount":      FormatCurrency(uc.currency, signed),
			"Date":        c.Date.Format(displayDateLayout),
			"amount":      signed,
			"date":        c.Date,
		})
	}

	return ReportSource{
		Title:   "Balance Changes Report",
		Headers: []string{"Type", "Description", "Amount", "Date"},
		Rows:    rows,
		Summary: entity.Summary{
			{Label: "Total Balance", Value: FormatCurrency(uc.currency, balance.Total)},
			{Label: "Available Balance", Value: FormatCurrency(uc.currency, balance.Available)},
			{Label: "Total Changes", Value: FormatCount(len(changes)), Kind: entity.SummaryKindCount},
		},
		Filename: "payethio-balance-changes.pdf",
	}, nil
}

func (uc *DashboardUseCase) fundsSource(ctx context.Context, userType entity.UserType) (ReportSource, error) {
	entries, err := uc.sampleRepo.Funding(ctx, userType)
	if err != nil {
		return ReportSource{}, err
	}

	var total float64
	rows := make([]entity.ReportRow, 0, len(entries))
	for _, e := range entries {
		total += e.Amount
		rows = append(rows, entity.Record{
			"Month":  e.Month.Format("Jan 2006"),
			"Source": e.Source,
			"Amount": FormatCurrency(uc.currency, e.Amount),
			"amount": e.Amount,
			"date":   e.Month,
		})
	}

	return ReportSource{
		Title:   "Funding Report",
		Headers: []string{"Month", "Source", "Amount"},
		Rows:    rows,
		Summary: entity.Summary{
			{Label: "Funding Entries", Value: FormatCount(len(entries)), Kind: entity.SummaryKindCount},
			{Label: "Total Funding", Value: FormatCurrency(uc.currency, total), Kind: entity.SummaryKindAmount},
		},
		Filename: "payethio-funds.pdf",
	}, nil
}

// revenueTrend soma a receita concluída dos últimos meses, do mais antigo ao mais recente.
func (uc *DashboardUseCase) revenueTrend(transactions []entity.Transaction) []entity.MonthlyAmount {
	now := uc.now()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -(trendMonths - 1), 0)

	totals := make(map[time.Time]float64, trendMonths)
	for i := 0; i < trendMonths; i++ {
		totals[first.AddDate(0, i, 0)] = 0
	}
	for _, t := range transactions {
		if t.Status != "completed" {
			continue
		}
		ts := t.Timestamp.In(now.Location())
		month := time.Date(ts.Year(), ts.Month(), 1, 0, 0, 0, 0, now.Location())
		if _, ok := totals[month]; ok {
			totals[month] += t.Amount
		}
	}

	months := make([]time.Time, 0, len(totals))
	for m := range totals {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	trend := make([]entity.MonthlyAmount, 0, len(months))
	for _, m := range months {
		trend = append(trend, entity.MonthlyAmount{Month: m.Format("Jan 2006"), Amount: totals[m]})
	}
	return trend
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

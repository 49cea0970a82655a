package sample

import (
	"context"
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
	"github.com/payethio/payethio-dashboard-go/internal/domain/repository"
	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
)

var firstNames = []string{
	"Abebe", "Almaz", "Bekele", "Biniam", "Dawit", "Eden", "Elsa", "Ermias", "Feven", "Genet",
	"Girma", "Hana", "Henok", "Hirut", "Kalkidan", "Kebede", "Lidya", "Meron", "Mesfin", "Mulugeta",
	"Nahom", "Rahel", "Samuel", "Sara", "Selam", "Solomon", "Tewodros", "Tigist", "Yonas", "Zewdu",
}

var lastNames = []string{
	"Alemu", "Assefa", "Ayele", "Bekele", "Demissie", "Desta", "Gebre", "Girma", "Haile", "Kassa",
	"Kebede", "Lemma", "Mekonnen", "Mengistu", "Negash", "Tadesse", "Tesfaye", "Wolde", "Worku", "Yohannes",
}

var paymentMethods = []string{"telebirr", "CBE Birr", "M-Pesa", "Card"}

type bank struct {
	name string
	code string
}

var banks = []bank{
	{"Commercial Bank of Ethiopia", "CBE"},
	{"Dashen Bank", "DSH"},
	{"Awash Bank", "AWB"},
	{"Bank of Abyssinia", "BOA"},
	{"Cooperative Bank of Oromia", "CBO"},
	{"Nib International Bank", "NIB"},
	{"United Bank", "UNB"},
	{"Wegagen Bank", "WEG"},
	{"Lion International Bank", "LIB"},
	{"Oromia International Bank", "OIB"},
	{"Bunna International Bank", "BIB"},
}

var balanceDescriptions = []string{
	"Customer Payment", "Bulk Payment", "Merchant Settlement", "Mobile Money Transfer",
	"Bank Transfer", "Telebirr Payment", "CBE Transfer", "Dashen Bank Payment",
}

var feeDescriptions = []string{
	"Transaction Fee", "Service Fee", "Processing Fee", "Platform Fee",
	"Refund Processed", "Chargeback", "Dispute Resolution", "Account Adjustment",
}

// Participação de cada fonte no financiamento mensal.
var fundingSources = []struct {
	name  string
	share float64
}{
	{"Bank Transfer", 0.68},
	{"Mobile Money", 0.23},
	{"Cash Deposit", 0.09},
}

const (
	historyDays    = 180
	withdrawalDays = 90
	balanceChanges = 220
	fundingMonths  = 6
	customerPool   = 5000
)

type weighted struct {
	value  string
	weight float64
}

var transactionStatuses = []weighted{{"completed", 0.92}, {"pending", 0.05}, {"failed", 0.03}}

var withdrawalStatuses = []weighted{{"completed", 0.75}, {"pending", 0.12}, {"processing", 0.08}, {"failed", 0.05}}

type data struct {
	transactions []entity.Transaction
	customers    []entity.Customer
	withdrawals  []entity.Withdrawal
	changes      []entity.BalanceChange
	funding      []entity.FundingEntry
	balance      entity.Balance
}

// Provider gera os dados sintéticos do painel de forma determinística a partir da
// semente configurada. O resultado é calculado uma única vez e reutilizado.
type Provider struct {
	cfg types.SampleConfig
	now func() time.Time

	once sync.Once
	demo *data
}

// NewProvider creates a provider anchored at the current time.
func NewProvider(cfg types.SampleConfig) *Provider {
	return NewProviderAt(cfg, time.Now)
}

// NewProviderAt creates a provider whose history ends at now().
func NewProviderAt(cfg types.SampleConfig, now func() time.Time) *Provider {
	return &Provider{cfg: cfg, now: now}
}

var _ repository.SampleDataProvider = (*Provider)(nil)

func (p *Provider) load(ctx context.Context, userType entity.UserType) (*data, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch userType {
	case entity.UserTypeRegistered:
		return &data{
			transactions: []entity.Transaction{},
			customers:    []entity.Customer{},
			withdrawals:  []entity.Withdrawal{},
			changes:      []entity.BalanceChange{},
			funding:      []entity.FundingEntry{},
		}, nil
	case entity.UserTypeDemo, "":
		p.once.Do(func() { p.demo = p.generate() })
		return p.demo, nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownUserType, userType)
	}
}

func (p *Provider) Transactions(ctx context.Context, userType entity.UserType) ([]entity.Transaction, error) {
	d, err := p.load(ctx, userType)
	if err != nil {
		return nil, err
	}
	return d.transactions, nil
}

func (p *Provider) Customers(ctx context.Context, userType entity.UserType) ([]entity.Customer, error) {
	d, err := p.load(ctx, userType)
	if err != nil {
		return nil, err
	}
	return d.customers, nil
}

func (p *Provider) Withdrawals(ctx context.Context, userType entity.UserType) ([]entity.Withdrawal, error) {
	d, err := p.load(ctx, userType)
	if err != nil {
		return nil, err
	}
	return d.withdrawals, nil
}

func (p *Provider) BalanceChanges(ctx context.Context, userType entity.UserType) ([]entity.BalanceChange, error) {
	d, err := p.load(ctx, userType)
	if err != nil {
		return nil, err
	}
	return d.changes, nil
}

func (p *Provider) Funding(ctx context.Context, userType entity.UserType) ([]entity.FundingEntry, error) {
	d, err := p.load(ctx, userType)
	if err != nil {
		return nil, err
	}
	return d.funding, nil
}

func (p *Provider) Balance(ctx context.Context, userType entity.UserType) (entity.Balance, error) {
	d, err := p.load(ctx, userType)
	if err != nil {
		return entity.Balance{}, err
	}
	return d.balance, nil
}

// --- Geração ---

type generator struct {
	rng *rand.Rand
	now time.Time
}

func (p *Provider) generate() *data {
	g := &generator{
		rng: rand.New(rand.NewPCG(p.cfg.Seed, p.cfg.Seed^0x9e3779b97f4a7c15)),
		now: p.now().UTC().Truncate(time.Second),
	}

	d := &data{}
	pool := g.people(customerPool)
	d.transactions = g.transactions(pool, orDefault(p.cfg.Transactions, 2500))
	d.customers = g.customers(d.transactions, orDefault(p.cfg.Customers, 400))
	d.withdrawals = g.withdrawals(orDefault(p.cfg.Withdrawals, 120))
	d.changes = g.balanceChanges(balanceChanges)
	d.funding = g.funding(d.transactions)
	d.balance = g.balance(d.changes, d.withdrawals)
	return d
}

type person struct {
	name  string
	email string
	phone string
}

func (g *generator) people(n int) []person {
	out := make([]person, n)
	for i := range out {
		first := firstNames[g.rng.IntN(len(firstNames))]
		last := lastNames[g.rng.IntN(len(lastNames))]
		out[i] = person{
			name:  first + " " + last,
			email: strings.ToLower(first) + "." + strings.ToLower(last) + "@gmail.com",
			phone: fmt.Sprintf("+2519%08d", g.rng.IntN(100000000)),
		}
	}
	return out
}

// transactions gera pagamentos concentrados nos meses recentes, com valores que
// crescem ao longo do período. O resultado vem ordenado do mais novo ao mais antigo.
func (g *generator) transactions(pool []person, n int) []entity.Transaction {
	start := g.now.Add(-historyDays * 24 * time.Hour)
	span := g.now.Sub(start)

	early := []float64{25, 50, 75, 100, 125, 150, 175, 200, 225, 250, 275}
	growth := []float64{150, 200, 250, 300, 350, 400, 450, 500, 600, 750}
	recent := []float64{300, 400, 500, 600, 750, 1000, 1250, 1500, 1750, 2000, 2500}
	multipliers := []float64{1, 1.2, 1.5, 1.8, 2}

	out := make([]entity.Transaction, n)
	for i := range out {
		who := pool[g.rng.IntN(len(pool))]

		// raiz quadrada inclina a distribuição para datas recentes
		position := math.Sqrt(g.rng.Float64())
		ts := start.Add(time.Duration(position * float64(span)))

		factor := math.Pow(position, 0.3)
		var amount float64
		switch {
		case factor < 0.4:
			amount = pick(g.rng, early)
		case factor < 0.7:
			amount = pick(g.rng, growth)
		default:
			amount = pick(g.rng, recent)
		}
		if factor > 0.8 {
			amount = math.Round(amount*pick(g.rng, multipliers)/25) * 25
		}

		out[i] = entity.Transaction{
			Status:        g.weighted(transactionStatuses),
			Customer:      who.name,
			Email:         who.email,
			Phone:         who.phone,
			Amount:        amount,
			PaymentMethod: paymentMethods[g.rng.IntN(len(paymentMethods))],
			Reference:     "AP" + g.base36(10),
			BankReference: "CAR" + strings.ToUpper(g.base36(6)),
			Timestamp:     ts,
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	for i := range out {
		out[i].ID = i + 1
	}
	return out
}

// customers agrega as transações por pagador e completa a lista com clientes sem
// atividade até alcançar n.
func (g *generator) customers(transactions []entity.Transaction, n int) []entity.Customer {
	byEmail := make(map[string]*entity.Customer)
	order := make([]string, 0, n)
	for _, t := range transactions {
		c, ok := byEmail[t.Email]
		if !ok {
			if len(order) == n {
				continue
			}
			c = &entity.Customer{FullName: t.Customer, Email: t.Email, Phone: t.Phone}
			byEmail[t.Email] = c
			order = append(order, t.Email)
		}
		c.TransactionCount++
		if t.Status == "completed" {
			c.TotalSpent += t.Amount
		}
		if t.Timestamp.After(c.LastTransaction) {
			c.LastTransaction = t.Timestamp
		}
	}

	out := make([]entity.Customer, 0, len(order))
	for i, email := range order {
		c := byEmail[email]
		c.ID = i + 1
		c.Status = "active"
		if g.rng.Float64() < 0.1 {
			c.Status = "inactive"
		}
		switch r := g.rng.Float64(); {
		case r > 0.95:
			c.RiskLevel = "high"
		case r > 0.85:
			c.RiskLevel = "medium"
		default:
			c.RiskLevel = "low"
		}
		joined := g.now.Add(-time.Duration(g.rng.Float64() * 365 * 24 * float64(time.Hour)))
		if !c.LastTransaction.IsZero() && joined.After(c.LastTransaction) {
			joined = c.LastTransaction
		}
		c.JoinDate = joined
		out = append(out, *c)
	}
	return out
}

func (g *generator) withdrawals(n int) []entity.Withdrawal {
	out := make([]entity.Withdrawal, n)
	for i := range out {
		b := banks[g.rng.IntN(len(banks))]
		daysAgo := g.rng.IntN(withdrawalDays) + 1
		day := g.now.AddDate(0, 0, -daysAgo)
		out[i] = entity.Withdrawal{
			Amount:    float64(g.rng.IntN(95000) + 5000),
			Status:    g.weighted(withdrawalStatuses),
			Bank:      b.name,
			Reference: b.code + strings.ToUpper(g.base36(9)),
			Date:      time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC),
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	for i := range out {
		out[i].ID = fmt.Sprintf("WD%04d", i+1)
	}
	return out
}

// balanceChanges: 70% créditos de 500 a 15500, o resto tarifas de 25 a 525.
func (g *generator) balanceChanges(n int) []entity.BalanceChange {
	out := make([]entity.BalanceChange, n)
	for i := range out {
		ago := time.Duration(g.rng.Float64() * 30 * 24 * float64(time.Hour))
		if g.rng.Float64() > 0.3 {
			out[i] = entity.BalanceChange{
				Type:        "credit",
				Description: balanceDescriptions[g.rng.IntN(len(balanceDescriptions))],
				Amount:      float64(g.rng.IntN(15000) + 500),
			}
		} else {
			out[i] = entity.BalanceChange{
				Type:        "debit",
				Description: feeDescriptions[g.rng.IntN(len(feeDescriptions))],
				Amount:      float64(g.rng.IntN(500) + 25),
			}
		}
		out[i].Date = g.now.Add(-ago)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out
}

// funding reparte a receita concluída de cada mês entre as fontes de financiamento.
func (g *generator) funding(transactions []entity.Transaction) []entity.FundingEntry {
	first := time.Date(g.now.Year(), g.now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -(fundingMonths - 1), 0)

	monthly := make([]float64, fundingMonths)
	for _, t := range transactions {
		if t.Status != "completed" || t.Timestamp.Before(first) {
			continue
		}
		idx := (t.Timestamp.Year()-first.Year())*12 + int(t.Timestamp.Month()-first.Month())
		if idx >= 0 && idx < fundingMonths {
			monthly[idx] += t.Amount
		}
	}

	out := make([]entity.FundingEntry, 0, fundingMonths*len(fundingSources))
	for i, total := range monthly {
		month := first.AddDate(0, i, 0)
		for _, src := range fundingSources {
			jitter := 0.9 + g.rng.Float64()*0.2
			out = append(out, entity.FundingEntry{
				Month:  month,
				Source: src.name,
				Amount: math.Round(total * src.share * jitter),
			})
		}
	}
	return out
}

func (g *generator) balance(changes []entity.BalanceChange, withdrawals []entity.Withdrawal) entity.Balance {
	var available, pending float64
	for _, c := range changes {
		if c.Type == "credit" {
			available += c.Amount
		} else {
			available -= c.Amount
		}
	}
	for _, w := range withdrawals {
		if w.Status == "pending" || w.Status == "processing" {
			pending += w.Amount
		}
	}
	return entity.Balance{Total: available + pending, Available: available, Pending: pending}
}

func (g *generator) weighted(options []weighted) string {
	r := g.rng.Float64()
	cumulative := 0.0
	for _, o := range options {
		cumulative += o.weight
		if r <= cumulative {
			return o.value
		}
	}
	return options[0].value
}

func (g *generator) base36(n int) string {
	var b strings.Builder
	for b.Len() < n {
		b.WriteString(strconv.FormatUint(g.rng.Uint64(), 36))
	}
	return b.String()[:n]
}

func pick(rng *rand.Rand, values []float64) float64 {
	return values[rng.IntN(len(values))]
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

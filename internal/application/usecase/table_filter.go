package usecase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
)

// Campos de busca aceitos por dataset. "all" procura em todos.
const (
	FilterFieldAll       = "all"
	FilterFieldCustomer  = "customer"
	FilterFieldAmount    = "amount"
	FilterFieldReference = "reference"
	FilterFieldName      = "name"
	FilterFieldEmail     = "email"
	FilterFieldPhone     = "phone"
)

var (
	searchFields = map[Dataset][]string{
		DatasetTransactions: {FilterFieldAll, FilterFieldCustomer, FilterFieldAmount, FilterFieldReference},
		DatasetCustomers:    {FilterFieldAll, FilterFieldName, FilterFieldEmail, FilterFieldPhone},
		DatasetWithdrawals:  {FilterFieldAll, FilterFieldAmount, FilterFieldReference},
	}
	statusFilters = map[Dataset][]string{
		DatasetTransactions: {"completed", "pending", "failed"},
		DatasetCustomers:    {"active", "inactive"},
		DatasetWithdrawals:  {"completed", "pending", "processing", "failed"},
	}
	riskLevels = []string{"low", "medium", "high"}
)

// TableFilter is the search box and the select filters of a dashboard table. It is
// applied before the date range, so a report holds exactly the rows the table shows.
type TableFilter struct {
	Query  string `json:"q,omitempty"`
	Field  string `json:"field,omitempty"`
	Status string `json:"status,omitempty"`
	Risk   string `json:"risk,omitempty"`
}

// IsZero reports whether the filter keeps every row.
func (f TableFilter) IsZero() bool {
	n := f.normalize()
	return n.Query == "" && n.Status == "" && n.Risk == ""
}

// normalize lowercases the selects and maps "all" to no filter. The query keeps its
// case; matching is case-insensitive.
func (f TableFilter) normalize() TableFilter {
	n := TableFilter{
		Query:  strings.TrimSpace(f.Query),
		Field:  strings.ToLower(strings.TrimSpace(f.Field)),
		Status: strings.ToLower(strings.TrimSpace(f.Status)),
		Risk:   strings.ToLower(strings.TrimSpace(f.Risk)),
	}
	if n.Field == "" {
		n.Field = FilterFieldAll
	}
	if n.Status == "all" {
		n.Status = ""
	}
	if n.Risk == "all" {
		n.Risk = ""
	}
	return n
}

// Validate checks the filter against what the dataset table offers.
func (f TableFilter) Validate(dataset Dataset) error {
	n := f.normalize()
	if n.IsZero() && n.Field == FilterFieldAll {
		return nil
	}
	if n.Query != "" || n.Field != FilterFieldAll {
		fields, ok := searchFields[dataset]
		if !ok {
			return fmt.Errorf("%w: %s has no search", types.ErrInvalidFilter, dataset)
		}
		if !contains(fields, n.Field) {
			return fmt.Errorf("%w: field %q (want one of %s)", types.ErrInvalidFilter, f.Field, strings.Join(fields, ", "))
		}
	}
	if n.Status != "" {
		statuses, ok := statusFilters[dataset]
		if !ok || !contains(statuses, n.Status) {
			return fmt.Errorf("%w: status %q for %s", types.ErrInvalidFilter, f.Status, dataset)
		}
	}
	if n.Risk != "" {
		if dataset != DatasetCustomers {
			return fmt.Errorf("%w: risk applies to customers only", types.ErrInvalidFilter)
		}
		if !contains(riskLevels, n.Risk) {
			return fmt.Errorf("%w: risk %q (want one of %s)", types.ErrInvalidFilter, f.Risk, strings.Join(riskLevels, ", "))
		}
	}
	return nil
}

func (f TableFilter) matchTransaction(t entity.Transaction) bool {
	if f.Status != "" && t.Status != f.Status {
		return false
	}
	if f.Query == "" {
		return true
	}
	customer := containsFold(t.Customer, f.Query) || containsFold(t.Email, f.Query) || strings.Contains(t.Phone, f.Query)
	amount := strings.Contains(amountText(t.Amount), f.Query)
	reference := containsFold(t.Reference, f.Query) || containsFold(t.BankReference, f.Query)

	switch f.Field {
	case FilterFieldCustomer:
		return customer
	case FilterFieldAmount:
		return amount
	case FilterFieldReference:
		return reference
	default:
		return customer || amount || reference
	}
}

func (f TableFilter) matchCustomer(c entity.Customer) bool {
	if f.Status != "" && c.Status != f.Status {
		return false
	}
	if f.Risk != "" && c.RiskLevel != f.Risk {
		return false
	}
	if f.Query == "" {
		return true
	}
	name := containsFold(c.FullName, f.Query)
	email := containsFold(c.Email, f.Query)
	phone := strings.Contains(c.Phone, f.Query)

	switch f.Field {
	case FilterFieldName:
		return name
	case FilterFieldEmail:
		return email
	case FilterFieldPhone:
		return phone
	default:
		return name || email || phone
	}
}

func (f TableFilter) matchWithdrawal(w entity.Withdrawal) bool {
	if f.Status != "" && w.Status != f.Status {
		return false
	}
	if f.Query == "" {
		return true
	}
	amount := strings.Contains(amountText(w.Amount), f.Query)
	reference := containsFold(w.ID, f.Query) || containsFold(w.Reference, f.Query) || containsFold(w.Bank, f.Query)

	switch f.Field {
	case FilterFieldAmount:
		return amount
	case FilterFieldReference:
		return reference
	default:
		return amount || reference
	}
}

// amountText escreve o valor sem separadores, como digitado na busca ("1500.5").
func amountText(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func contains(values []string, v string) bool {
	for _, value := range values {
		if value == v {
			return true
		}
	}
	return false
}

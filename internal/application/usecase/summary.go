package usecase

import (
	"regexp"
	"strings"

	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultCurrency is used when a summary value carries no recognisable prefix.
const DefaultCurrency = "ETB"

var (
	// currency-prefixed cell such as "ETB 1,250" or "$1,250.50"
	moneyCellRegex = regexp.MustCompile(`^\s*(?:[A-Z]{3}\s+|[$€£])(-?\d[\d,]*(?:\.\d+)?)\s*$`)
	// optional prefix, then a number; used for the record "amount" field
	moneyValueRegex = regexp.MustCompile(`^\s*(?:[A-Za-z]{3}\s*|[$€£]\s*)?(-?\d[\d,]*(?:\.\d+)?)\s*$`)
	// leading currency token of a formatted summary value, with its separator
	currencyPrefixRegex = regexp.MustCompile(`^\s*([A-Za-z]{2,4}|[$€£])(\s*)-?\d`)
)

// ClassifySummaryItem decides whether a summary entry is recomputed as a row count,
// an amount total, or passed through. An explicit Kind wins; otherwise the label is
// matched case-insensitively ("total" + "transaction", "total" + "amount").
func ClassifySummaryItem(item entity.SummaryItem) entity.SummaryKind {
	if item.Kind != entity.SummaryKindNone {
		return item.Kind
	}
	label := strings.ToLower(item.Label)
	if !strings.Contains(label, "total") {
		return entity.SummaryKindNone
	}
	switch {
	case strings.Contains(label, "transaction"):
		return entity.SummaryKindCount
	case strings.Contains(label, "amount"):
		return entity.SummaryKindAmount
	default:
		return entity.SummaryKindNone
	}
}

// RecomputeSummary derives the count and amount entries of original from rows and
// copies every other entry unchanged. It never fails: amounts that cannot be parsed
// count as zero. A nil original yields nil.
func RecomputeSummary(rows []entity.ReportRow, original entity.Summary, currency string) entity.Summary {
	if original == nil {
		return nil
	}
	if currency == "" {
		currency = DefaultCurrency
	}

	var (
		count = len(rows)
		total decimal.Decimal
	)
	for _, row := range rows {
		total = total.Add(RowAmount(row))
	}

	out := make(entity.Summary, 0, len(original))
	for _, item := range original {
		next := item
		switch ClassifySummaryItem(item) {
		case entity.SummaryKindCount:
			next.Value = FormatCount(count)
		case entity.SummaryKindAmount:
			next.Value = FormatMoney(currencyPrefix(item.Value, currency), total)
		}
		out = append(out, next)
	}
	return out
}

// RowAmount extracts the monetary amount of a row: the record "amount" field first
// (numeric or formatted string), then the first currency-prefixed tuple cell.
// Anything else contributes zero.
func RowAmount(row entity.ReportRow) decimal.Decimal {
	if row == nil {
		return decimal.Zero
	}
	if v, ok := row.Value("amount"); ok {
		if d, ok := toDecimal(v); ok {
			return d
		}
		return decimal.Zero
	}
	for _, cell := range row.Cells() {
		if m := moneyCellRegex.FindStringSubmatch(cell); m != nil {
			if d, ok := parseNumber(m[1]); ok {
				return d
			}
		}
	}
	return decimal.Zero
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch val := v.(type) {
	case decimal.Decimal:
		return val, true
	case float64:
		return decimal.NewFromFloat(val), true
	case float32:
		return decimal.NewFromFloat32(val), true
	case int:
		return decimal.NewFromInt(int64(val)), true
	case int32:
		return decimal.NewFromInt32(val), true
	case int64:
		return decimal.NewFromInt(val), true
	case string:
		if m := moneyValueRegex.FindStringSubmatch(val); m != nil {
			return parseNumber(m[1])
		}
	}
	return decimal.Zero, false
}

func parseNumber(s string) (decimal.Decimal, bool) {
	d, err := decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// currencyPrefix returns the prefix used by value ("ETB " or "$"), or the default
// currency followed by a space.
func currencyPrefix(value string, currency string) string {
	if m := currencyPrefixRegex.FindStringSubmatch(value); m != nil {
		sep := ""
		if m[2] != "" {
			sep = " "
		}
		return m[1] + sep
	}
	return currency + " "
}

// FormatCount formata um inteiro com separador de milhar ("54,234").
func FormatCount(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// FormatMoney formats amount with thousands separators and at most two decimals,
// prefixed by prefix ("ETB 1,234.5").
func FormatMoney(prefix string, amount decimal.Decimal) string {
	f := amount.Round(2).InexactFloat64()
	return prefix + message.NewPrinter(language.English).Sprint(number.Decimal(f, number.MaxFractionDigits(2)))
}

// FormatCurrency is FormatMoney with a "<currency> " prefix for float inputs.
func FormatCurrency(currency string, amount float64) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return FormatMoney(currency+" ", decimal.NewFromFloat(amount))
}

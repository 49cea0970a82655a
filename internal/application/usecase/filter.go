package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
	"github.com/payethio/payethio-dashboard-go/internal/shared/types"
)

// DateExtractor devolve a data associada a uma linha do relatório.
type DateExtractor func(row entity.ReportRow) (time.Time, bool)

// recordDateFields lists the record keys holding a row date, highest precedence first.
var recordDateFields = []string{"date", "createdAt", "timestamp"}

// dateLayouts are tried in order by ParseDate.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"01/02/2006",
	"1/2/2006",
	"Jan 2, 2006",
}

// RecordDate reads the first present date field of a record row (date, createdAt,
// timestamp). Tuple rows have no named fields and never match.
func RecordDate(row entity.ReportRow) (time.Time, bool) {
	if row == nil {
		return time.Time{}, false
	}
	for _, field := range recordDateFields {
		if v, ok := row.Value(field); ok {
			return ParseDate(v)
		}
	}
	return time.Time{}, false
}

// TupleDateAt builds an extractor that parses the cell at index of a tuple row.
func TupleDateAt(index int) DateExtractor {
	return func(row entity.ReportRow) (time.Time, bool) {
		if row == nil {
			return time.Time{}, false
		}
		cells := row.Cells()
		if index < 0 || index >= len(cells) {
			return time.Time{}, false
		}
		return ParseDate(cells[index])
	}
}

// ParseDate converte os formatos de data conhecidos. Valores numéricos são tratados
// como milissegundos desde a época Unix.
func ParseDate(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, !val.IsZero()
	case *time.Time:
		if val == nil {
			return time.Time{}, false
		}
		return *val, !val.IsZero()
	case int64:
		return time.UnixMilli(val).UTC(), true
	case int:
		return time.UnixMilli(int64(val)).UTC(), true
	case float64:
		return time.UnixMilli(int64(val)).UTC(), true
	case string:
		s := strings.TrimSpace(val)
		if s == "" {
			return time.Time{}, false
		}
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// NormalizeRange widens date-only picker values to whole days: start becomes
// 00:00:00.000 and end 23:59:59.999 in their own location.
func NormalizeRange(start, end *time.Time) entity.DateRange {
	var rng entity.DateRange
	if start != nil {
		s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
		rng.Start = &s
	}
	if end != nil {
		e := time.Date(end.Year(), end.Month(), end.Day(), 23, 59, 59, int(999*time.Millisecond), end.Location())
		rng.End = &e
	}
	return rng
}

// FilterByDate keeps the rows whose date lies within rng, bounds included.
//
// With no bounds the input is returned as is. Rows without a parsable date are
// excluded. The input slice and its rows are never modified.
func FilterByDate(rows []entity.ReportRow, rng entity.DateRange, extract DateExtractor) []entity.ReportRow {
	if rng.IsZero() {
		return rows
	}
	if extract == nil {
		extract = RecordDate
	}

	out := make([]entity.ReportRow, 0, len(rows))
	for _, row := range rows {
		t, ok := extract(row)
		if !ok {
			continue
		}
		if rng.Contains(t) {
			out = append(out, row)
		}
	}
	return out
}

// ParseRange parses the "from"/"to" query or flag values (YYYY-MM-DD). Empty values
// leave that bound open. The result is normalized to whole days.
func ParseRange(from, to string) (entity.DateRange, error) {
	var start, end *time.Time
	if s := strings.TrimSpace(from); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return entity.DateRange{}, fmt.Errorf("%w: invalid start date %q", types.ErrInvalidDateRange, from)
		}
		start = &t
	}
	if s := strings.TrimSpace(to); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return entity.DateRange{}, fmt.Errorf("%w: invalid end date %q", types.ErrInvalidDateRange, to)
		}
		end = &t
	}
	if start != nil && end != nil && start.After(*end) {
		return entity.DateRange{}, fmt.Errorf("%w: %s is after %s", types.ErrInvalidDateRange, from, to)
	}
	return NormalizeRange(start, end), nil
}

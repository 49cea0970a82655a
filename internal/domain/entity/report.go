package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Format identifies the output format of a rendered report.
type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// ParseFormat resolves a user supplied format name ("PDF", "xlsx", ".csv").
func ParseFormat(s string) (Format, bool) {
	f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "."))
	switch f {
	case FormatHTML, FormatPDF, FormatCSV, FormatJSON, FormatXLSX:
		return f, true
	case "htm":
		return FormatHTML, true
	case "excel":
		return FormatXLSX, true
	}
	return "", false
}

// Extension devolve a extensão de arquivo (sem ponto) do formato.
func (f Format) Extension() string {
	return string(f)
}

// ContentType returns the MIME type used when the report is downloaded or attached.
func (f Format) ContentType() string {
	switch f {
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatPDF:
		return "application/pdf"
	case FormatCSV:
		return "text/csv; charset=utf-8"
	case FormatJSON:
		return "application/json"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// ReportRow is one line item destined for an exported document.
//
// Two shapes exist: Record (keyed by field name) and Tuple (display-ready cells in
// header order). Renderers and the summary recalculator only talk to this interface.
type ReportRow interface {
	// Cell returns the display string for the column at index, labelled header.
	Cell(index int, header string) string
	// Value returns the raw value stored under name. Tuples carry no named fields.
	Value(name string) (any, bool)
	// Cells returns the positional cells of a tuple row, nil for records.
	Cells() []string
}

// Record is a keyed report row. Keys that are not listed in the report headers are
// never rendered, which lets callers carry raw values (amount, timestamp) alongside
// the display fields.
type Record map[string]any

// Cell procura o valor pelo nome do cabeçalho; chave ausente ou nula vira célula vazia.
func (r Record) Cell(_ int, header string) string {
	v, ok := r[header]
	if !ok {
		return ""
	}
	return DisplayValue(v)
}

func (r Record) Value(name string) (any, bool) {
	v, ok := r[name]
	if !ok || v == nil {
		return nil, false
	}
	return v, true
}

func (r Record) Cells() []string {
	return nil
}

// Tuple is a positional report row of pre-formatted cells.
type Tuple []string

// Cell devolve a célula na posição index; posições ausentes ficam vazias.
func (t Tuple) Cell(index int, _ string) string {
	if index < 0 || index >= len(t) {
		return ""
	}
	return t[index]
}

func (t Tuple) Value(string) (any, bool) {
	return nil, false
}

func (t Tuple) Cells() []string {
	return t
}

// DisplayValue converts an arbitrary cell value into its display string.
func DisplayValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case time.Time:
		if val.IsZero() {
			return ""
		}
		return val.Format("2006-01-02 15:04")
	case *time.Time:
		if val == nil || val.IsZero() {
			return ""
		}
		return val.Format("2006-01-02 15:04")
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	default:
		return fmt.Sprint(val)
	}
}

// SummaryKind tells the recalculator how a summary entry is derived.
type SummaryKind string

const (
	SummaryKindNone   SummaryKind = ""
	SummaryKindCount  SummaryKind = "count"
	SummaryKindAmount SummaryKind = "amount"
)

// SummaryItem is one label/value pair of the summary block.
type SummaryItem struct {
	Label string      `json:"label"`
	Value string      `json:"value"`
	Kind  SummaryKind `json:"kind,omitempty"`
}

// Summary keeps its items in insertion order, which is also the render order.
type Summary []SummaryItem

// Get returns the value for label.
func (s Summary) Get(label string) (string, bool) {
	for _, item := range s {
		if item.Label == label {
			return item.Value, true
		}
	}
	return "", false
}

// Clone devolve uma cópia independente do resumo.
func (s Summary) Clone() Summary {
	if s == nil {
		return nil
	}
	out := make(Summary, len(s))
	copy(out, s)
	return out
}

// DateRange is an optional inclusive date range. Nil bounds are open.
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// IsZero reports whether neither bound is set.
func (r DateRange) IsZero() bool {
	return r.Start == nil && r.End == nil
}

// Bounded reports whether both bounds are set.
func (r DateRange) Bounded() bool {
	return r.Start != nil && r.End != nil
}

// Contains reports whether t lies within the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	if r.Start != nil && t.Before(*r.Start) {
		return false
	}
	if r.End != nil && t.After(*r.End) {
		return false
	}
	return true
}

// Caption formats the range for the "Date Range" line. It returns false unless both
// bounds are present.
func (r DateRange) Caption(layout string) (string, bool) {
	if !r.Bounded() {
		return "", false
	}
	return fmt.Sprintf("%s to %s", r.Start.Format(layout), r.End.Format(layout)), true
}

// ReportRequest is built fresh for every export action and discarded after rendering.
type ReportRequest struct {
	Title       string
	Headers     []string
	Rows        []ReportRow
	Summary     Summary
	DateRange   DateRange
	GeneratedAt time.Time
}

// DisplayRows projects every row onto exactly len(Headers) display cells.
func (r ReportRequest) DisplayRows() [][]string {
	out := make([][]string, 0, len(r.Rows))
	for _, row := range r.Rows {
		cells := make([]string, len(r.Headers))
		if row != nil {
			for i, h := range r.Headers {
				cells[i] = row.Cell(i, h)
			}
		}
		out = append(out, cells)
	}
	return out
}

// RenderedReport is a complete, self-contained document ready for delivery.
type RenderedReport struct {
	Reference   string
	Filename    string
	Format      Format
	ContentType string
	Content     []byte
}

// SwapExtension replaces the extension of filename with ext. A filename without
// extension gets ext appended.
func SwapExtension(filename string, ext string) string {
	if filename == "" {
		return "report." + ext
	}
	if i := strings.LastIndex(filename, "."); i > 0 {
		return filename[:i] + "." + ext
	}
	return filename + "." + ext
}

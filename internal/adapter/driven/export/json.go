package export

import (
	"bytes"
	"encoding/json"

	"github.com/payethio/payethio-dashboard-go/internal/domain/entity"
)

type jsonReport struct {
	Reference string              `json:"reference"`
	Title     string              `json:"title"`
	Generated string              `json:"generated"`
	DateRange *jsonDateRange      `json:"dateRange,omitempty"`
	Summary   entity.Summary      `json:"summary,omitempty"`
	Headers   []string            `json:"headers"`
	Rows      []map[string]string `json:"rows"`
}

type jsonDateRange struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// renderJSON exporta as linhas como objetos indexados pelo cabeçalho.
func renderJSON(doc document) ([]byte, error) {
	out := jsonReport{
		Reference: doc.Reference,
		Title:     doc.Title,
		Generated: doc.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		Summary:   doc.Summary,
		Headers:   doc.Headers,
		Rows:      make([]map[string]string, 0, len(doc.Rows)),
	}
	if out.Headers == nil {
		out.Headers = []string{}
	}
	if !doc.Range.IsZero() {
		rng := &jsonDateRange{}
		if doc.Range.Start != nil {
			rng.Start = doc.Range.Start.Format("2006-01-02")
		}
		if doc.Range.End != nil {
			rng.End = doc.Range.End.Format("2006-01-02")
		}
		out.DateRange = rng
	}

	for _, row := range doc.Rows {
		item := make(map[string]string, len(doc.Headers))
		for i, h := range doc.Headers {
			item[h] = row[i]
		}
		out.Rows = append(out.Rows, item)
	}

	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

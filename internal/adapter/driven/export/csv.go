package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// renderCSV writes the header row followed by one line per data row. The summary is
// appended after a blank line as "label,value" pairs.
func renderCSV(doc document) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if len(doc.Headers) > 0 {
		if err := writer.Write(doc.Headers); err != nil {
			return nil, fmt.Errorf("error writing CSV header: %w", err)
		}
	}
	for _, row := range doc.Rows {
		if err := writer.Write(row); err != nil {
			return nil, fmt.Errorf("error writing CSV row: %w", err)
		}
	}

	if len(doc.Summary) > 0 {
		if err := writer.Write([]string{""}); err != nil {
			return nil, err
		}
		for _, item := range doc.Summary {
			if err := writer.Write([]string{item.Label, item.Value}); err != nil {
				return nil, fmt.Errorf("error writing CSV summary: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

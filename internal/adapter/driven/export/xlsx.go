package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	reportSheet  = "Report"
	summarySheet = "Summary"
)

// renderXLSX gera uma planilha com a aba "Report" (tabela) e, quando houver resumo,
// a aba "Summary".
func renderXLSX(doc document) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"10B981"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}

	for i, h := range doc.Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(reportSheet, cell, h); err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(reportSheet, cell, cell, headerStyle); err != nil {
			return nil, err
		}
	}

	for r, row := range doc.Rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(reportSheet, cell, value); err != nil {
				return nil, fmt.Errorf("error writing cell %s: %w", cell, err)
			}
		}
	}

	if len(doc.Summary) > 0 {
		if _, err := f.NewSheet(summarySheet); err != nil {
			return nil, err
		}
		for i, item := range doc.Summary {
			row := i + 1
			if err := f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), item.Label); err != nil {
				return nil, err
			}
			if err := f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), item.Value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

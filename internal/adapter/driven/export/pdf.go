package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

var (
	pdfAccentColor  = [3]int{16, 185, 129}
	pdfStripeColor  = [3]int{249, 250, 251}
	pdfBodyColor    = [3]int{31, 41, 55}
	pdfMutedColor   = [3]int{107, 114, 128}
	pdfBorderColor  = [3]int{229, 231, 235}
	pdfSummaryColor = [3]int{240, 253, 244}
)

const (
	pdfMargin      = 10.0
	pdfRowHeight   = 7.0
	pdfFooterSpace = 12.0
	pdfSummaryLine = 6.0
	pdfNoDataLine  = 20.0
)

// renderPDF gera o relatório paginado (A4 paisagem). Falhas ao desenhar a tabela não
// abortam o documento: a mensagem de erro é impressa no lugar da tabela.
func renderPDF(doc document) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.SetCompression(!doc.PlainPDF)
	pdf.AliasNbPages("")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-12)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(pdfMutedColor[0], pdfMutedColor[1], pdfMutedColor[2])
		footerText := fmt.Sprintf("%s Payment Solutions | %s | %s", doc.Brand, doc.Reference, doc.Generated)
		pdf.CellFormat(0, 8, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()
	drawPDFHeader(pdf, tr, doc)
	drawPDFSummary(pdf, tr, doc)

	if len(doc.Rows) == 0 {
		ensureSpace(pdf, pdfNoDataLine)
		pdf.SetFont("Arial", "I", 11)
		pdf.SetTextColor(pdfMutedColor[0], pdfMutedColor[1], pdfMutedColor[2])
		pdf.CellFormat(0, 20, "No data available for the selected criteria", "", 1, "C", false, 0, "")
	} else if err := drawPDFTable(pdf, tr, doc); err != nil {
		pdf.ClearError()
		ensureSpace(pdf, 4+pdfSummaryLine)
		pdf.Ln(4)
		pdf.SetFont("Arial", "", 10)
		pdf.SetTextColor(192, 0, 0)
		pdf.MultiCell(0, 6, tr("Error generating table: "+err.Error()), "", "L", false)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("error writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func drawPDFHeader(pdf *gofpdf.Fpdf, tr func(string) string, doc document) {
	pdf.SetFont("Arial", "B", 18)
	pdf.SetTextColor(pdfAccentColor[0], pdfAccentColor[1], pdfAccentColor[2])
	pdf.CellFormat(0, 10, tr(doc.Brand+" Payment Solutions"), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(pdfBodyColor[0], pdfBodyColor[1], pdfBodyColor[2])
	pdf.CellFormat(0, 8, tr(doc.Title), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	pdf.SetTextColor(pdfMutedColor[0], pdfMutedColor[1], pdfMutedColor[2])
	if doc.DateRange != "" {
		pdf.CellFormat(0, 5, tr("Date Range: "+doc.DateRange), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 5, tr("Generated: "+doc.Generated), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 5, tr("Reference: "+doc.Reference), "", 1, "L", false, 0, "")

	pdf.SetDrawColor(pdfAccentColor[0], pdfAccentColor[1], pdfAccentColor[2])
	pdf.SetLineWidth(0.6)
	x, y := pdf.GetXY()
	w, _ := pdf.GetPageSize()
	pdf.Line(x, y+2, w-pdfMargin, y+2)
	pdf.SetLineWidth(0.2)
	pdf.Ln(6)
}

func drawPDFSummary(pdf *gofpdf.Fpdf, tr func(string) string, doc document) {
	if len(doc.Summary) == 0 {
		return
	}
	for _, item := range doc.Summary {
		ensureSpace(pdf, pdfSummaryLine)
		pdf.SetFillColor(pdfSummaryColor[0], pdfSummaryColor[1], pdfSummaryColor[2])
		pdf.SetFont("Arial", "B", 10)
		pdf.SetTextColor(pdfBodyColor[0], pdfBodyColor[1], pdfBodyColor[2])
		pdf.CellFormat(60, pdfSummaryLine, tr(item.Label+":"), "", 0, "L", true, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, pdfSummaryLine, tr(item.Value), "", 1, "L", true, 0, "")
	}
	pdf.Ln(4)
}

// drawPDFTable desenha a tabela, repetindo o cabeçalho a cada quebra de página.
func drawPDFTable(pdf *gofpdf.Fpdf, tr func(string) string, doc document) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%v", r)
		}
	}()

	if len(doc.Headers) == 0 {
		return fmt.Errorf("report has no columns")
	}

	pageW, _ := pdf.GetPageSize()
	colWidth := (pageW - 2*pdfMargin) / float64(len(doc.Headers))

	drawHeaderRow := func() {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(pdfAccentColor[0], pdfAccentColor[1], pdfAccentColor[2])
		pdf.SetTextColor(255, 255, 255)
		pdf.SetDrawColor(pdfBorderColor[0], pdfBorderColor[1], pdfBorderColor[2])
		for _, h := range doc.Headers {
			pdf.CellFormat(colWidth, pdfRowHeight+1, tr(fitText(pdf, h, colWidth)), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 8)
		pdf.SetTextColor(pdfBodyColor[0], pdfBodyColor[1], pdfBodyColor[2])
	}

	// cabeçalho e ao menos uma linha na mesma página
	ensureSpace(pdf, 2*pdfRowHeight+1)
	drawHeaderRow()
	for i, row := range doc.Rows {
		if ensureSpace(pdf, pdfRowHeight) {
			drawHeaderRow()
		}
		shaded := i%2 == 1
		if shaded {
			pdf.SetFillColor(pdfStripeColor[0], pdfStripeColor[1], pdfStripeColor[2])
		}
		for _, cell := range row {
			pdf.CellFormat(colWidth, pdfRowHeight, tr(fitText(pdf, cell, colWidth)), "1", 0, "L", shaded, 0, "")
		}
		pdf.Ln(-1)
		if pdf.Err() {
			return pdf.Error()
		}
	}
	return nil
}

// ensureSpace abre uma nova página quando h não cabe acima do rodapé.
func ensureSpace(pdf *gofpdf.Fpdf, h float64) bool {
	_, pageH := pdf.GetPageSize()
	if pdf.GetY()+h <= pageH-pdfMargin-pdfFooterSpace {
		return false
	}
	pdf.AddPage()
	return true
}

// fitText trunca o texto com reticências para caber na largura da célula.
func fitText(pdf *gofpdf.Fpdf, text string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(text) <= limit {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}

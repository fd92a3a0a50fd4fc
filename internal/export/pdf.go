package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageWidth   = 190.0
	lineHeight  = 7.0
	headerFill  = 235
	flaggedRed  = 185
	labelColumn = 45.0
)

// RenderPDF paginates a payslip document into A4 PDF bytes.
func RenderPDF(doc PayslipDocument) ([]byte, error) {
	if len(doc.Sections) == 0 {
		return nil, ErrEmptyExportSet
	}
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	for _, section := range doc.Sections {
		switch s := section.(type) {
		case TitleSection:
			pdf.SetFont("Helvetica", "B", 16)
			pdf.CellFormat(pageWidth, 10, s.Text, "", 1, "L", false, 0, "")
			if s.Subtitle != "" {
				pdf.SetFont("Helvetica", "", 11)
				pdf.CellFormat(pageWidth, lineHeight, s.Subtitle, "", 1, "L", false, 0, "")
			}
			pdf.Ln(4)
		case IdentitySection:
			renderFields(pdf, s.Fields)
			pdf.Ln(4)
		case TableSection:
			renderTable(pdf, s)
			pdf.Ln(4)
		case SummarySection:
			if s.Flagged {
				pdf.SetTextColor(flaggedRed, 0, 0)
			}
			renderFields(pdf, s.Fields)
			pdf.SetTextColor(0, 0, 0)
			pdf.Ln(4)
		default:
			return nil, fmt.Errorf("unsupported section %T", section)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderFields(pdf *gofpdf.Fpdf, fields []Field) {
	for _, f := range fields {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(labelColumn, lineHeight, f.Label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(pageWidth-labelColumn, lineHeight, f.Value, "", 1, "L", false, 0, "")
	}
}

func renderTable(pdf *gofpdf.Fpdf, t TableSection) {
	if len(t.Columns) == 0 {
		return
	}
	width := pageWidth / float64(len(t.Columns))

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(pageWidth, 8, t.Heading, "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(headerFill, headerFill, headerFill)
	for _, col := range t.Columns {
		pdf.CellFormat(width, lineHeight, col, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	for _, row := range t.Rows {
		for i := range t.Columns {
			pdf.CellFormat(width, lineHeight, cell(row, i), "1", 0, alignFor(i), false, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(t.Footer) > 0 {
		pdf.SetFont("Helvetica", "B", 10)
		for i := range t.Columns {
			pdf.CellFormat(width, lineHeight, cell(t.Footer, i), "1", 0, alignFor(i), true, 0, "")
		}
		pdf.Ln(-1)
	}
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func alignFor(column int) string {
	if column == 0 {
		return "L"
	}
	return "R"
}

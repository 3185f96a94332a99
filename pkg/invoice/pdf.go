package invoice

import (
	"bytes"
	"strconv"

	"github.com/go-pdf/fpdf"
)

// PDFRenderer lays the invoice document out on an A4 page.
type PDFRenderer struct{}

func (PDFRenderer) Render(doc *Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Invoice "+doc.Number, false)
	pdf.AddPage()

	// Header
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 10, "Tax Invoice", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, doc.StoreName+" | GSTIN: "+doc.GSTIN, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Invoice details and billed-to, side by side
	details := [][2]string{
		{"Invoice No:", doc.Number},
		{"Invoice Date:", doc.Date},
		{"Payment ID:", doc.PaymentRef},
	}
	top := pdf.GetY()
	for _, row := range details {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(35, 6, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(65, 6, row[1], "", 1, "L", false, 0, "")
	}

	pdf.SetXY(120, top)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, "Billed To:", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	for _, line := range doc.BilledTo {
		pdf.SetX(120)
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(6)

	// Item table
	colWidths := []float64{85, 35, 20, 50}
	headers := []string{"Description", "Unit Price", "Qty", "Pre-Tax Total"}
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(colWidths[i], 8, h, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, line := range doc.Lines {
		pdf.CellFormat(colWidths[0], 8, line.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colWidths[1], 8, line.UnitPrice, "1", 0, "R", false, 0, "")
		pdf.CellFormat(colWidths[2], 8, strconv.Itoa(line.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(colWidths[3], 8, line.LineTotal, "1", 1, "R", false, 0, "")
	}
	pdf.Ln(6)

	// Summary block, right aligned
	summary := [][2]string{
		{"Subtotal:", doc.Subtotal},
		{doc.GSTLabel, doc.GSTAmount},
		{"GRAND TOTAL:", doc.GrandTotal},
	}
	for i, row := range summary {
		if i == len(summary)-1 {
			pdf.SetFont("Helvetica", "B", 12)
		} else {
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.CellFormat(130, 7, row[0], "", 0, "R", false, 0, "")
		pdf.CellFormat(50, 7, row[1], "B", 1, "R", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

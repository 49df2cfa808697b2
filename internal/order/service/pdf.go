package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"pedido-service/internal/order/model"
)

// ExportPDF renders a printable order summary: one table row per line
// plus the order total. Same eligibility rule as the xlsx export.
func ExportPDF(lines []model.Line, generatedAt time.Time) ([]byte, error) {
	if len(lines) == 0 {
		return nil, ErrNothingToExport
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetTitle("Pedido", true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("") // cp1252, covers the Spanish headers

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 8, tr("Pedido "+generatedAt.Format("2006-01-02")))
	pdf.Ln(12)

	type column struct {
		title string
		width float64
	}
	cols := []column{
		{"SKU", 28}, {"Producto", 80}, {"PDV c/IVA", 24},
		{"Cant.", 14}, {"Subtotal", 26}, {"Modalidad", 26},
		{"Agente", 28}, {"Localidad", 26},
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	for _, c := range cols {
		pdf.CellFormat(c.width, 7, tr(c.title), "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	var total float64
	for _, ln := range lines {
		total += ln.Subtotal()
		cells := []string{
			ln.SKU,
			ln.Name,
			fmt.Sprintf("%.2f", ln.PdvIvaUnidad),
			fmt.Sprintf("%d", ln.Quantity),
			fmt.Sprintf("%.2f", ln.Subtotal()),
			ln.Modality,
			ln.Agent,
			ln.Location,
		}
		for i, c := range cols {
			pdf.CellFormat(c.width, 6, tr(cells[i]), "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.Cell(0, 10, tr(fmt.Sprintf("Total: %.2f", total)))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

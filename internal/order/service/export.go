package service

import (
	"errors"
	"fmt"
	"time"

	"pedido-service/internal/fileio"
	"pedido-service/internal/order/model"
)

// ErrNothingToExport signals zero export-eligible lines. A recoverable
// user-facing condition, not a fault.
var ErrNothingToExport = errors.New("nothing to export")

// ExportSheet is the sheet name of the generated workbook.
const ExportSheet = "Pedido"

// ExportHeaders is the fixed column order of an exported order.
var ExportHeaders = []string{
	"SKU / CÓDIGO",
	"PRODUCTO",
	"COSTO C/IVA UNIDAD",
	"COSTO C/IVA BULTO",
	"DIST. c/IVA UNIDAD",
	"DIST. c/IVA BULTO",
	"PDV c/IVA UNIDAD",
	"PDV c/IVA BULTO",
	"PVP Sugerido BULTO",
	"PVP Sugerido UNIDAD",
	"CANTIDAD",
	"SUBTOTAL",
	"MODALIDAD",
	"OBSERVACIÓN",
	"AGENTE",
	"LOCALIDAD",
	"PDV",
}

var exportColWidths = []float64{15, 35, 15, 15, 15, 15, 15, 15, 15, 15, 10, 12, 12, 20, 15, 15, 20}

// Project maps lines to flat rows in ExportHeaders order. Pure: no I/O,
// no side effects. Callers pre-filter to valid lines; zero lines yield
// ErrNothingToExport.
func Project(lines []model.Line) ([][]any, error) {
	if len(lines) == 0 {
		return nil, ErrNothingToExport
	}
	rows := make([][]any, len(lines))
	for i, ln := range lines {
		rows[i] = []any{
			ln.SKU,
			ln.Name,
			ln.CostoIvaUnidad,
			ln.CostoIvaBulto,
			ln.DistIvaUnidad,
			ln.DistIvaBulto,
			ln.PdvIvaUnidad,
			ln.PdvIvaBulto,
			ln.PvpSugeridoBulto,
			ln.PvpSugeridoUnidad,
			ln.Quantity,
			ln.Subtotal(),
			ln.Modality,
			ln.Observation,
			ln.Agent,
			ln.Location,
			ln.PDV,
		}
	}
	return rows, nil
}

// ExportXLSX projects the lines and serializes them into a workbook.
func ExportXLSX(lines []model.Line) ([]byte, error) {
	rows, err := Project(lines)
	if err != nil {
		return nil, err
	}
	return fileio.WriteXLSX(ExportSheet, ExportHeaders, rows, exportColWidths)
}

// ExportFilename is "Pedido_YYYY-MM-DD.<ext>" for the given date.
func ExportFilename(t time.Time, ext string) string {
	return fmt.Sprintf("Pedido_%s.%s", t.Format("2006-01-02"), ext)
}

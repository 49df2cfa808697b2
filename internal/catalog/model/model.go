package model

// Product is one row of the uploaded price list. Built in bulk from a
// single upload; the whole catalog is replaced wholesale, never merged.
// JSON names match the upload/search API payloads.
type Product struct {
	SKU              string  `json:"sku"`
	Name             string  `json:"product"`
	CostoIvaUnidad   float64 `json:"costoIvaUnidad"`
	CostoIvaBulto    float64 `json:"costoIvaBulto"`
	DistIvaUnidad    float64 `json:"distIvaUnidad"`
	DistIvaBulto     float64 `json:"distIvaBulto"`
	PdvIvaUnidad     float64 `json:"pdvIvaUnidad"`
	PdvIvaBulto      float64 `json:"pdvIvaBulto"`
	PvpSugeridoBulto float64 `json:"pvpSugeridoBulto"`
	PvpSugeridoUnidad float64 `json:"pvpSugeridoUnidad"`
}

// Logical catalog fields, in the order they are resolved and exported.
const (
	FieldSKU               = "sku"
	FieldProduct           = "product"
	FieldCostoIvaUnidad    = "costoIvaUnidad"
	FieldCostoIvaBulto     = "costoIvaBulto"
	FieldDistIvaUnidad     = "distIvaUnidad"
	FieldDistIvaBulto      = "distIvaBulto"
	FieldPdvIvaUnidad      = "pdvIvaUnidad"
	FieldPdvIvaBulto       = "pdvIvaBulto"
	FieldPvpSugeridoBulto  = "pvpSugeridoBulto"
	FieldPvpSugeridoUnidad = "pvpSugeridoUnidad"
)

// PriceFields lists the price columns in canonical order.
var PriceFields = []string{
	FieldCostoIvaUnidad,
	FieldCostoIvaBulto,
	FieldDistIvaUnidad,
	FieldDistIvaBulto,
	FieldPdvIvaUnidad,
	FieldPdvIvaBulto,
	FieldPvpSugeridoBulto,
	FieldPvpSugeridoUnidad,
}

// ExcelColumns maps each logical field to its accepted raw header names,
// in priority order. The lists mirror the headers seen in real supplier
// price lists; matching is order-sensitive and substring-based.
var ExcelColumns = map[string][]string{
	FieldSKU:               {"SKU", "CODIGO", "SKU / CODIGO", "SKU/CODIGO", "COD", "CÓDIGO"},
	FieldProduct:           {"PRODUCTO", "DESCRIPCION", "DESCRIPCIÓN", "NOMBRE", "ARTICULO"},
	FieldCostoIvaUnidad:    {"COSTO C/IVA UNIDAD", "COSTO IVA UNIDAD", "COSTO UNIDAD"},
	FieldCostoIvaBulto:     {"COSTO C/IVA BULTO", "COSTO IVA BULTO", "COSTO BULTO"},
	FieldDistIvaUnidad:     {"DISTRIBUIDOR c/IVA UNIDAD", "DIST c/IVA UNIDAD", "DISTRIBUIDOR UNIDAD"},
	FieldDistIvaBulto:      {"DISTRIBUIDOR c/IVA BULTO", "DIST c/IVA BULTO", "DISTRIBUIDOR BULTO"},
	FieldPdvIvaUnidad:      {"PDV c/IVA UNIDAD", "PDV IVA UNIDAD", "PDV UNIDAD"},
	FieldPdvIvaBulto:       {"PDV c/IVA BULTO", "PDV IVA BULTO", "PDV BULTO"},
	FieldPvpSugeridoBulto:  {"PVP Sugerido BULTO", "PVP BULTO", "PVP SUGERIDO BULTO"},
	FieldPvpSugeridoUnidad: {"PVP Sugerido UNIDAD", "PVP UNIDAD", "PVP SUGERIDO UNIDAD"},
}

// SetPrice assigns the named price field; unknown names are ignored.
func (p *Product) SetPrice(field string, v float64) {
	switch field {
	case FieldCostoIvaUnidad:
		p.CostoIvaUnidad = v
	case FieldCostoIvaBulto:
		p.CostoIvaBulto = v
	case FieldDistIvaUnidad:
		p.DistIvaUnidad = v
	case FieldDistIvaBulto:
		p.DistIvaBulto = v
	case FieldPdvIvaUnidad:
		p.PdvIvaUnidad = v
	case FieldPdvIvaBulto:
		p.PdvIvaBulto = v
	case FieldPvpSugeridoBulto:
		p.PvpSugeridoBulto = v
	case FieldPvpSugeridoUnidad:
		p.PvpSugeridoUnidad = v
	}
}

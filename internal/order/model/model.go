package model

import catmodel "pedido-service/internal/catalog/model"

// Line is one editable row of the order being assembled. Prices are
// copied from a catalog product at selection time and independently
// editable afterwards; a later catalog reload never touches an existing
// line. JSON names match the persisted/localStorage row shape.
type Line struct {
	ID                int64   `json:"id"`
	SKU               string  `json:"sku"`
	Name              string  `json:"product"`
	CostoIvaUnidad    float64 `json:"costoIvaUnidad"`
	CostoIvaBulto     float64 `json:"costoIvaBulto"`
	DistIvaUnidad     float64 `json:"distIvaUnidad"`
	DistIvaBulto      float64 `json:"distIvaBulto"`
	PdvIvaUnidad      float64 `json:"pdvIvaUnidad"`
	PdvIvaBulto       float64 `json:"pdvIvaBulto"`
	PvpSugeridoBulto  float64 `json:"pvpSugeridoBulto"`
	PvpSugeridoUnidad float64 `json:"pvpSugeridoUnidad"`
	Quantity          int     `json:"quantity"`
	Modality          string  `json:"modality"`
	Observation       string  `json:"observation"`
	Agent             string  `json:"agent"`
	Location          string  `json:"location"`
	PDV               string  `json:"pdv"`
}

// ModalityOptions is the fixed choice set offered for the modality
// column; the empty entry means "unselected".
var ModalityOptions = []string{"", "Firme", "Consignación"}

// Subtotal is the line's contribution to the order total.
func (l Line) Subtotal() float64 { return l.PdvIvaUnidad * float64(l.Quantity) }

// Valid reports whether the line counts for export and the displayed
// product count: both code and name non-empty.
func (l Line) Valid() bool { return l.SKU != "" && l.Name != "" }

// ApplyProduct copies code, name and all price fields from a catalog
// product. Quantity and the free-text fields are left alone.
func (l *Line) ApplyProduct(p catmodel.Product) {
	l.SKU = p.SKU
	l.Name = p.Name
	l.CostoIvaUnidad = p.CostoIvaUnidad
	l.CostoIvaBulto = p.CostoIvaBulto
	l.DistIvaUnidad = p.DistIvaUnidad
	l.DistIvaBulto = p.DistIvaBulto
	l.PdvIvaUnidad = p.PdvIvaUnidad
	l.PdvIvaBulto = p.PdvIvaBulto
	l.PvpSugeridoBulto = p.PvpSugeridoBulto
	l.PvpSugeridoUnidad = p.PvpSugeridoUnidad
}

// Snapshot is the persisted order state: the lines plus the id counter,
// so restored books keep allocating fresh ids.
type Snapshot struct {
	Lines   []Line `json:"rows"`
	Counter int64  `json:"rowIdCounter"`
}

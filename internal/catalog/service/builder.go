package service

import (
	"fmt"
	"sort"
	"strings"

	"pedido-service/internal/catalog/model"
)

// Record is one raw spreadsheet row, keyed by header. Cell values may be
// strings or already-numeric, depending on the decoder.
type Record = map[string]any

// Build normalizes raw rows into Products. headers is the sheet's column
// order; when nil, the first row's keys are used in sorted order (map
// order would not be deterministic). One raw header is resolved per
// logical field; rows whose code cell ends up empty are dropped.
//
// Only the SKU field gets a fallback when resolution fails: the first
// header is treated as the code column, so an oddly-labelled list still
// yields rows instead of silently losing all of them. Heuristic, not a
// correctness guarantee.
func Build(headers []string, rows []Record) []model.Product {
	if len(rows) == 0 {
		return nil
	}
	if len(headers) == 0 {
		for k := range rows[0] {
			headers = append(headers, k)
		}
		sort.Strings(headers)
	}

	cols := make(map[string]string, len(model.ExcelColumns))
	for field, candidates := range model.ExcelColumns {
		if h, ok := ResolveColumn(headers, candidates); ok {
			cols[field] = h
		}
	}
	if _, ok := cols[model.FieldSKU]; !ok {
		cols[model.FieldSKU] = headers[0]
	}

	out := make([]model.Product, 0, len(rows))
	for _, rec := range rows {
		p := model.Product{
			SKU:  cellString(rec[cols[model.FieldSKU]]),
			Name: cellString(rec[cols[model.FieldProduct]]),
		}
		if p.SKU == "" {
			continue
		}
		for _, field := range model.PriceFields {
			col, ok := cols[field]
			if !ok {
				continue
			}
			p.SetPrice(field, ParsePrice(rec[col]))
		}
		out = append(out, p)
	}
	return out
}

// RecordsFromStrings adapts decoder output (all-string cells) to Records.
func RecordsFromStrings(maps []map[string]string) []Record {
	out := make([]Record, len(maps))
	for i, m := range maps {
		rec := make(Record, len(m))
		for k, v := range m {
			rec[k] = v
		}
		out[i] = rec
	}
	return out
}

// cellString trims string cells and blank-coerces everything else.
func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(x)
	default:
		return strings.TrimSpace(fmt.Sprint(x))
	}
}

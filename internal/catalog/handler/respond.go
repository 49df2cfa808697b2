package handler

import (
	"encoding/json"
	"net/http"

	"pedido-service/internal/catalog/model"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"ok": false, "error": msg})
}

// emptyIfNil keeps "no matches" as [] instead of null on the wire.
func emptyIfNil(ps []model.Product) []model.Product {
	if ps == nil {
		return []model.Product{}
	}
	return ps
}

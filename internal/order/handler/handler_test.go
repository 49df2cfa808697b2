package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catmodel "pedido-service/internal/catalog/model"
	catservice "pedido-service/internal/catalog/service"
	"pedido-service/internal/order/service"
)

func newTestRouter(t *testing.T) (*chi.Mux, *service.Book) {
	t.Helper()
	idx := catservice.NewIndex()
	idx.Replace([]catmodel.Product{{SKU: "A1", Name: "Widget", PdvIvaUnidad: 100.50}})
	book := service.NewBook()
	h := New(book, idx, nil, zerolog.Nop())

	r := chi.NewRouter()
	r.Route("/api/order", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Delete("/", h.Clear)
		r.Post("/rows", h.AddRow)
		r.Patch("/rows/{id}", h.UpdateRow)
		r.Delete("/rows/{id}", h.DeleteRow)
		r.Post("/rows/{id}/duplicate", h.DuplicateRow)
		r.Post("/rows/{id}/product", h.SelectProduct)
		r.Post("/export", h.ExportXLSX)
		r.Post("/export/pdf", h.ExportPDF)
	})
	return r, book
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	} else {
		rd = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestGetInitialOrder(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := doJSON(t, r, http.MethodGet, "/api/order", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	rows := body["rows"].([]any)
	require.Len(t, rows, 1)
	assert.Equal(t, float64(0), body["total"])
	assert.Equal(t, float64(0), body["validCount"])
	assert.Equal(t, []any{"", "Firme", "Consignación"}, body["modalityOptions"])
}

func TestAddUpdateSelectFlow(t *testing.T) {
	r, book := newTestRouter(t)
	id := book.Lines()[0].ID

	rec := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/order/rows/%d/product", id), map[string]any{"sku": "A1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	row := decode(t, rec)["row"].(map[string]any)
	assert.Equal(t, "Widget", row["product"])
	assert.Equal(t, 100.50, row["pdvIvaUnidad"])

	rec = doJSON(t, r, http.MethodPatch, fmt.Sprintf("/api/order/rows/%d", id), map[string]any{"field": "quantity", "value": 3})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.InDelta(t, 301.50, body["total"].(float64), 1e-9)

	rec = doJSON(t, r, http.MethodPost, "/api/order/rows", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	newRow := decode(t, rec)["row"].(map[string]any)
	assert.Greater(t, newRow["id"].(float64), float64(id))
}

func TestAddRowWithSeed(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := doJSON(t, r, http.MethodPost, "/api/order/rows", map[string]any{"sku": "B2", "product": "Gadget", "quantity": 2})
	require.Equal(t, http.StatusOK, rec.Code)
	row := decode(t, rec)["row"].(map[string]any)
	assert.Equal(t, "B2", row["sku"])
	assert.Equal(t, float64(2), row["quantity"])
}

func TestSelectUnknownProduct(t *testing.T) {
	r, book := newTestRouter(t)
	id := book.Lines()[0].ID

	rec := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/order/rows/%d/product", id), map[string]any{"sku": "ZZ"})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Producto no encontrado", decode(t, rec)["error"])
}

func TestUpdateUnknownRow(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := doJSON(t, r, http.MethodPatch, "/api/order/rows/999", map[string]any{"field": "sku", "value": "X"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, r, http.MethodPatch, "/api/order/rows/abc", map[string]any{"field": "sku", "value": "X"})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, r, http.MethodPatch, "/api/order/rows/1", map[string]any{"value": "X"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Falta el campo a actualizar", decode(t, rec)["error"])
}

func TestDuplicateAndDelete(t *testing.T) {
	r, book := newTestRouter(t)
	id := book.Lines()[0].ID
	book.ApplyProduct(id, catmodelProduct())

	rec := doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/order/rows/%d/duplicate", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	dup := decode(t, rec)["row"].(map[string]any)
	assert.Equal(t, "Widget", dup["product"])
	require.Len(t, book.Lines(), 2)

	rec = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/order/rows/%d", id), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rows := decode(t, rec)["rows"].([]any)
	assert.Len(t, rows, 1)

	rec = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/order/rows/%d", id), nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClearOrder(t *testing.T) {
	r, book := newTestRouter(t)
	book.AddLine(nil)
	book.AddLine(nil)

	rec := doJSON(t, r, http.MethodDelete, "/api/order", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	lines := book.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, int64(1), lines[0].ID)
}

func TestExportFromServerBook(t *testing.T) {
	r, book := newTestRouter(t)
	id := book.Lines()[0].ID
	book.ApplyProduct(id, catmodelProduct())

	req := httptest.NewRequest(http.MethodPost, "/api/order/export", strings.NewReader(""))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Pedido_")
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")), "xlsx is a zip container")
}

func TestExportFromRequestBody(t *testing.T) {
	r, _ := newTestRouter(t)
	rec := doJSON(t, r, http.MethodPost, "/api/order/export", map[string]any{
		"rows": []map[string]any{
			{"sku": "A1", "product": "Widget", "pdvIvaUnidad": 10, "quantity": 2},
			{"sku": "", "product": "sin código"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
}

func TestExportNothing(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/api/order/export", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "No hay datos para exportar", decode(t, rec)["error"])

	rec = doJSON(t, r, http.MethodPost, "/api/order/export/pdf", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportPDFDownload(t *testing.T) {
	r, book := newTestRouter(t)
	book.ApplyProduct(book.Lines()[0].ID, catmodelProduct())

	rec := doJSON(t, r, http.MethodPost, "/api/order/export/pdf", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func catmodelProduct() catmodel.Product {
	return catmodel.Product{SKU: "A1", Name: "Widget", PdvIvaUnidad: 100.50}
}

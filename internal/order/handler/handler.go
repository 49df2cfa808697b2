package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	catservice "pedido-service/internal/catalog/service"
	"pedido-service/internal/middleware"
	"pedido-service/internal/order/model"
	"pedido-service/internal/order/service"
	"pedido-service/internal/store"
)

// Handler serves the order API around one shared Book. Line mutations
// are snapshotted to the store after each change, last write wins.
type Handler struct {
	book    *service.Book
	catalog catservice.Source
	st      *store.Store // optional
	logger  zerolog.Logger
}

func New(book *service.Book, catalog catservice.Source, st *store.Store, logger zerolog.Logger) *Handler {
	return &Handler{book: book, catalog: catalog, st: st, logger: logger}
}

func (h *Handler) log(r *http.Request) *zerolog.Logger {
	l := h.logger.With().Str("rid", middleware.GetRequestID(r)).Logger()
	return &l
}

// Get returns the whole order: rows in display order, running total and
// the valid-line count.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":              true,
		"rows":            h.book.Lines(),
		"total":           h.book.Total(),
		"validCount":      h.book.ValidCount(),
		"modalityOptions": model.ModalityOptions,
	})
}

// AddRow appends a line; the body may carry partial seed data.
func (h *Handler) AddRow(w http.ResponseWriter, r *http.Request) {
	var seed *model.Line
	if r.Body != nil && r.ContentLength != 0 {
		var ln model.Line
		if err := json.NewDecoder(r.Body).Decode(&ln); err != nil {
			writeError(w, http.StatusBadRequest, "Fila inválida: "+err.Error())
			return
		}
		seed = &ln
	}
	id := h.book.AddLine(seed)
	h.persist(r)
	ln, _ := h.book.Line(id)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "row": ln, "total": h.book.Total()})
}

type updateRequest struct {
	Field string `json:"field"`
	Value any    `json:"value"`
}

// UpdateRow mutates one field of one line.
func (h *Handler) UpdateRow(w http.ResponseWriter, r *http.Request) {
	id, ok := rowID(w, r)
	if !ok {
		return
	}
	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}
	if req.Field == "" {
		writeError(w, http.StatusBadRequest, "Falta el campo a actualizar")
		return
	}
	ln, found := h.book.UpdateField(id, req.Field, req.Value)
	if !found {
		writeError(w, http.StatusNotFound, "Fila no encontrada")
		return
	}
	h.persist(r)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "row": ln, "total": h.book.Total()})
}

type selectRequest struct {
	SKU string `json:"sku"`
}

// SelectProduct looks the code up in the catalog and copies the product
// into the line.
func (h *Handler) SelectProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := rowID(w, r)
	if !ok {
		return
	}
	var req selectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Cuerpo inválido: "+err.Error())
		return
	}
	p, found, err := h.catalog.BySKU(r.Context(), req.SKU)
	if err != nil {
		h.log(r).Error().Err(err).Str("sku", req.SKU).Msg("product lookup")
		writeError(w, http.StatusServiceUnavailable, "Catálogo no disponible")
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "Producto no encontrado")
		return
	}
	ln, found := h.book.ApplyProduct(id, p)
	if !found {
		writeError(w, http.StatusNotFound, "Fila no encontrada")
		return
	}
	h.persist(r)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "row": ln, "total": h.book.Total()})
}

// DuplicateRow copies a line under a fresh id.
func (h *Handler) DuplicateRow(w http.ResponseWriter, r *http.Request) {
	id, ok := rowID(w, r)
	if !ok {
		return
	}
	newID, found := h.book.DuplicateLine(id)
	if !found {
		writeError(w, http.StatusNotFound, "Fila no encontrada")
		return
	}
	h.persist(r)
	ln, _ := h.book.Line(newID)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "row": ln, "total": h.book.Total()})
}

// DeleteRow removes a line; the book re-creates a blank one if that was
// the last.
func (h *Handler) DeleteRow(w http.ResponseWriter, r *http.Request) {
	id, ok := rowID(w, r)
	if !ok {
		return
	}
	if !h.book.DeleteLine(id) {
		writeError(w, http.StatusNotFound, "Fila no encontrada")
		return
	}
	h.persist(r)
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "rows": h.book.Lines(), "total": h.book.Total()})
}

// Clear resets the order to a single blank line.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	h.book.Clear()
	h.persist(r)
	h.log(r).Info().Msg("order cleared")
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "message": "Pedido limpiado"})
}

type exportRequest struct {
	Rows []model.Line `json:"rows"`
}

// exportLines picks the rows to export: the request body's rows when
// present (the stateless contract thin clients use), otherwise the
// server-held book. Only valid lines are eligible either way.
func (h *Handler) exportLines(r *http.Request) []model.Line {
	var req exportRequest
	if r.Body != nil {
		_ = json.NewDecoder(r.Body).Decode(&req)
	}
	src := req.Rows
	if len(src) == 0 {
		return h.book.ValidLines()
	}
	var out []model.Line
	for _, ln := range src {
		if ln.Valid() {
			out = append(out, ln)
		}
	}
	return out
}

// ExportXLSX streams the order as a workbook download.
func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	lines := h.exportLines(r)
	b, err := service.ExportXLSX(lines)
	if err != nil {
		h.exportError(w, r, err)
		return
	}
	name := service.ExportFilename(time.Now(), "xlsx")
	h.log(r).Info().Int("rows", len(lines)).Str("filename", name).Msg("order exported")
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = w.Write(b)
}

// ExportPDF streams the order summary as a PDF download.
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	lines := h.exportLines(r)
	now := time.Now()
	b, err := service.ExportPDF(lines, now)
	if err != nil {
		h.exportError(w, r, err)
		return
	}
	name := service.ExportFilename(now, "pdf")
	h.log(r).Info().Int("rows", len(lines)).Str("filename", name).Msg("order exported")
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, _ = w.Write(b)
}

func (h *Handler) exportError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrNothingToExport) {
		writeError(w, http.StatusBadRequest, "No hay datos para exportar")
		return
	}
	h.log(r).Error().Err(err).Msg("order export")
	writeError(w, http.StatusInternalServerError, "Error al generar el archivo")
}

func (h *Handler) persist(r *http.Request) {
	if h.st == nil {
		return
	}
	snap := h.book.Snapshot()
	if err := h.st.Save(store.KeyRows, snap.Lines); err != nil {
		h.log(r).Warn().Err(err).Msg("persist rows")
		return
	}
	if err := h.st.Save(store.KeyCounter, snap.Counter); err != nil {
		h.log(r).Warn().Err(err).Msg("persist counter")
	}
}

func rowID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Identificador de fila inválido")
		return 0, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]any{"ok": false, "error": msg})
}

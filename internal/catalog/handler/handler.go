package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"pedido-service/internal/catalog/service"
	"pedido-service/internal/middleware"
	"pedido-service/internal/store"
)

// Handler serves the catalog API. It only talks to the Source contracts,
// so the same handlers work whether the catalog is the in-process index
// or a remote backend behind the failover wrapper.
type Handler struct {
	src    service.Source
	st     *store.Store // optional
	logger zerolog.Logger
}

func New(src service.Source, st *store.Store, logger zerolog.Logger) *Handler {
	return &Handler{src: src, st: st, logger: logger}
}

func (h *Handler) log(r *http.Request) *zerolog.Logger {
	l := h.logger.With().Str("rid", middleware.GetRequestID(r)).Logger()
	return &l
}

// Status reports whether a catalog is loaded and how many products it
// holds.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	st, err := h.src.Status(r.Context())
	if err != nil {
		h.log(r).Error().Err(err).Msg("catalog status")
		writeError(w, http.StatusServiceUnavailable, "Catálogo no disponible")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "catalog": st})
}

// Upload accepts a catalog spreadsheet (multipart field "catalog") and
// replaces the whole catalog with its rows.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	log := h.log(r)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "Formulario inválido: "+err.Error())
		return
	}
	file, header, err := r.FormFile("catalog")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No se recibió ningún archivo")
		return
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(header.Filename)) {
	case ".xlsx", ".xls", ".csv":
	default:
		writeError(w, http.StatusBadRequest, "Solo se permiten archivos Excel (.xlsx, .xls) o CSV")
		return
	}

	count, err := h.src.Upload(r.Context(), header.Filename, file)
	if err != nil {
		log.Error().Err(err).Str("filename", header.Filename).Msg("catalog upload")
		writeError(w, http.StatusBadRequest, "Error al procesar el archivo: "+err.Error())
		return
	}
	if count == 0 {
		writeError(w, http.StatusBadRequest, "El archivo está vacío")
		return
	}

	h.persistCatalog(r)
	log.Info().Int("products", count).Str("filename", header.Filename).Msg("catalog loaded")
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":           true,
		"message":      "Catálogo cargado exitosamente",
		"productCount": count,
		"filename":     header.Filename,
	})
}

// Products returns the full catalog.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	products, err := h.src.Products(r.Context())
	if err != nil {
		h.log(r).Error().Err(err).Msg("catalog products")
		writeError(w, http.StatusServiceUnavailable, "Catálogo no disponible")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "products": emptyIfNil(products)})
}

// Search returns up to 15 matches on code or name.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	products, err := h.src.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.log(r).Error().Err(err).Msg("catalog search")
		writeError(w, http.StatusServiceUnavailable, "Catálogo no disponible")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "products": emptyIfNil(products)})
}

// BySKU is the exact-code lookup; 404 when nothing matches.
func (h *Handler) BySKU(w http.ResponseWriter, r *http.Request) {
	p, ok, err := h.src.BySKU(r.Context(), chi.URLParam(r, "sku"))
	if err != nil {
		h.log(r).Error().Err(err).Msg("catalog sku lookup")
		writeError(w, http.StatusServiceUnavailable, "Catálogo no disponible")
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "Producto no encontrado")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "product": p})
}

// Clear drops the loaded catalog.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.src.Clear(r.Context()); err != nil {
		h.log(r).Error().Err(err).Msg("catalog clear")
		writeError(w, http.StatusServiceUnavailable, "Catálogo no disponible")
		return
	}
	if h.st != nil {
		_ = h.st.Delete(store.KeyCatalog)
	}
	h.log(r).Info().Msg("catalog cleared")
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "message": "Catálogo limpiado"})
}

func (h *Handler) persistCatalog(r *http.Request) {
	if h.st == nil {
		return
	}
	products, err := h.src.Products(r.Context())
	if err != nil {
		return
	}
	if err := h.st.Save(store.KeyCatalog, products); err != nil {
		h.log(r).Warn().Err(err).Msg("persist catalog")
	}
}

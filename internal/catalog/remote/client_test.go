package remote

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pedido-service/internal/catalog/model"
)

func TestStatus(t *testing.T) {
	loaded := time.Date(2025, 3, 9, 10, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/status", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"ok": true,
			"catalog": map[string]any{
				"loaded":       true,
				"filename":     "lista.xlsx",
				"productCount": 42,
				"loadedAt":     loaded,
			},
		})
	}))
	defer srv.Close()

	st, err := NewClient(srv.URL).Status(context.Background())
	require.NoError(t, err)
	assert.True(t, st.Loaded)
	assert.Equal(t, "lista.xlsx", st.Filename)
	assert.Equal(t, 42, st.ProductCount)
	assert.True(t, st.LoadedAt.Equal(loaded))
}

func TestStatusServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	_, err := NewClient(srv.URL).Status(context.Background())
	assert.Error(t, err)
}

func TestUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/catalog/upload", r.URL.Path)
		f, hdr, err := r.FormFile("catalog")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "lista.csv", hdr.Filename)
		json.NewEncoder(w).Encode(map[string]any{"ok": true, "productCount": 2})
	}))
	defer srv.Close()

	n, err := NewClient(srv.URL).Upload(context.Background(), "lista.csv", strings.NewReader("SKU,PRODUCTO\nA1,Widget\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestUploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "El archivo está vacío"})
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Upload(context.Background(), "x.csv", strings.NewReader(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "El archivo está vacío")
}

func TestSearchEscapesQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/catalog/search", r.URL.Path)
		assert.Equal(t, "café & más", r.URL.Query().Get("q"))
		json.NewEncoder(w).Encode(map[string]any{
			"ok":       true,
			"products": []model.Product{{SKU: "A1", Name: "Café"}},
		})
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL).Search(context.Background(), "café & más")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "A1", got[0].SKU)
}

func TestBySKU(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/catalog/sku/A1":
			json.NewEncoder(w).Encode(map[string]any{
				"ok":      true,
				"product": model.Product{SKU: "A1", Name: "Widget", PdvIvaUnidad: 100.50},
			})
		default:
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": "Producto no encontrado"})
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL)

	p, ok, err := c.BySKU(context.Background(), "A1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 100.50, p.PdvIvaUnidad)

	_, ok, err = c.BySKU(context.Background(), "ZZ")
	require.NoError(t, err, "404 is an answer, not a failure")
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	var gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		require.Equal(t, "/api/catalog", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	require.NoError(t, NewClient(srv.URL).Clear(context.Background()))
	assert.Equal(t, http.MethodDelete, gotMethod)
}

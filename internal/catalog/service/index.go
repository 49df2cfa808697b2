package service

import (
	"context"
	"io"
	"strings"
	"sync"
	"time"

	"pedido-service/internal/catalog/model"
	"pedido-service/internal/fileio"
)

// MaxSearchResults caps a search response.
const MaxSearchResults = 15

type Status struct {
	Loaded       bool      `json:"loaded"`
	ProductCount int       `json:"productCount"`
	LoadedAt     time.Time `json:"loadedAt,omitzero"`
	Filename     string    `json:"filename,omitempty"`
}

// Source is the catalog capability the rest of the service programs
// against. The in-process Index and the remote HTTP client both
// implement it; callers must behave identically with either.
type Source interface {
	Status(ctx context.Context) (Status, error)
	Upload(ctx context.Context, filename string, data io.Reader) (int, error)
	Products(ctx context.Context) ([]model.Product, error)
	Search(ctx context.Context, query string) ([]model.Product, error)
	BySKU(ctx context.Context, sku string) (model.Product, bool, error)
	Clear(ctx context.Context) error
}

// Index owns the canonical product collection. The collection is swapped
// wholesale under the write lock, so readers always observe either the
// fully-old or the fully-new catalog.
type Index struct {
	mu       sync.RWMutex
	products []model.Product
	loadedAt time.Time
	filename string
}

func NewIndex() *Index { return &Index{} }

var _ Source = (*Index)(nil)

// Replace atomically swaps the whole backing collection.
func (ix *Index) Replace(products []model.Product) {
	ix.swap(products, "")
}

func (ix *Index) swap(products []model.Product, filename string) {
	ix.mu.Lock()
	ix.products = products
	ix.filename = filename
	if len(products) > 0 {
		ix.loadedAt = time.Now().UTC()
	} else {
		ix.loadedAt = time.Time{}
	}
	ix.mu.Unlock()
}

// Upload decodes a spreadsheet and replaces the catalog with its rows.
// Returns the resulting product count. A sheet that yields no products
// leaves the current catalog untouched, so a bad upload never wipes a
// working one.
func (ix *Index) Upload(_ context.Context, filename string, data io.Reader) (int, error) {
	headers, maps, err := fileio.ReadAnyMaps(data, filename, 1)
	if err != nil {
		return 0, err
	}
	products := Build(headers, RecordsFromStrings(maps))
	if len(products) == 0 {
		return 0, nil
	}
	ix.swap(products, filename)
	return len(products), nil
}

func (ix *Index) Status(context.Context) (Status, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return Status{
		Loaded:       len(ix.products) > 0,
		ProductCount: len(ix.products),
		LoadedAt:     ix.loadedAt,
		Filename:     ix.filename,
	}, nil
}

func (ix *Index) Products(context.Context) ([]model.Product, error) {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	out := make([]model.Product, len(ix.products))
	copy(out, ix.products)
	return out, nil
}

// Search returns up to MaxSearchResults products whose code or name
// contains the query, case-insensitively, in catalog order. An empty
// query matches nothing, not everything.
func (ix *Index) Search(_ context.Context, query string) ([]model.Product, error) {
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	var out []model.Product
	for _, p := range ix.products {
		if strings.Contains(strings.ToUpper(p.SKU), q) ||
			strings.Contains(strings.ToUpper(p.Name), q) {
			out = append(out, p)
			if len(out) == MaxSearchResults {
				break
			}
		}
	}
	return out, nil
}

// BySKU is a case-insensitive exact lookup. Duplicate codes are allowed
// in a catalog; the first in catalog order wins.
func (ix *Index) BySKU(_ context.Context, sku string) (model.Product, bool, error) {
	key := strings.ToUpper(strings.TrimSpace(sku))
	if key == "" {
		return model.Product{}, false, nil
	}
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	for _, p := range ix.products {
		if strings.ToUpper(p.SKU) == key {
			return p, true, nil
		}
	}
	return model.Product{}, false, nil
}

func (ix *Index) Clear(context.Context) error {
	ix.swap(nil, "")
	return nil
}

// Count reports the number of products without building a copy.
func (ix *Index) Count() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return len(ix.products)
}

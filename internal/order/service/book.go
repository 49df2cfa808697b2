package service

import (
	"strconv"
	"strings"
	"sync"

	catmodel "pedido-service/internal/catalog/model"
	catservice "pedido-service/internal/catalog/service"
	"pedido-service/internal/order/model"
)

// Book owns the order lines. All mutation goes through its methods, each
// an atomic unit under the lock; the running total is adjusted per
// mutation and always equals the from-scratch sum over all lines.
//
// A book is never observably empty: deleting the last line, or clearing,
// immediately creates a fresh blank one.
type Book struct {
	mu      sync.Mutex
	lines   []model.Line
	counter int64
	total   float64
}

func NewBook() *Book {
	b := &Book{}
	b.mu.Lock()
	b.addLocked(nil)
	b.mu.Unlock()
	return b
}

// addLocked allocates the next id, merges seed fields over defaults and
// appends. Caller holds b.mu.
func (b *Book) addLocked(seed *model.Line) int64 {
	ln := model.Line{Quantity: 1}
	if seed != nil {
		ln = *seed
	}
	b.counter++
	ln.ID = b.counter
	if ln.Quantity < 1 {
		ln.Quantity = 1
	}
	b.lines = append(b.lines, ln)
	b.total += ln.Subtotal()
	return ln.ID
}

// AddLine appends a new line, optionally seeded from partial line data,
// and returns its id.
func (b *Book) AddLine(seed *model.Line) int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.addLocked(seed)
}

func (b *Book) findLocked(id int64) *model.Line {
	for i := range b.lines {
		if b.lines[i].ID == id {
			return &b.lines[i]
		}
	}
	return nil
}

// UpdateField mutates exactly one field on the line. Quantity input is
// coerced to an integer and clamped to >= 1; price fields go through the
// price parser; unknown fields and unknown ids are no-ops.
func (b *Book) UpdateField(id int64, field string, value any) (model.Line, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ln := b.findLocked(id)
	if ln == nil {
		return model.Line{}, false
	}
	old := ln.Subtotal()
	switch field {
	case "sku":
		ln.SKU = asText(value)
	case "product":
		ln.Name = asText(value)
	case "quantity":
		ln.Quantity = asQuantity(value)
	case catmodel.FieldCostoIvaUnidad:
		ln.CostoIvaUnidad = catservice.ParsePrice(value)
	case catmodel.FieldCostoIvaBulto:
		ln.CostoIvaBulto = catservice.ParsePrice(value)
	case catmodel.FieldDistIvaUnidad:
		ln.DistIvaUnidad = catservice.ParsePrice(value)
	case catmodel.FieldDistIvaBulto:
		ln.DistIvaBulto = catservice.ParsePrice(value)
	case catmodel.FieldPdvIvaUnidad:
		ln.PdvIvaUnidad = catservice.ParsePrice(value)
	case catmodel.FieldPdvIvaBulto:
		ln.PdvIvaBulto = catservice.ParsePrice(value)
	case catmodel.FieldPvpSugeridoBulto:
		ln.PvpSugeridoBulto = catservice.ParsePrice(value)
	case catmodel.FieldPvpSugeridoUnidad:
		ln.PvpSugeridoUnidad = catservice.ParsePrice(value)
	case "modality":
		ln.Modality = asText(value)
	case "observation":
		ln.Observation = asText(value)
	case "agent":
		ln.Agent = asText(value)
	case "location":
		ln.Location = asText(value)
	case "pdv":
		ln.PDV = asText(value)
	default:
		return *ln, true
	}
	b.total += ln.Subtotal() - old
	return *ln, true
}

// ApplyProduct bulk-overwrites code, name and the price fields from a
// catalog product. The line keeps its quantity and free-text fields and
// holds no reference back to the catalog.
func (b *Book) ApplyProduct(id int64, p catmodel.Product) (model.Line, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	ln := b.findLocked(id)
	if ln == nil {
		return model.Line{}, false
	}
	old := ln.Subtotal()
	ln.ApplyProduct(p)
	b.total += ln.Subtotal() - old
	return *ln, true
}

// DeleteLine removes the line. Deleting the last remaining line leaves a
// fresh blank one behind.
func (b *Book) DeleteLine(id int64) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.lines {
		if b.lines[i].ID == id {
			b.total -= b.lines[i].Subtotal()
			b.lines = append(b.lines[:i], b.lines[i+1:]...)
			if len(b.lines) == 0 {
				b.addLocked(nil)
			}
			return true
		}
	}
	return false
}

// DuplicateLine appends a copy of the source line (fresh id, same field
// values) and returns the new id.
func (b *Book) DuplicateLine(id int64) (int64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	src := b.findLocked(id)
	if src == nil {
		return 0, false
	}
	seed := *src
	return b.addLocked(&seed), true
}

// Clear removes all lines, resets the id counter and leaves one blank
// line.
func (b *Book) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
	b.counter = 0
	b.total = 0
	b.addLocked(nil)
}

// Lines returns all lines in display order.
func (b *Book) Lines() []model.Line {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]model.Line, len(b.lines))
	copy(out, b.lines)
	return out
}

// Line returns a single line by id.
func (b *Book) Line(id int64) (model.Line, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if ln := b.findLocked(id); ln != nil {
		return *ln, true
	}
	return model.Line{}, false
}

// ValidLines returns, in display order, the lines with both code and
// name set; this is the export-eligible and counted set.
func (b *Book) ValidLines() []model.Line {
	b.mu.Lock()
	defer b.mu.Unlock()
	var out []model.Line
	for _, ln := range b.lines {
		if ln.Valid() {
			out = append(out, ln)
		}
	}
	return out
}

// ValidCount is len(ValidLines()) without the copy.
func (b *Book) ValidCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	n := 0
	for _, ln := range b.lines {
		if ln.Valid() {
			n++
		}
	}
	return n
}

// Total sums pdvIvaUnidad*quantity over all lines, valid or not; blank
// lines contribute 0 through their zero price.
func (b *Book) Total() float64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.total
}

// Snapshot captures the lines and id counter for persistence.
func (b *Book) Snapshot() model.Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	lines := make([]model.Line, len(b.lines))
	copy(lines, b.lines)
	return model.Snapshot{Lines: lines, Counter: b.counter}
}

// Restore replaces the book's state from a snapshot. The counter is
// bumped past the highest restored id so ids are never reused, and the
// total is recomputed from scratch.
func (b *Book) Restore(s model.Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = make([]model.Line, len(s.Lines))
	copy(b.lines, s.Lines)
	b.counter = s.Counter
	b.total = 0
	for i := range b.lines {
		if b.lines[i].Quantity < 1 {
			b.lines[i].Quantity = 1
		}
		if b.lines[i].ID > b.counter {
			b.counter = b.lines[i].ID
		}
		b.total += b.lines[i].Subtotal()
	}
	if len(b.lines) == 0 {
		b.addLocked(nil)
	}
}

func asText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return strings.TrimSpace(asString(x))
	}
}

func asString(v any) string {
	switch x := v.(type) {
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case bool:
		return strconv.FormatBool(x)
	default:
		return ""
	}
}

// asQuantity coerces to a positive integer, 1 for anything unusable.
func asQuantity(v any) int {
	q := 1
	switch x := v.(type) {
	case int:
		q = x
	case int64:
		q = int(x)
	case float64:
		q = int(x)
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil {
			q = n
		} else if f, err := strconv.ParseFloat(strings.TrimSpace(x), 64); err == nil {
			q = int(f)
		}
	}
	if q < 1 {
		q = 1
	}
	return q
}

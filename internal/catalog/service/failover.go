package service

import (
	"context"
	"io"
	"sync/atomic"

	"github.com/rs/zerolog"

	"pedido-service/internal/catalog/model"
)

// Failover fronts a remote catalog Source and degrades to a local one on
// the first transport failure. The decision is sticky: once degraded it
// stays on the local source instead of re-deciding per call, so a flaky
// backend cannot flip the catalog back and forth under the user.
type Failover struct {
	remote   Source
	local    Source
	degraded atomic.Bool
	log      zerolog.Logger
}

func NewFailover(remote, local Source, log zerolog.Logger) *Failover {
	return &Failover{remote: remote, local: local, log: log}
}

var _ Source = (*Failover)(nil)

func (f *Failover) degrade(op string, err error) {
	if f.degraded.CompareAndSwap(false, true) {
		f.log.Warn().Err(err).Str("op", op).Msg("remote catalog unavailable, using local catalog")
	}
}

// Degraded reports whether the local source is in effect.
func (f *Failover) Degraded() bool { return f.degraded.Load() }

func (f *Failover) Status(ctx context.Context) (Status, error) {
	if !f.degraded.Load() {
		st, err := f.remote.Status(ctx)
		if err == nil {
			return st, nil
		}
		f.degrade("status", err)
	}
	return f.local.Status(ctx)
}

func (f *Failover) Upload(ctx context.Context, filename string, data io.Reader) (int, error) {
	if !f.degraded.Load() {
		n, err := f.remote.Upload(ctx, filename, data)
		if err == nil {
			return n, nil
		}
		f.degrade("upload", err)
		// the reader may be partially consumed; the caller retries
		// against the local source on the next request
		return 0, err
	}
	return f.local.Upload(ctx, filename, data)
}

func (f *Failover) Products(ctx context.Context) ([]model.Product, error) {
	if !f.degraded.Load() {
		out, err := f.remote.Products(ctx)
		if err == nil {
			return out, nil
		}
		f.degrade("products", err)
	}
	return f.local.Products(ctx)
}

func (f *Failover) Search(ctx context.Context, query string) ([]model.Product, error) {
	if !f.degraded.Load() {
		out, err := f.remote.Search(ctx, query)
		if err == nil {
			return out, nil
		}
		f.degrade("search", err)
	}
	return f.local.Search(ctx, query)
}

func (f *Failover) BySKU(ctx context.Context, sku string) (model.Product, bool, error) {
	if !f.degraded.Load() {
		p, ok, err := f.remote.BySKU(ctx, sku)
		if err == nil {
			return p, ok, nil
		}
		f.degrade("sku", err)
	}
	return f.local.BySKU(ctx, sku)
}

func (f *Failover) Clear(ctx context.Context) error {
	if !f.degraded.Load() {
		err := f.remote.Clear(ctx)
		if err == nil {
			return nil
		}
		f.degrade("clear", err)
	}
	return f.local.Clear(ctx)
}

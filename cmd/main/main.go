package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	catHnd "pedido-service/internal/catalog/handler"
	catmodel "pedido-service/internal/catalog/model"
	"pedido-service/internal/catalog/remote"
	catservice "pedido-service/internal/catalog/service"
	"pedido-service/internal/config"
	ordHnd "pedido-service/internal/order/handler"
	ordmodel "pedido-service/internal/order/model"
	ordservice "pedido-service/internal/order/service"
	"pedido-service/internal/store"
	serverhttp "pedido-service/server/http"
)

func main() {
	cfg := config.Load()
	logger := config.SetupLogger(cfg)

	st, err := store.New(cfg.DataDir)
	if err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.DataDir).Msg("open data dir")
	}

	index := catservice.NewIndex()
	var source catservice.Source = index
	if cfg.CatalogURL != "" {
		source = catservice.NewFailover(remote.NewClient(cfg.CatalogURL), index, logger)
		logger.Info().Str("url", cfg.CatalogURL).Msg("remote catalog enabled")
	}

	book := ordservice.NewBook()
	restoreState(st, index, book, logger)

	catalog := catHnd.New(source, st, logger)
	order := ordHnd.New(book, source, st, logger)
	r := serverhttp.NewRouter(cfg, logger, catalog, order)

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	logger.Info().Str("addr", cfg.Addr()).Msg("server starting")

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("listen")
		}
	}()

	// graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("server shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	logger.Info().Msg("bye")
}

// restoreState reloads the persisted catalog and order, if any.
func restoreState(st *store.Store, index *catservice.Index, book *ordservice.Book, logger zerolog.Logger) {
	var products []catmodel.Product
	switch err := st.Load(store.KeyCatalog, &products); err {
	case nil:
		index.Replace(products)
		logger.Info().Int("products", len(products)).Msg("catalog restored")
	case store.ErrNotFound:
	default:
		logger.Warn().Err(err).Msg("restore catalog")
	}

	var snap ordmodel.Snapshot
	if err := st.Load(store.KeyRows, &snap.Lines); err != nil {
		if err != store.ErrNotFound {
			logger.Warn().Err(err).Msg("restore order rows")
		}
		return
	}
	if err := st.Load(store.KeyCounter, &snap.Counter); err != nil && err != store.ErrNotFound {
		logger.Warn().Err(err).Msg("restore row counter")
	}
	book.Restore(snap)
	logger.Info().Int("rows", len(snap.Lines)).Msg("order restored")
}

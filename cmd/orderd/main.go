package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/salesdesk/order-intake/internal/catalog"
	"github.com/salesdesk/order-intake/internal/common"
	"github.com/salesdesk/order-intake/internal/enrich"
	"github.com/salesdesk/order-intake/internal/extract"
	"github.com/salesdesk/order-intake/internal/llm/groq"
	"github.com/salesdesk/order-intake/internal/pdf"
	"github.com/salesdesk/order-intake/internal/pipeline"
	"github.com/salesdesk/order-intake/internal/repository"
	"github.com/salesdesk/order-intake/internal/server"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Stores
	store, err := repository.NewPebbleStore(cfg.Store.OrdersDir)
	if err != nil {
		logger.Error("failed to open order store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close order store", "error", err)
		}
	}()

	catalogDB, err := repository.OpenCatalogDB(ctx, cfg.Store.CatalogPath, logger)
	if err != nil {
		logger.Error("failed to open catalog database", "error", err)
		os.Exit(1)
	}
	defer repository.CloseDB(catalogDB, logger)
	mirror := repository.NewCatalogRepository(catalogDB, logger)

	// Pipeline
	index := catalog.NewIndex()
	loader := catalog.NewLoader(logger)
	client := groq.NewClient(groq.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Timeout:     cfg.LLM.Timeout,
	}, logger)
	adapter := extract.NewAdapter(client, logger)
	engine := enrich.NewEngine(index, logger)
	renderer := pdf.NewGenerator(cfg.Ingest.OutputDir, index, logger)
	processor := pipeline.NewProcessor(
		logger, loader, index, mirror, adapter, engine, renderer, store,
		pipeline.NewMetrics(), cfg.Ingest.CatalogFile, cfg.Ingest.EmailDir,
	)

	if cfg.Ingest.RunOnStart {
		if err := processor.StartBatch(); err != nil {
			logger.Warn("startup batch not started", "error", err)
		}
	}

	// HTTP server
	srv := server.New(store, mirror, processor, logger)
	r := chi.NewRouter()
	r.Mount("/", srv.Routes())

	httpServer := &http.Server{Addr: cfg.Server.HTTPAddr, Handler: r}
	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()
	logger.Info("listening", "addr", cfg.Server.HTTPAddr)

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", "error", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}
	logger.Info("stopped")
}

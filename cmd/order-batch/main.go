package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/salesdesk/order-intake/constants"
	"github.com/salesdesk/order-intake/internal/catalog"
	"github.com/salesdesk/order-intake/internal/common"
	"github.com/salesdesk/order-intake/internal/enrich"
	"github.com/salesdesk/order-intake/internal/extract"
	"github.com/salesdesk/order-intake/internal/llm/groq"
	"github.com/salesdesk/order-intake/internal/pdf"
	"github.com/salesdesk/order-intake/internal/pipeline"
	"github.com/salesdesk/order-intake/internal/repository"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		catalogFile = flag.String("catalog", "", "product catalog file, CSV or XLSX (required)")
		emailDir    = flag.String("emails", "", "directory of source email .txt files (required)")
		outDir      = flag.String("out", "./generated", "output directory for confirmation PDFs")
		ordersDir   = flag.String("orders", "./data/orders", "pebble directory for persisted orders")
	)
	flag.Parse()

	if *catalogFile == "" || *emailDir == "" {
		printError("Error: --catalog and --emails are required\n")
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	ctx := context.Background()
	cfg := common.LoadConfig()

	store, err := repository.NewPebbleStore(*ordersDir)
	if err != nil {
		logger.Error("failed to open order store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close order store", "error", err)
		}
	}()

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
	renderer := pdf.NewGenerator(*outDir, index, logger)

	processor := pipeline.NewProcessor(
		logger, loader, index, nil, adapter, engine, renderer, store,
		pipeline.NewMetrics(), *catalogFile, *emailDir,
	)

	outcomes, err := processor.RunBatch(ctx)
	if err != nil {
		logger.Error("batch failed", "error", err)
		os.Exit(1)
	}

	persisted := 0
	failed := 0
	for _, o := range outcomes {
		if o.Status == constants.StatusPersisted {
			persisted++
		} else {
			failed++
		}
	}

	fmt.Printf("Batch complete!\n")
	fmt.Printf("- Emails processed: %d\n", len(outcomes))
	fmt.Printf("- Orders persisted: %d\n", persisted)
	fmt.Printf("- Failures: %d\n", failed)
	fmt.Printf("- PDFs written to: %s\n", *outDir)
}

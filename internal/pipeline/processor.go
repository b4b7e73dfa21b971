package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/salesdesk/order-intake/constants"
	"github.com/salesdesk/order-intake/internal/catalog"
	"github.com/salesdesk/order-intake/internal/common"
	"github.com/salesdesk/order-intake/internal/enrich"
	"github.com/salesdesk/order-intake/internal/entity"
	"github.com/salesdesk/order-intake/internal/extract"
	"github.com/salesdesk/order-intake/internal/repository"
)

// Renderer consumes a finished order record and produces its confirmation
// document, returning the written path.
type Renderer interface {
	Render(order *entity.Order) (string, error)
}

// Outcome is the per-email result of a batch run.
type Outcome struct {
	SourceFile string                `json:"source_file"`
	OrderID    uuid.UUID             `json:"order_id,omitempty"`
	Status     constants.BatchStatus `json:"status"`
	Err        string                `json:"error,omitempty"`
	Confidence float64               `json:"confidence"`
	Items      int                   `json:"items"`
}

// Processor drives one batch run: catalog refresh, then per email
// extract → enrich → render → persist, sequentially. One bad email never
// aborts the batch; catalog load failure does.
type Processor struct {
	logger   *slog.Logger
	loader   *catalog.Loader
	index    *catalog.Index
	mirror   repository.CatalogRepository
	adapter  *extract.Adapter
	engine   *enrich.Engine
	renderer Renderer
	store    repository.OrderStore
	metrics  *Metrics

	catalogFile string
	emailDir    string

	// running gates re-entrancy: a second batch requested while one is in
	// flight is rejected, never queued.
	running atomic.Bool
}

func NewProcessor(
	logger *slog.Logger,
	loader *catalog.Loader,
	index *catalog.Index,
	mirror repository.CatalogRepository,
	adapter *extract.Adapter,
	engine *enrich.Engine,
	renderer Renderer,
	store repository.OrderStore,
	metrics *Metrics,
	catalogFile string,
	emailDir string,
) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NewMetrics()
	}
	return &Processor{
		logger:      logger,
		loader:      loader,
		index:       index,
		mirror:      mirror,
		adapter:     adapter,
		engine:      engine,
		renderer:    renderer,
		store:       store,
		metrics:     metrics,
		catalogFile: catalogFile,
		emailDir:    emailDir,
	}
}

// Running reports whether a batch is currently in flight.
func (p *Processor) Running() bool { return p.running.Load() }

// Metrics exposes the processor's instrumentation registry.
func (p *Processor) Metrics() *Metrics { return p.metrics }

// RunBatch runs one full batch synchronously. Returns
// common.ErrBatchInProgress when another run holds the gate.
func (p *Processor) RunBatch(ctx context.Context) ([]Outcome, error) {
	if !p.running.CompareAndSwap(false, true) {
		p.metrics.BatchRejected.Inc()
		return nil, common.ErrBatchInProgress
	}
	defer p.running.Store(false)
	return p.run(ctx)
}

// StartBatch launches a batch in the background and returns immediately. The
// gate is taken before the goroutine starts, so two near-simultaneous
// triggers cannot both begin a run.
func (p *Processor) StartBatch() error {
	if !p.running.CompareAndSwap(false, true) {
		p.metrics.BatchRejected.Inc()
		return common.ErrBatchInProgress
	}
	go func() {
		defer p.running.Store(false)
		if _, err := p.run(context.Background()); err != nil {
			p.logger.Error("background batch failed", "error", err)
		}
	}()
	return nil
}

func (p *Processor) run(ctx context.Context) ([]Outcome, error) {
	start := time.Now()
	p.metrics.BatchRuns.Inc()
	p.logger.Info("batch starting", "catalog", p.catalogFile, "email_dir", p.emailDir)

	// Catalog refresh happens exactly once, before any email.
	entries, err := p.loader.Load(p.catalogFile)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	p.index.Replace(entries)
	if p.mirror != nil {
		// Mirror write is an external side effect; a failure degrades the
		// product endpoints but not the batch.
		if err := p.mirror.ReplaceAll(ctx, entries); err != nil {
			p.logger.Warn("catalog mirror update failed", "error", err)
		}
	}

	// Full-replace semantics: re-ingestion replaces the persisted set.
	if err := p.store.Clear(); err != nil {
		return nil, fmt.Errorf("clear order store: %w", err)
	}

	files, err := p.listEmails()
	if err != nil {
		return nil, fmt.Errorf("enumerate emails: %w", err)
	}
	p.logger.Info("emails found", "count", len(files))

	outcomes := make([]Outcome, 0, len(files))
	for _, name := range files {
		outcome := p.processEmail(ctx, name)
		p.metrics.EmailOutcomes.WithLabelValues(string(outcome.Status)).Inc()
		if outcome.Status == constants.StatusFailed {
			p.logger.Error("email failed", "file", name, "error", outcome.Err)
		} else {
			p.logger.Info("email processed",
				"file", name,
				"order_id", outcome.OrderID,
				"confidence", outcome.Confidence,
				"items", outcome.Items,
			)
		}
		outcomes = append(outcomes, outcome)
	}

	elapsed := time.Since(start)
	p.metrics.BatchDurationSec.Set(elapsed.Seconds())
	p.logger.Info("batch complete",
		"emails", len(outcomes),
		"failed", countFailed(outcomes),
		"elapsed_ms", elapsed.Milliseconds(),
	)
	return outcomes, nil
}

// processEmail walks one email through the stage machine. Extraction failures
// degrade to the fallback candidate inside the adapter; read, render, and
// persist failures mark this email FAILED and the batch moves on.
func (p *Processor) processEmail(ctx context.Context, name string) Outcome {
	outcome := Outcome{SourceFile: name, Status: constants.StatusPending}

	text, err := os.ReadFile(filepath.Join(p.emailDir, name))
	if err != nil {
		outcome.Status = constants.StatusFailed
		outcome.Err = fmt.Sprintf("read email: %v", err)
		return outcome
	}

	candidate := p.adapter.Extract(ctx, string(text))
	outcome.Status = constants.StatusExtracted

	orderID := uuid.New()
	outcome.OrderID = orderID

	order := p.engine.Enrich(candidate, orderID, name)
	outcome.Status = constants.StatusEnriched
	outcome.Confidence = order.OverallConfidence
	outcome.Items = len(order.Items)

	pdfPath, err := p.renderer.Render(order)
	if err != nil {
		outcome.Status = constants.StatusFailed
		outcome.Err = fmt.Sprintf("render pdf: %v", err)
		return outcome
	}
	order.PDFPath = pdfPath
	outcome.Status = constants.StatusRendered

	if err := p.store.Upsert(order); err != nil {
		outcome.Status = constants.StatusFailed
		outcome.Err = fmt.Sprintf("persist order: %v", err)
		return outcome
	}
	outcome.Status = constants.StatusPersisted
	return outcome
}

func (p *Processor) listEmails() ([]string, error) {
	dirents, err := os.ReadDir(p.emailDir)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, d := range dirents {
		if d.IsDir() || !constants.IsEmailFile(d.Name()) {
			continue
		}
		files = append(files, d.Name())
	}
	sort.Strings(files)
	return files, nil
}

func countFailed(outcomes []Outcome) int {
	n := 0
	for _, o := range outcomes {
		if o.Status == constants.StatusFailed {
			n++
		}
	}
	return n
}

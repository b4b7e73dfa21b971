package enrich

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/salesdesk/order-intake/internal/catalog"
	"github.com/salesdesk/order-intake/internal/entity"
	"github.com/salesdesk/order-intake/internal/llm"
)

// Confidence overrides applied from structural evidence, regardless of what
// the model reported: a fuzzy-mapped line is never fully confident, an
// unresolved line is never more than minimally confident.
const (
	fuzzyMatchCap        = 0.8
	unresolvedConfidence = 0.1
)

// Engine turns a candidate order into a validated order record against the
// catalog index: sku resolution, stock/MOQ rules, confidence scoring, and
// order-level aggregation.
type Engine struct {
	index  *catalog.Index
	logger *slog.Logger
}

func NewEngine(index *catalog.Index, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{index: index, logger: logger}
}

// Enrich validates every candidate line against the catalog and assembles the
// order record. ProcessedAt is the time of enrichment. PDFPath is left empty;
// the orchestrator fills it in after rendering.
func (e *Engine) Enrich(candidate llm.CandidateOrder, orderID uuid.UUID, sourceFile string) *entity.Order {
	items := make([]entity.LineItem, 0, len(candidate.Items))
	for _, ci := range candidate.Items {
		items = append(items, e.enrichItem(ci))
	}

	overall := 0.0
	if len(items) > 0 {
		sum := 0.0
		for _, it := range items {
			sum += it.Confidence
		}
		overall = sum / float64(len(items))
	}

	return &entity.Order{
		OrderID: orderID,
		Meta: entity.Meta{
			EmailFile:   sourceFile,
			ProcessedAt: time.Now().UTC(),
			Confidence:  overall,
		},
		Customer: entity.Customer{
			Name:    candidate.Customer.Name,
			Address: candidate.Customer.Address,
		},
		Items: items,
		Delivery: entity.Delivery{
			Date:    candidate.Delivery.Date,
			Address: candidate.Delivery.Address,
		},
		OverallConfidence: overall,
	}
}

// enrichItem resolves one candidate line: exact sku lookup first, fuzzy search
// as fallback, then stock and MOQ rules against whichever entry was resolved.
func (e *Engine) enrichItem(ci llm.CandidateItem) entity.LineItem {
	issues := []string{}
	suggestions := []string{}
	sku := ci.Product
	conf := clamp01(ci.Confidence)

	var resolved *catalog.Entry
	if entry, ok := e.index.ExactLookup(ci.Product); ok {
		resolved = &entry
	} else if results := e.index.FuzzySearch(ci.Product); len(results) > 0 {
		entry := results[0]
		resolved = &entry
		sku = entry.SKU
		suggestions = append(suggestions,
			fmt.Sprintf("Mapped %q to %s: %s", ci.Product, entry.SKU, entry.Description))
		if conf > fuzzyMatchCap {
			conf = fuzzyMatchCap
		}
		e.logger.Debug("fuzzy-mapped item", "product", ci.Product, "sku", entry.SKU)
	} else {
		issues = append(issues, fmt.Sprintf("Product %q not found in catalog", ci.Product))
		conf = unresolvedConfidence
	}

	if resolved != nil {
		// Business rules run on fuzzy-resolved entries too; the 0.8 cap
		// already marks the mapping as uncertain.
		if resolved.Stock == 0 {
			issues = append(issues, "Out of stock")
		} else if ci.Quantity > resolved.Stock {
			issues = append(issues,
				fmt.Sprintf("Insufficient stock. Available: %d, Requested: %d", resolved.Stock, ci.Quantity))
		}
		if ci.Quantity < resolved.MinOrderQty {
			issues = append(issues,
				fmt.Sprintf("Below minimum order quantity. MOQ: %d, Requested: %d", resolved.MinOrderQty, ci.Quantity))
		}
	}

	return entity.LineItem{
		SKU:         sku,
		Quantity:    ci.Quantity,
		Confidence:  conf,
		Issues:      issues,
		Suggestions: suggestions,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

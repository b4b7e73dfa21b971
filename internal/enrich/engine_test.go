package enrich

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salesdesk/order-intake/internal/catalog"
	"github.com/salesdesk/order-intake/internal/llm"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	idx := catalog.NewIndex()
	idx.Replace([]catalog.Entry{
		{SKU: "DSK-0001", Description: "Desk TRANHOLM 19", Price: 902.78, Stock: 31, MinOrderQty: 2},
		{SKU: "CHR-0042", Description: "Chair VILSTAD", Price: 149.50, Stock: 0, MinOrderQty: 1},
		{SKU: "LMP-0007", Description: "Lamp SOLVIK", Price: 39.99, Stock: 10, MinOrderQty: 4},
		{SKU: "TBL-0100", Description: "Table NORDVIK", Price: 450.00, Stock: 3, MinOrderQty: 5},
	})
	return NewEngine(idx, nil)
}

func candidate(items ...llm.CandidateItem) llm.CandidateOrder {
	return llm.CandidateOrder{
		Customer: llm.CandidateCustomer{Name: "John Doe", Address: "123 Main St"},
		Items:    items,
		Delivery: llm.CandidateDelivery{Date: "2025-06-20", Address: "123 Main St"},
	}
}

func TestEnrichExactMatchCleanItem(t *testing.T) {
	e := testEngine(t)
	order := e.Enrich(candidate(
		llm.CandidateItem{Product: "DSK-0001", Quantity: 5, Confidence: 0.9},
	), uuid.New(), "test.txt")

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, "DSK-0001", item.SKU)
	assert.Empty(t, item.Issues)
	assert.Empty(t, item.Suggestions)
	// exact match keeps the model-reported confidence unmodified
	assert.Equal(t, 0.9, item.Confidence)
	assert.Equal(t, 0.9, order.OverallConfidence)
}

func TestEnrichFuzzyMatchCapsConfidence(t *testing.T) {
	e := testEngine(t)
	order := e.Enrich(candidate(
		llm.CandidateItem{Product: "TRANHOLM desk", Quantity: 5, Confidence: 0.95},
	), uuid.New(), "test.txt")

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, "DSK-0001", item.SKU)
	assert.LessOrEqual(t, item.Confidence, 0.8)
	require.NotEmpty(t, item.Suggestions)
	assert.Contains(t, item.Suggestions[0], `"TRANHOLM desk"`)
	assert.Contains(t, item.Suggestions[0], "DSK-0001")
	assert.Contains(t, item.Suggestions[0], "Desk TRANHOLM 19")
}

func TestEnrichFuzzyMatchKeepsLowerConfidence(t *testing.T) {
	e := testEngine(t)
	order := e.Enrich(candidate(
		llm.CandidateItem{Product: "TRANHOLM desk", Quantity: 5, Confidence: 0.5},
	), uuid.New(), "test.txt")

	// cap is a ceiling, not an assignment
	assert.Equal(t, 0.5, order.Items[0].Confidence)
}

func TestEnrichUnresolvedItem(t *testing.T) {
	e := testEngine(t)
	order := e.Enrich(candidate(
		llm.CandidateItem{Product: "Quantum Flux Capacitor", Quantity: 1, Confidence: 0.9},
	), uuid.New(), "test.txt")

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, "Quantum Flux Capacitor", item.SKU)
	assert.Equal(t, 0.1, item.Confidence)
	require.NotEmpty(t, item.Issues)
	assert.Contains(t, item.Issues[0], "not found in catalog")
}

func TestEnrichBusinessRules(t *testing.T) {
	tests := []struct {
		name       string
		item       llm.CandidateItem
		wantIssues []string
	}{
		{
			name:       "insufficient stock reports available and requested",
			item:       llm.CandidateItem{Product: "DSK-0001", Quantity: 50, Confidence: 0.9},
			wantIssues: []string{"Insufficient stock. Available: 31, Requested: 50"},
		},
		{
			name:       "zero stock is out of stock, not insufficient",
			item:       llm.CandidateItem{Product: "CHR-0042", Quantity: 3, Confidence: 0.9},
			wantIssues: []string{"Out of stock"},
		},
		{
			name:       "below MOQ reports moq and requested",
			item:       llm.CandidateItem{Product: "DSK-0001", Quantity: 1, Confidence: 0.9},
			wantIssues: []string{"Below minimum order quantity. MOQ: 2, Requested: 1"},
		},
		{
			name:       "quantity equal to MOQ passes",
			item:       llm.CandidateItem{Product: "DSK-0001", Quantity: 2, Confidence: 0.9},
			wantIssues: []string{},
		},
		{
			name: "stock and MOQ violations accumulate",
			item: llm.CandidateItem{Product: "TBL-0100", Quantity: 4, Confidence: 0.9},
			wantIssues: []string{
				"Insufficient stock. Available: 3, Requested: 4",
				"Below minimum order quantity. MOQ: 5, Requested: 4",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testEngine(t)
			order := e.Enrich(candidate(tt.item), uuid.New(), "test.txt")
			require.Len(t, order.Items, 1)
			assert.Equal(t, tt.wantIssues, order.Items[0].Issues)
		})
	}
}

func TestEnrichRulesRunOnFuzzyMatches(t *testing.T) {
	e := testEngine(t)
	order := e.Enrich(candidate(
		llm.CandidateItem{Product: "VILSTAD chair", Quantity: 3, Confidence: 0.9},
	), uuid.New(), "test.txt")

	require.Len(t, order.Items, 1)
	item := order.Items[0]
	assert.Equal(t, "CHR-0042", item.SKU)
	assert.Contains(t, item.Issues, "Out of stock")
	assert.NotEmpty(t, item.Suggestions)
	assert.LessOrEqual(t, item.Confidence, 0.8)
}

func TestEnrichOverallConfidenceIsMean(t *testing.T) {
	e := testEngine(t)
	order := e.Enrich(candidate(
		llm.CandidateItem{Product: "DSK-0001", Quantity: 5, Confidence: 0.9},
		llm.CandidateItem{Product: "nothing like this", Quantity: 1, Confidence: 0.9},
	), uuid.New(), "test.txt")

	require.Len(t, order.Items, 2)
	assert.InDelta(t, (0.9+0.1)/2, order.OverallConfidence, 1e-9)
	assert.Equal(t, order.OverallConfidence, order.Meta.Confidence)
}

func TestEnrichEmptyItems(t *testing.T) {
	e := testEngine(t)
	order := e.Enrich(candidate(), uuid.New(), "empty.txt")

	assert.Empty(t, order.Items)
	assert.Equal(t, 0.0, order.OverallConfidence)
	assert.Equal(t, "empty.txt", order.Meta.EmailFile)
	assert.False(t, order.Meta.ProcessedAt.IsZero())
	assert.Empty(t, order.PDFPath)
}

func TestEnrichClampsModelConfidence(t *testing.T) {
	e := testEngine(t)
	order := e.Enrich(candidate(
		llm.CandidateItem{Product: "DSK-0001", Quantity: 5, Confidence: 1.7},
		llm.CandidateItem{Product: "DSK-0001", Quantity: 5, Confidence: -0.4},
	), uuid.New(), "test.txt")

	require.Len(t, order.Items, 2)
	assert.Equal(t, 1.0, order.Items[0].Confidence)
	assert.Equal(t, 0.0, order.Items[1].Confidence)
}

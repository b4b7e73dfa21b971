package extract

import (
	"context"
	"log/slog"

	"github.com/salesdesk/order-intake/internal/llm"
)

// Fallback candidate field values. These exact strings are part of the
// pipeline contract: a record carrying them is recognizably degraded.
const (
	FallbackCustomerName = "Unknown Customer"
	FallbackAddress      = "Address not found"
	FallbackDeliveryDate = "not specified"
)

// Adapter wraps an OrderExtractor so that extraction always yields a
// candidate. Model, network, and parse failures are absorbed here: the
// pipeline never halts on a single bad email.
type Adapter struct {
	extractor llm.OrderExtractor
	logger    *slog.Logger
}

func NewAdapter(extractor llm.OrderExtractor, logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{extractor: extractor, logger: logger}
}

// Extract returns the model's candidate order for emailText, or the
// deterministic fallback candidate on any failure. It never returns an error.
func (a *Adapter) Extract(ctx context.Context, emailText string) llm.CandidateOrder {
	candidate, _, err := a.extractor.ExtractOrder(ctx, emailText)
	if err != nil {
		a.logger.Warn("extraction failed, using fallback candidate", "error", err)
		return FallbackCandidate()
	}
	if candidate.Items == nil {
		candidate.Items = []llm.CandidateItem{}
	}
	return candidate
}

// FallbackCandidate is the safe empty candidate produced when extraction
// fails: no items, placeholder customer and delivery fields.
func FallbackCandidate() llm.CandidateOrder {
	return llm.CandidateOrder{
		Customer: llm.CandidateCustomer{
			Name:    FallbackCustomerName,
			Address: FallbackAddress,
		},
		Items: []llm.CandidateItem{},
		Delivery: llm.CandidateDelivery{
			Date:    FallbackDeliveryDate,
			Address: FallbackAddress,
		},
	}
}

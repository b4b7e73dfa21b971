package llm

import "context"

// CandidateCustomer is the buying party as guessed by the model.
type CandidateCustomer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// CandidateItem is one unvalidated line: the product text exactly as written
// in the email, the parsed quantity, and the model's self-reported confidence.
// Confidence is an opinion signal only; it is never range-checked here.
// Enrichment clamps it to [0,1].
type CandidateItem struct {
	Product    string  `json:"product"`
	Quantity   int     `json:"quantity"`
	Confidence float64 `json:"confidence"`
}

// CandidateDelivery is the requested delivery terms. Date is "YYYY-MM-DD" or
// the literal "not specified".
type CandidateDelivery struct {
	Date    string `json:"date"`
	Address string `json:"address"`
}

// CandidateOrder is the normalized but unvalidated shape we want from the
// model. It is transient: consumed immediately by enrichment, never persisted.
type CandidateOrder struct {
	Customer CandidateCustomer `json:"customer"`
	Items    []CandidateItem   `json:"items"`
	Delivery CandidateDelivery `json:"delivery"`
}

// OrderExtractor is the capability the pipeline depends on: raw email text in,
// best-effort structured order out. Implementations may fail; the extract
// adapter converts failures into the deterministic fallback candidate.
type OrderExtractor interface {
	ExtractOrder(ctx context.Context, emailText string) (CandidateOrder, []byte /*rawJSON*/, error)
}

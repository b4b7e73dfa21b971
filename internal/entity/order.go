package entity

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the buying party as extracted from the email.
type Customer struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Delivery holds the requested delivery terms. Date is a free string; the
// extractor emits "not specified" when the email gives none.
type Delivery struct {
	Date    string `json:"date"`
	Address string `json:"address"`
}

// LineItem is one catalog-validated order line. Issues and Suggestions are
// ordered, human-readable strings produced during enrichment; a line with an
// unresolved sku always carries at least one issue.
type LineItem struct {
	SKU         string   `json:"sku"`
	Quantity    int      `json:"qty"`
	Confidence  float64  `json:"conf"`
	Issues      []string `json:"validations"`
	Suggestions []string `json:"suggestions"`
}

// Meta carries provenance for an order record: which email it came from and
// when enrichment ran.
type Meta struct {
	EmailFile   string    `json:"emailFile"`
	ProcessedAt time.Time `json:"processedAt"`
	Confidence  float64   `json:"confidence"`
}

// Order is the persisted unit: one validated order record per ingested email.
// OverallConfidence is the arithmetic mean of the line confidences (0 when
// there are no lines). PDFPath is set by the orchestrator after rendering.
type Order struct {
	OrderID           uuid.UUID  `json:"orderId"`
	Meta              Meta       `json:"meta"`
	Customer          Customer   `json:"customer"`
	Items             []LineItem `json:"items"`
	Delivery          Delivery   `json:"delivery"`
	OverallConfidence float64    `json:"overallConfidence"`
	PDFPath           string     `json:"pdfPath"`
}

// OrderSummary is the listing projection of an Order.
type OrderSummary struct {
	ID                uuid.UUID `json:"id"`
	EmailFile         string    `json:"email_file"`
	ProcessedAt       time.Time `json:"processed_at"`
	CustomerName      string    `json:"customer_name"`
	OverallConfidence float64   `json:"overall_confidence"`
	PDFPath           string    `json:"pdf_path"`
}

// Summary projects an order into its listing shape.
func (o *Order) Summary() OrderSummary {
	return OrderSummary{
		ID:                o.OrderID,
		EmailFile:         o.Meta.EmailFile,
		ProcessedAt:       o.Meta.ProcessedAt,
		CustomerName:      o.Customer.Name,
		OverallConfidence: o.OverallConfidence,
		PDFPath:           o.PDFPath,
	}
}

package constants

// BatchStatus is the canonical per-email stage for a batch run.
type BatchStatus string

// Stable values (these exact strings appear in logs and outcome payloads).
const (
	StatusPending   BatchStatus = "PENDING"   // email discovered, not yet extracted
	StatusExtracted BatchStatus = "EXTRACTED" // candidate order produced
	StatusEnriched  BatchStatus = "ENRICHED"  // catalog-validated order record built
	StatusRendered  BatchStatus = "RENDERED"  // confirmation PDF written
	StatusPersisted BatchStatus = "PERSISTED" // order record stored
	StatusFailed    BatchStatus = "FAILED"    // terminal failure at some stage
)

package entity

import "time"

// Webhook ledger states. A row is inserted as "processing" when a delivery is
// claimed and promoted to "processed" only after its handler succeeds; a
// failed handler deletes the row so the provider's retry is not swallowed.
const (
	WebhookProcessing = "processing"
	WebhookProcessed  = "processed"
)

// WebhookEvent is one row of the idempotency ledger, keyed by the provider's
// event id.
type WebhookEvent struct {
	EventID     string
	Type        string
	Status      string
	ReceivedAt  time.Time
	ProcessedAt *time.Time
}

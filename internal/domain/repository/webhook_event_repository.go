package repository

import "time"

// WebhookEventRepository is the idempotency ledger port.
//
// Claim inserts the event as "processing" and returns ErrDuplicate when the
// event id was already claimed. MarkProcessed promotes a claim after its
// handler succeeds; Release drops the claim after a handler failure so the
// provider's retry gets a clean run.
type WebhookEventRepository interface {
	Claim(eventID, eventType string, at time.Time) error
	MarkProcessed(eventID string, at time.Time) error
	Release(eventID string) error
}

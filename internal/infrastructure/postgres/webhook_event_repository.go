package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

var _ repository.WebhookEventRepository = (*WebhookEventRepo)(nil)

// WebhookEventRepo is the idempotency ledger, keyed by the provider's event
// id. The primary key is the whole mechanism: a second Claim for the same id
// hits the unique violation and surfaces as ErrDuplicate.
type WebhookEventRepo struct {
	q Querier
}

func NewWebhookEventRepository(q Querier) *WebhookEventRepo {
	return &WebhookEventRepo{q: q}
}

func (r *WebhookEventRepo) Claim(eventID, eventType string, at time.Time) error {
	query := `
		INSERT INTO webhook_events (event_id, type, status, received_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, eventID, eventType, entity.WebhookProcessing, at)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("claim webhook event: %w", err)
	}
	return nil
}

func (r *WebhookEventRepo) MarkProcessed(eventID string, at time.Time) error {
	query := `UPDATE webhook_events SET status = $2, processed_at = $3 WHERE event_id = $1`
	_, err := r.q.Exec(context.Background(), query, eventID, entity.WebhookProcessed, at)
	if err != nil {
		return fmt.Errorf("mark webhook processed: %w", err)
	}
	return nil
}

func (r *WebhookEventRepo) Release(eventID string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM webhook_events WHERE event_id = $1`, eventID)
	if err != nil {
		return fmt.Errorf("release webhook event: %w", err)
	}
	return nil
}

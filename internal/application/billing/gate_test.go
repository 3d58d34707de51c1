package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/brushly/brushly-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// EvaluateGate — pure gating rule
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluateGate_ActiveAllowed(t *testing.T) {
	v := EvaluateGate(entity.SubscriptionActive, nil, time.Now())
	assert.True(t, v.Allowed)
	assert.Empty(t, v.Code)
}

func TestEvaluateGate_PastDueStillAllowed(t *testing.T) {
	// past_due is the grace period: the tenant keeps working while Stripe retries.
	v := EvaluateGate(entity.SubscriptionPastDue, nil, time.Now())
	assert.True(t, v.Allowed)
}

func TestEvaluateGate_TrialingWithFutureTrialAllowed(t *testing.T) {
	now := time.Now()
	ends := now.Add(24 * time.Hour)
	v := EvaluateGate(entity.SubscriptionTrialing, &ends, now)
	assert.True(t, v.Allowed)
}

func TestEvaluateGate_TrialingExpiredDenied(t *testing.T) {
	now := time.Now()
	ends := now.Add(-time.Minute)
	v := EvaluateGate(entity.SubscriptionTrialing, &ends, now)
	assert.False(t, v.Allowed)
	assert.Equal(t, CodeTrialExpired, v.Code)
}

func TestEvaluateGate_TrialEndingExactlyNowDenied(t *testing.T) {
	// The boundary instant counts as expired.
	now := time.Now()
	ends := now
	v := EvaluateGate(entity.SubscriptionTrialing, &ends, now)
	assert.False(t, v.Allowed)
	assert.Equal(t, CodeTrialExpired, v.Code)
}

func TestEvaluateGate_TrialingWithoutEndDateDenied(t *testing.T) {
	v := EvaluateGate(entity.SubscriptionTrialing, nil, time.Now())
	assert.False(t, v.Allowed)
	assert.Equal(t, CodeTrialExpired, v.Code)
}

func TestEvaluateGate_CanceledRequiresSubscription(t *testing.T) {
	v := EvaluateGate(entity.SubscriptionCanceled, nil, time.Now())
	assert.False(t, v.Allowed)
	assert.Equal(t, CodeSubscriptionRequired, v.Code)
}

func TestEvaluateGate_UnknownStatusRequiresSubscription(t *testing.T) {
	v := EvaluateGate("", nil, time.Now())
	assert.False(t, v.Allowed)
	assert.Equal(t, CodeSubscriptionRequired, v.Code)
}

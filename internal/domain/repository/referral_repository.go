package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/brushly/brushly-api/internal/domain/entity"
)

// CreatorCodeRepository is the persistence port for affiliate codes.
type CreatorCodeRepository interface {
	GetByID(id string) (*entity.CreatorCode, error)
	GetByCode(code string) (*entity.CreatorCode, error)
	IncrementVisits(id string) error
	IncrementConversions(id string) error
}

// ReferralRepository is the persistence port for per-visitor referral rows.
type ReferralRepository interface {
	// Create inserts a visit row; ErrDuplicate when (code, visitor) already landed.
	Create(ref *entity.Referral) error
	Get(creatorCodeID, visitorID string) (*entity.Referral, error)

	// ClaimConversion converts the matching unconverted row: sets converted_at,
	// company_id and commission_owed in one UPDATE guarded by
	// converted_at IS NULL. Returns false when the row was already converted
	// (or never existed), so callers can make replays harmless.
	ClaimConversion(creatorCodeID, visitorID, companyID string, commission decimal.Decimal, at time.Time) (bool, error)
}

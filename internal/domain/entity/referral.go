package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatorCode is an affiliate code. CommissionPercent applies to the fixed
// subscription price when a referred visitor converts.
type CreatorCode struct {
	ID                string
	Code              string
	OwnerName         string
	CommissionPercent decimal.Decimal
	VisitsCount       int
	ConversionsCount  int
	Active            bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Referral records one visitor landing through a creator code. A row converts
// at most once: ConvertedAt flips from nil exactly when a subscription
// checkout carrying the same (code, visitor) pair completes.
type Referral struct {
	ID             string
	CreatorCodeID  string
	VisitorID      string
	CompanyID      string // set on conversion
	LandedAt       time.Time
	ConvertedAt    *time.Time
	CommissionOwed decimal.Decimal
}

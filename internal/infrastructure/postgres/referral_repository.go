package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

var _ repository.CreatorCodeRepository = (*CreatorCodeRepo)(nil)
var _ repository.ReferralRepository = (*ReferralRepo)(nil)

// CreatorCodeRepo implements CreatorCodeRepository (usable with pool or tx).
type CreatorCodeRepo struct {
	q Querier
}

func NewCreatorCodeRepository(q Querier) *CreatorCodeRepo {
	return &CreatorCodeRepo{q: q}
}

const creatorCodeColumns = `id, code, owner_name, commission_percent, visits_count, conversions_count,
		active, created_at, updated_at`

func scanCreatorCode(row pgx.Row) (*entity.CreatorCode, error) {
	var c entity.CreatorCode
	err := row.Scan(
		&c.ID, &c.Code, &c.OwnerName, &c.CommissionPercent,
		&c.VisitsCount, &c.ConversionsCount, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan creator code: %w", err)
	}
	return &c, nil
}

func (r *CreatorCodeRepo) GetByID(id string) (*entity.CreatorCode, error) {
	query := `SELECT ` + creatorCodeColumns + ` FROM creator_codes WHERE id = $1`
	return scanCreatorCode(r.q.QueryRow(context.Background(), query, id))
}

func (r *CreatorCodeRepo) GetByCode(code string) (*entity.CreatorCode, error) {
	query := `SELECT ` + creatorCodeColumns + ` FROM creator_codes WHERE lower(code) = lower($1)`
	return scanCreatorCode(r.q.QueryRow(context.Background(), query, code))
}

func (r *CreatorCodeRepo) IncrementVisits(id string) error {
	query := `UPDATE creator_codes SET visits_count = visits_count + 1, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("increment visits: %w", err)
	}
	return nil
}

func (r *CreatorCodeRepo) IncrementConversions(id string) error {
	query := `UPDATE creator_codes SET conversions_count = conversions_count + 1, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("increment conversions: %w", err)
	}
	return nil
}

// ReferralRepo implements ReferralRepository (usable with pool or tx).
type ReferralRepo struct {
	q Querier
}

func NewReferralRepository(q Querier) *ReferralRepo {
	return &ReferralRepo{q: q}
}

func (r *ReferralRepo) Create(ref *entity.Referral) error {
	query := `
		INSERT INTO referrals (id, creator_code_id, visitor_id, company_id, landed_at, converted_at, commission_owed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		ref.ID, ref.CreatorCodeID, ref.VisitorID, ref.CompanyID,
		ref.LandedAt, ref.ConvertedAt, ref.CommissionOwed,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert referral: %w", err)
	}
	return nil
}

func (r *ReferralRepo) Get(creatorCodeID, visitorID string) (*entity.Referral, error) {
	query := `
		SELECT id, creator_code_id, visitor_id, company_id, landed_at, converted_at, commission_owed
		FROM referrals WHERE creator_code_id = $1 AND visitor_id = $2`
	var ref entity.Referral
	err := r.q.QueryRow(context.Background(), query, creatorCodeID, visitorID).Scan(
		&ref.ID, &ref.CreatorCodeID, &ref.VisitorID, &ref.CompanyID,
		&ref.LandedAt, &ref.ConvertedAt, &ref.CommissionOwed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get referral: %w", err)
	}
	return &ref, nil
}

// ClaimConversion converts the row in one guarded UPDATE. converted_at IS NULL
// makes the claim first-wins: a replayed webhook or a concurrent duplicate
// matches zero rows and reports claimed=false.
func (r *ReferralRepo) ClaimConversion(creatorCodeID, visitorID, companyID string, commission decimal.Decimal, at time.Time) (bool, error) {
	query := `
		UPDATE referrals
		SET converted_at = $4, company_id = $3, commission_owed = $5
		WHERE creator_code_id = $1 AND visitor_id = $2 AND converted_at IS NULL`
	tag, err := r.q.Exec(context.Background(), query, creatorCodeID, visitorID, companyID, at, commission)
	if err != nil {
		return false, fmt.Errorf("claim conversion: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

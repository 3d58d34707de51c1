package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

var _ repository.CompanyUserRepository = (*CompanyUserRepo)(nil)

// CompanyUserRepo implements CompanyUserRepository (usable with pool or tx).
type CompanyUserRepo struct {
	q Querier
}

func NewCompanyUserRepository(q Querier) *CompanyUserRepo {
	return &CompanyUserRepo{q: q}
}

func (r *CompanyUserRepo) Create(member *entity.CompanyUser) error {
	query := `
		INSERT INTO company_users (id, user_id, company_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		member.ID, member.UserID, member.CompanyID, member.Role, member.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

func (r *CompanyUserRepo) Get(userID, companyID string) (*entity.CompanyUser, error) {
	query := `
		SELECT id, user_id, company_id, role, created_at
		FROM company_users WHERE user_id = $1 AND company_id = $2`
	var m entity.CompanyUser
	err := r.q.QueryRow(context.Background(), query, userID, companyID).Scan(
		&m.ID, &m.UserID, &m.CompanyID, &m.Role, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return &m, nil
}

func (r *CompanyUserRepo) ListByUser(userID string) ([]*entity.CompanyUser, error) {
	query := `
		SELECT id, user_id, company_id, role, created_at
		FROM company_users WHERE user_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}
	defer rows.Close()
	var list []*entity.CompanyUser
	for rows.Next() {
		var m entity.CompanyUser
		if err := rows.Scan(&m.ID, &m.UserID, &m.CompanyID, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

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

var _ repository.CrewRepository = (*CrewRepo)(nil)

// CrewRepo implements CrewRepository (usable with pool or tx).
type CrewRepo struct {
	q Querier
}

func NewCrewRepository(q Querier) *CrewRepo {
	return &CrewRepo{q: q}
}

func (r *CrewRepo) Create(crew *entity.Crew) error {
	query := `
		INSERT INTO crews (id, company_id, name, color, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		crew.ID, crew.CompanyID, crew.Name, crew.Color, crew.CreatedAt, crew.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert crew: %w", err)
	}
	return nil
}

func (r *CrewRepo) GetByID(id string) (*entity.Crew, error) {
	query := `SELECT id, company_id, name, color, created_at, updated_at FROM crews WHERE id = $1`
	var c entity.Crew
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.CompanyID, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get crew: %w", err)
	}
	return &c, nil
}

func (r *CrewRepo) ListByCompany(companyID string) ([]*entity.Crew, error) {
	query := `
		SELECT id, company_id, name, color, created_at, updated_at
		FROM crews WHERE company_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list crews: %w", err)
	}
	defer rows.Close()
	var list []*entity.Crew
	for rows.Next() {
		var c entity.Crew
		if err := rows.Scan(&c.ID, &c.CompanyID, &c.Name, &c.Color, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan crew: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

func (r *CrewRepo) Update(crew *entity.Crew) error {
	query := `UPDATE crews SET name = $2, color = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, crew.ID, crew.Name, crew.Color, crew.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update crew: %w", err)
	}
	return nil
}

func (r *CrewRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM crews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete crew: %w", err)
	}
	return nil
}

func (r *CrewRepo) AddMember(member *entity.CrewMember) error {
	query := `
		INSERT INTO crew_members (id, crew_id, company_id, name, phone, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		member.ID, member.CrewID, member.CompanyID, member.Name, member.Phone, member.Role, member.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert crew member: %w", err)
	}
	return nil
}

func (r *CrewRepo) ListMembers(crewID string) ([]*entity.CrewMember, error) {
	query := `
		SELECT id, crew_id, company_id, name, phone, role, created_at
		FROM crew_members WHERE crew_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, crewID)
	if err != nil {
		return nil, fmt.Errorf("list crew members: %w", err)
	}
	defer rows.Close()
	var list []*entity.CrewMember
	for rows.Next() {
		var m entity.CrewMember
		if err := rows.Scan(&m.ID, &m.CrewID, &m.CompanyID, &m.Name, &m.Phone, &m.Role, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan crew member: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *CrewRepo) DeleteMember(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM crew_members WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete crew member: %w", err)
	}
	return nil
}

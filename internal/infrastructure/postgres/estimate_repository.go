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

var _ repository.EstimateRepository = (*EstimateRepo)(nil)

// EstimateRepo implements EstimateRepository (usable with pool or tx). Child
// mutations followed by RecalcTotals belong inside TxRunner.RunEstimate.
type EstimateRepo struct {
	q Querier
}

func NewEstimateRepository(q Querier) *EstimateRepo {
	return &EstimateRepo{q: q}
}

const estimateColumns = `id, company_id, job_id, status, public_token, labor_total, materials_total,
		notes, sent_at, responded_at, created_at, updated_at`

func scanEstimate(row pgx.Row) (*entity.Estimate, error) {
	var e entity.Estimate
	err := row.Scan(
		&e.ID, &e.CompanyID, &e.JobID, &e.Status, &e.PublicToken,
		&e.LaborTotal, &e.MaterialsTotal, &e.Notes, &e.SentAt, &e.RespondedAt,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan estimate: %w", err)
	}
	return &e, nil
}

func (r *EstimateRepo) Create(estimate *entity.Estimate) error {
	query := `
		INSERT INTO estimates (` + estimateColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		estimate.ID, estimate.CompanyID, estimate.JobID, estimate.Status, estimate.PublicToken,
		estimate.LaborTotal, estimate.MaterialsTotal, estimate.Notes,
		estimate.SentAt, estimate.RespondedAt, estimate.CreatedAt, estimate.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert estimate: %w", err)
	}
	return nil
}

func (r *EstimateRepo) GetByID(id string) (*entity.Estimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates WHERE id = $1`
	return scanEstimate(r.q.QueryRow(context.Background(), query, id))
}

func (r *EstimateRepo) GetByPublicToken(token string) (*entity.Estimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates WHERE public_token = $1`
	return scanEstimate(r.q.QueryRow(context.Background(), query, token))
}

func (r *EstimateRepo) ListByJob(jobID string) ([]*entity.Estimate, error) {
	query := `SELECT ` + estimateColumns + ` FROM estimates WHERE job_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, jobID)
	if err != nil {
		return nil, fmt.Errorf("list estimates by job: %w", err)
	}
	return r.collect(rows)
}

func (r *EstimateRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Estimate, error) {
	query := `
		SELECT ` + estimateColumns + `
		FROM estimates WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list estimates: %w", err)
	}
	return r.collect(rows)
}

func (r *EstimateRepo) collect(rows pgx.Rows) ([]*entity.Estimate, error) {
	defer rows.Close()
	var list []*entity.Estimate
	for rows.Next() {
		var e entity.Estimate
		if err := rows.Scan(
			&e.ID, &e.CompanyID, &e.JobID, &e.Status, &e.PublicToken,
			&e.LaborTotal, &e.MaterialsTotal, &e.Notes, &e.SentAt, &e.RespondedAt,
			&e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan estimate: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

func (r *EstimateRepo) Update(estimate *entity.Estimate) error {
	query := `
		UPDATE estimates
		SET status = $2, notes = $3, sent_at = $4, responded_at = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		estimate.ID, estimate.Status, estimate.Notes,
		estimate.SentAt, estimate.RespondedAt, estimate.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update estimate: %w", err)
	}
	return nil
}

func (r *EstimateRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM estimates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete estimate: %w", err)
	}
	return nil
}

// ── Line items ───────────────────────────────────────────────────────────────

func (r *EstimateRepo) AddLineItem(item *entity.EstimateLineItem) error {
	query := `
		INSERT INTO estimate_line_items (id, estimate_id, company_id, description, quantity, unit_price, amount, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.EstimateID, item.CompanyID, item.Description,
		item.Quantity, item.UnitPrice, item.Amount, item.Position, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert line item: %w", err)
	}
	return nil
}

func (r *EstimateRepo) UpdateLineItem(item *entity.EstimateLineItem) error {
	query := `
		UPDATE estimate_line_items
		SET description = $2, quantity = $3, unit_price = $4, amount = $5, position = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.Description, item.Quantity, item.UnitPrice, item.Amount, item.Position,
	)
	if err != nil {
		return fmt.Errorf("update line item: %w", err)
	}
	return nil
}

func (r *EstimateRepo) DeleteLineItem(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM estimate_line_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete line item: %w", err)
	}
	return nil
}

func (r *EstimateRepo) ListLineItems(estimateID string) ([]*entity.EstimateLineItem, error) {
	query := `
		SELECT id, estimate_id, company_id, description, quantity, unit_price, amount, position, created_at
		FROM estimate_line_items WHERE estimate_id = $1 ORDER BY position, created_at`
	rows, err := r.q.Query(context.Background(), query, estimateID)
	if err != nil {
		return nil, fmt.Errorf("list line items: %w", err)
	}
	defer rows.Close()
	var list []*entity.EstimateLineItem
	for rows.Next() {
		var it entity.EstimateLineItem
		if err := rows.Scan(
			&it.ID, &it.EstimateID, &it.CompanyID, &it.Description,
			&it.Quantity, &it.UnitPrice, &it.Amount, &it.Position, &it.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan line item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// ── Materials ────────────────────────────────────────────────────────────────

func (r *EstimateRepo) AddMaterial(material *entity.EstimateMaterial) error {
	query := `
		INSERT INTO estimate_materials (id, estimate_id, company_id, name, quantity, unit_cost, amount, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.EstimateID, material.CompanyID, material.Name,
		material.Quantity, material.UnitCost, material.Amount, material.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

func (r *EstimateRepo) UpdateMaterial(material *entity.EstimateMaterial) error {
	query := `
		UPDATE estimate_materials
		SET name = $2, quantity = $3, unit_cost = $4, amount = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		material.ID, material.Name, material.Quantity, material.UnitCost, material.Amount,
	)
	if err != nil {
		return fmt.Errorf("update material: %w", err)
	}
	return nil
}

func (r *EstimateRepo) DeleteMaterial(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM estimate_materials WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete material: %w", err)
	}
	return nil
}

func (r *EstimateRepo) ListMaterials(estimateID string) ([]*entity.EstimateMaterial, error) {
	query := `
		SELECT id, estimate_id, company_id, name, quantity, unit_cost, amount, created_at
		FROM estimate_materials WHERE estimate_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, estimateID)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.EstimateMaterial
	for rows.Next() {
		var m entity.EstimateMaterial
		if err := rows.Scan(
			&m.ID, &m.EstimateID, &m.CompanyID, &m.Name,
			&m.Quantity, &m.UnitCost, &m.Amount, &m.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// RecalcTotals rewrites both totals from the child rows in one statement, so
// they can never drift from the lines as long as callers run this in the same
// transaction as the child mutation.
func (r *EstimateRepo) RecalcTotals(estimateID string) error {
	query := `
		UPDATE estimates SET
			labor_total = COALESCE((SELECT SUM(amount) FROM estimate_line_items WHERE estimate_id = $1), 0),
			materials_total = COALESCE((SELECT SUM(amount) FROM estimate_materials WHERE estimate_id = $1), 0),
			updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, estimateID)
	if err != nil {
		return fmt.Errorf("recalc estimate totals: %w", err)
	}
	return nil
}

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

var _ repository.MessageTemplateRepository = (*MessageTemplateRepo)(nil)

// MessageTemplateRepo implements MessageTemplateRepository (usable with pool or tx).
type MessageTemplateRepo struct {
	q Querier
}

func NewMessageTemplateRepository(q Querier) *MessageTemplateRepo {
	return &MessageTemplateRepo{q: q}
}

func (r *MessageTemplateRepo) Create(tpl *entity.MessageTemplate) error {
	query := `
		INSERT INTO message_templates (id, company_id, kind, name, subject, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		tpl.ID, tpl.CompanyID, tpl.Kind, tpl.Name, tpl.Subject, tpl.Body, tpl.CreatedAt, tpl.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert template: %w", err)
	}
	return nil
}

func (r *MessageTemplateRepo) GetByID(id string) (*entity.MessageTemplate, error) {
	query := `
		SELECT id, company_id, kind, name, subject, body, created_at, updated_at
		FROM message_templates WHERE id = $1`
	var t entity.MessageTemplate
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.CompanyID, &t.Kind, &t.Name, &t.Subject, &t.Body, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get template: %w", err)
	}
	return &t, nil
}

func (r *MessageTemplateRepo) ListByCompany(companyID string) ([]*entity.MessageTemplate, error) {
	query := `
		SELECT id, company_id, kind, name, subject, body, created_at, updated_at
		FROM message_templates WHERE company_id = $1 ORDER BY name`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()
	var list []*entity.MessageTemplate
	for rows.Next() {
		var t entity.MessageTemplate
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Kind, &t.Name, &t.Subject, &t.Body, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan template: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func (r *MessageTemplateRepo) Update(tpl *entity.MessageTemplate) error {
	query := `
		UPDATE message_templates
		SET kind = $2, name = $3, subject = $4, body = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		tpl.ID, tpl.Kind, tpl.Name, tpl.Subject, tpl.Body, tpl.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	return nil
}

func (r *MessageTemplateRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM message_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	return nil
}

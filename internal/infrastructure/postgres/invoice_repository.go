package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

// InvoiceRepo implements InvoiceRepository (usable with pool or tx).
type InvoiceRepo struct {
	q Querier
}

func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

const invoiceColumns = `id, company_id, job_id, customer_id, number, status, amount_total,
		stripe_checkout_session_id, stripe_payment_intent_id, issued_at, paid_at, created_at, updated_at`

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.JobID, &inv.CustomerID, &inv.Number, &inv.Status,
		&inv.AmountTotal, &inv.StripeCheckoutSessionID, &inv.StripePaymentIntentID,
		&inv.IssuedAt, &inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	return &inv, nil
}

func (r *InvoiceRepo) Create(invoice *entity.Invoice) error {
	query := `
		INSERT INTO invoices (` + invoiceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CompanyID, invoice.JobID, invoice.CustomerID,
		invoice.Number, invoice.Status, invoice.AmountTotal,
		invoice.StripeCheckoutSessionID, invoice.StripePaymentIntentID,
		invoice.IssuedAt, invoice.PaidAt, invoice.CreatedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) GetByID(id string) (*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1`
	return scanInvoice(r.q.QueryRow(context.Background(), query, id))
}

func (r *InvoiceRepo) ListByCompany(companyID string, limit, offset int) ([]*entity.Invoice, error) {
	query := `
		SELECT ` + invoiceColumns + `
		FROM invoices WHERE company_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	return r.collect(rows)
}

func (r *InvoiceRepo) ListByJob(jobID string) ([]*entity.Invoice, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE job_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, jobID)
	if err != nil {
		return nil, fmt.Errorf("list invoices by job: %w", err)
	}
	return r.collect(rows)
}

func (r *InvoiceRepo) collect(rows pgx.Rows) ([]*entity.Invoice, error) {
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.ID, &inv.CompanyID, &inv.JobID, &inv.CustomerID, &inv.Number, &inv.Status,
			&inv.AmountTotal, &inv.StripeCheckoutSessionID, &inv.StripePaymentIntentID,
			&inv.IssuedAt, &inv.PaidAt, &inv.CreatedAt, &inv.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

func (r *InvoiceRepo) Update(invoice *entity.Invoice) error {
	query := `
		UPDATE invoices
		SET customer_id = $2, number = $3, status = $4, amount_total = $5,
		    issued_at = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		invoice.ID, invoice.CustomerID, invoice.Number, invoice.Status,
		invoice.AmountTotal, invoice.IssuedAt, invoice.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update invoice: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) SetCheckoutSession(id, sessionID string) error {
	query := `UPDATE invoices SET stripe_checkout_session_id = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, sessionID)
	if err != nil {
		return fmt.Errorf("set checkout session: %w", err)
	}
	return nil
}

func (r *InvoiceRepo) MarkPaid(id, paymentIntentID string, at time.Time) error {
	query := `
		UPDATE invoices
		SET status = 'paid', stripe_payment_intent_id = $2, paid_at = $3, updated_at = $3
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, paymentIntentID, at)
	if err != nil {
		return fmt.Errorf("mark invoice paid: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

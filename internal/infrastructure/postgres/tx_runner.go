package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brushly/brushly-api/internal/application/billing"
	"github.com/brushly/brushly-api/internal/application/estimate"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

// Ensure TxRunner satisfies the application-layer transaction ports.
var _ estimate.TxRunner = (*TxRunner)(nil)
var _ billing.ConversionTxRunner = (*TxRunner)(nil)

// TxRunner executes callbacks inside a PostgreSQL transaction, handing the
// callback repositories bound to that transaction.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner builds the runner over the pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunEstimate runs fn with an estimate repository bound to one transaction,
// so child-row mutations and the parent total recalculation commit together.
func (r *TxRunner) RunEstimate(ctx context.Context, fn func(repo repository.EstimateRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewEstimateRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunConversion runs fn with referral repositories bound to one transaction,
// so the conversion claim and the counter bump land atomically.
func (r *TxRunner) RunConversion(ctx context.Context, fn func(
	refRepo repository.ReferralRepository,
	codeRepo repository.CreatorCodeRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewReferralRepository(tx), NewCreatorCodeRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

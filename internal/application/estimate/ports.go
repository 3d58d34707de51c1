package estimate

import (
	"context"

	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

// TxRunner runs fn with an EstimateRepository bound to one transaction, so a
// child-row mutation and the parent totals recalculation commit together.
type TxRunner interface {
	RunEstimate(ctx context.Context, fn func(repo repository.EstimateRepository) error) error
}

// PDFGenerator renders the customer-facing estimate document.
type PDFGenerator interface {
	GenerateEstimatePDF(
		ctx context.Context,
		est *entity.Estimate,
		company *entity.Company,
		customer *entity.Customer,
		job *entity.Job,
		items []*entity.EstimateLineItem,
		materials []*entity.EstimateMaterial,
	) ([]byte, error)
}

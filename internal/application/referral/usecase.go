package referral

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
	"github.com/brushly/brushly-api/pkg/logger"
)

// UseCase handles the public side of the affiliate program: validating a
// creator code and recording landings. Conversions happen in the webhook
// pipeline, not here.
type UseCase struct {
	codeRepo repository.CreatorCodeRepository
	refRepo  repository.ReferralRepository
	log      *logger.Logger
}

func NewUseCase(codeRepo repository.CreatorCodeRepository, refRepo repository.ReferralRepository, log *logger.Logger) *UseCase {
	return &UseCase{codeRepo: codeRepo, refRepo: refRepo, log: log}
}

// Validate looks up an active creator code by its public string.
func (uc *UseCase) Validate(code string) (*dto.CreatorCodeResponse, error) {
	code = strings.TrimSpace(strings.ToLower(code))
	if code == "" {
		return nil, domain.ErrInvalidInput
	}
	cc, err := uc.codeRepo.GetByCode(code)
	if err != nil {
		return nil, err
	}
	if cc == nil || !cc.Active {
		return nil, domain.ErrNotFound
	}
	return &dto.CreatorCodeResponse{
		ID:        cc.ID,
		Code:      cc.Code,
		OwnerName: cc.OwnerName,
		Active:    cc.Active,
	}, nil
}

// RecordVisit stores one landing for (code, visitor). Repeat landings by the
// same visitor are absorbed without bumping the counter, so a reload does not
// inflate the creator's stats.
func (uc *UseCase) RecordVisit(code string, in dto.ReferralVisitRequest) (*dto.CreatorCodeResponse, error) {
	resp, err := uc.Validate(code)
	if err != nil {
		return nil, err
	}
	if in.VisitorID == "" {
		return nil, domain.ErrInvalidInput
	}

	ref := &entity.Referral{
		ID:            uuid.New().String(),
		CreatorCodeID: resp.ID,
		VisitorID:     in.VisitorID,
		LandedAt:      time.Now(),
	}
	if err := uc.refRepo.Create(ref); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return resp, nil
		}
		return nil, err
	}
	if err := uc.codeRepo.IncrementVisits(resp.ID); err != nil {
		// The landing row is what conversions key off; a stale counter is
		// cosmetic, so log and move on.
		uc.log.Warn().Err(err).Str("creator_code_id", resp.ID).Msg("increment visit counter")
	}
	return resp, nil
}

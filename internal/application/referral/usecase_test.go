package referral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
	"github.com/brushly/brushly-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type memCodeRepo struct {
	repository.CreatorCodeRepository
	byCode map[string]*entity.CreatorCode
	visits map[string]int
}

func (m *memCodeRepo) GetByCode(code string) (*entity.CreatorCode, error) {
	return m.byCode[code], nil
}

func (m *memCodeRepo) IncrementVisits(id string) error {
	if m.visits == nil {
		m.visits = make(map[string]int)
	}
	m.visits[id]++
	return nil
}

type memReferralRepo struct {
	repository.ReferralRepository
	landed map[string]bool // key: codeID+"/"+visitorID
}

func (m *memReferralRepo) Create(ref *entity.Referral) error {
	key := ref.CreatorCodeID + "/" + ref.VisitorID
	if m.landed == nil {
		m.landed = make(map[string]bool)
	}
	if m.landed[key] {
		return domain.ErrDuplicate
	}
	m.landed[key] = true
	return nil
}

func newReferralFixture() (*UseCase, *memCodeRepo, *memReferralRepo) {
	codes := &memCodeRepo{byCode: map[string]*entity.CreatorCode{
		"paintpro": {ID: "code_1", Code: "paintpro", OwnerName: "Sam", Active: true},
		"retired":  {ID: "code_2", Code: "retired", Active: false},
	}}
	refs := &memReferralRepo{}
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	return NewUseCase(codes, refs, log), codes, refs
}

// ──────────────────────────────────────────────────────────────────────────────
// Validate
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_NormalizesCase(t *testing.T) {
	uc, _, _ := newReferralFixture()

	resp, err := uc.Validate("  PaintPro ")
	require.NoError(t, err)
	assert.Equal(t, "code_1", resp.ID)
	assert.Equal(t, "Sam", resp.OwnerName)
}

func TestValidate_InactiveCodeIsNotFound(t *testing.T) {
	uc, _, _ := newReferralFixture()

	_, err := uc.Validate("retired")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestValidate_UnknownCode(t *testing.T) {
	uc, _, _ := newReferralFixture()

	_, err := uc.Validate("nobody")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestValidate_EmptyCode(t *testing.T) {
	uc, _, _ := newReferralFixture()

	_, err := uc.Validate("   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordVisit
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordVisit_CountsFirstLanding(t *testing.T) {
	uc, codes, refs := newReferralFixture()

	resp, err := uc.RecordVisit("paintpro", dto.ReferralVisitRequest{VisitorID: "vis_1"})
	require.NoError(t, err)
	assert.Equal(t, "code_1", resp.ID)
	assert.Equal(t, 1, codes.visits["code_1"])
	assert.True(t, refs.landed["code_1/vis_1"])
}

func TestRecordVisit_ReloadDoesNotInflateCounter(t *testing.T) {
	uc, codes, _ := newReferralFixture()

	_, err := uc.RecordVisit("paintpro", dto.ReferralVisitRequest{VisitorID: "vis_1"})
	require.NoError(t, err)

	// Same visitor landing again: absorbed, still a successful response.
	resp, err := uc.RecordVisit("paintpro", dto.ReferralVisitRequest{VisitorID: "vis_1"})
	require.NoError(t, err)
	assert.Equal(t, "code_1", resp.ID)
	assert.Equal(t, 1, codes.visits["code_1"])
}

func TestRecordVisit_DistinctVisitorsEachCount(t *testing.T) {
	uc, codes, _ := newReferralFixture()

	_, err := uc.RecordVisit("paintpro", dto.ReferralVisitRequest{VisitorID: "vis_1"})
	require.NoError(t, err)
	_, err = uc.RecordVisit("paintpro", dto.ReferralVisitRequest{VisitorID: "vis_2"})
	require.NoError(t, err)

	assert.Equal(t, 2, codes.visits["code_1"])
}

func TestRecordVisit_RequiresVisitorID(t *testing.T) {
	uc, _, _ := newReferralFixture()

	_, err := uc.RecordVisit("paintpro", dto.ReferralVisitRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRecordVisit_InactiveCodeRejected(t *testing.T) {
	uc, _, refs := newReferralFixture()

	_, err := uc.RecordVisit("retired", dto.ReferralVisitRequest{VisitorID: "vis_1"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, refs.landed)
}

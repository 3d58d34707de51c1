package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

// CrewUseCase paint crews and members.
type CrewUseCase struct {
	repo repository.CrewRepository
}

// NewCrewUseCase builds the use case.
func NewCrewUseCase(repo repository.CrewRepository) *CrewUseCase {
	return &CrewUseCase{repo: repo}
}

// Create adds a crew.
func (uc *CrewUseCase) Create(companyID string, in dto.CreateCrewRequest) (*dto.CrewResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	crew := &entity.Crew{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		Color:     in.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(crew); err != nil {
		return nil, err
	}
	return toCrewResponse(crew, nil), nil
}

// List returns the company's crews with members.
func (uc *CrewUseCase) List(companyID string) ([]*dto.CrewResponse, error) {
	crews, err := uc.repo.ListByCompany(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CrewResponse, 0, len(crews))
	for _, crew := range crews {
		members, err := uc.repo.ListMembers(crew.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toCrewResponse(crew, members))
	}
	return out, nil
}

// Update renames or recolors a crew.
func (uc *CrewUseCase) Update(companyID, id string, in dto.CreateCrewRequest) (*dto.CrewResponse, error) {
	crew, err := uc.loadScoped(companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	crew.Name = in.Name
	crew.Color = in.Color
	crew.UpdatedAt = time.Now()
	if err := uc.repo.Update(crew); err != nil {
		return nil, err
	}
	members, err := uc.repo.ListMembers(crew.ID)
	if err != nil {
		return nil, err
	}
	return toCrewResponse(crew, members), nil
}

// AddMember puts a painter on a crew.
func (uc *CrewUseCase) AddMember(companyID, crewID string, in dto.CrewMemberRequest) (*dto.CrewMemberResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.loadScoped(companyID, crewID); err != nil {
		return nil, err
	}
	member := &entity.CrewMember{
		ID:        uuid.New().String(),
		CrewID:    crewID,
		CompanyID: companyID,
		Name:      in.Name,
		Phone:     in.Phone,
		Role:      in.Role,
		CreatedAt: time.Now(),
	}
	if err := uc.repo.AddMember(member); err != nil {
		return nil, err
	}
	return &dto.CrewMemberResponse{ID: member.ID, Name: member.Name, Phone: member.Phone, Role: member.Role}, nil
}

// RemoveMember takes a painter off a crew. The member must belong to a crew
// of the caller's company.
func (uc *CrewUseCase) RemoveMember(companyID, crewID, memberID string) error {
	if _, err := uc.loadScoped(companyID, crewID); err != nil {
		return err
	}
	members, err := uc.repo.ListMembers(crewID)
	if err != nil {
		return err
	}
	for _, m := range members {
		if m.ID == memberID {
			return uc.repo.DeleteMember(memberID)
		}
	}
	return domain.ErrNotFound
}

// Delete removes a crew (members cascade in the schema).
func (uc *CrewUseCase) Delete(companyID, id string) error {
	if _, err := uc.loadScoped(companyID, id); err != nil {
		return err
	}
	return uc.repo.Delete(id)
}

func (uc *CrewUseCase) loadScoped(companyID, id string) (*entity.Crew, error) {
	crew, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if crew == nil {
		return nil, domain.ErrNotFound
	}
	if crew.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return crew, nil
}

func toCrewResponse(c *entity.Crew, members []*entity.CrewMember) *dto.CrewResponse {
	resp := &dto.CrewResponse{
		ID:        c.ID,
		CompanyID: c.CompanyID,
		Name:      c.Name,
		Color:     c.Color,
		CreatedAt: c.CreatedAt,
	}
	for _, m := range members {
		resp.Members = append(resp.Members, dto.CrewMemberResponse{ID: m.ID, Name: m.Name, Phone: m.Phone, Role: m.Role})
	}
	return resp
}

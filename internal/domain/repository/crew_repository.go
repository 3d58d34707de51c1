package repository

import "github.com/brushly/brushly-api/internal/domain/entity"

// CrewRepository is the persistence port for crews and their members.
type CrewRepository interface {
	Create(crew *entity.Crew) error
	GetByID(id string) (*entity.Crew, error)
	ListByCompany(companyID string) ([]*entity.Crew, error)
	Update(crew *entity.Crew) error
	Delete(id string) error

	AddMember(member *entity.CrewMember) error
	ListMembers(crewID string) ([]*entity.CrewMember, error)
	DeleteMember(id string) error
}

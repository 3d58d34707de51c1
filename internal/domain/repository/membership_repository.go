package repository

import "github.com/brushly/brushly-api/internal/domain/entity"

// CompanyUserRepository is the persistence port for the membership join table.
type CompanyUserRepository interface {
	Create(member *entity.CompanyUser) error
	// Get returns the membership row for (userID, companyID), or nil.
	Get(userID, companyID string) (*entity.CompanyUser, error)
	ListByUser(userID string) ([]*entity.CompanyUser, error)
}

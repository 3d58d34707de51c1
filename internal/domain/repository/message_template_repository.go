package repository

import "github.com/brushly/brushly-api/internal/domain/entity"

// MessageTemplateRepository is the persistence port for canned messages.
type MessageTemplateRepository interface {
	Create(tpl *entity.MessageTemplate) error
	GetByID(id string) (*entity.MessageTemplate, error)
	ListByCompany(companyID string) ([]*entity.MessageTemplate, error)
	Update(tpl *entity.MessageTemplate) error
	Delete(id string) error
}

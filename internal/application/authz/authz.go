// Package authz centralizes the membership check every tenant-scoped
// operation must pass: a caller may only touch data belonging to a company
// they hold a company_users row for. Handlers consume this through the tenant
// middleware instead of re-implementing the join per route.
package authz

import (
	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/repository"
)

// TenantContext is the capability a verified membership grants.
type TenantContext struct {
	UserID    string
	CompanyID string
	Role      string
}

// Authorizer resolves and verifies tenant membership.
type Authorizer struct {
	members   repository.CompanyUserRepository
	companies repository.CompanyRepository
}

// New builds the authorizer.
func New(members repository.CompanyUserRepository, companies repository.CompanyRepository) *Authorizer {
	return &Authorizer{members: members, companies: companies}
}

// LoadTenantContext verifies that userID belongs to companyID. When companyID
// is empty and the user has exactly one membership, that one is used.
// Returns ErrNotFound when the company does not exist, ErrForbidden when the
// caller is not a member.
func (a *Authorizer) LoadTenantContext(userID, companyID string) (*TenantContext, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if companyID == "" {
		memberships, err := a.members.ListByUser(userID)
		if err != nil {
			return nil, err
		}
		if len(memberships) != 1 {
			return nil, domain.ErrForbidden
		}
		companyID = memberships[0].CompanyID
	}

	company, err := a.companies.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	member, err := a.members.Get(userID, companyID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, domain.ErrForbidden
	}
	return &TenantContext{UserID: userID, CompanyID: companyID, Role: member.Role}, nil
}

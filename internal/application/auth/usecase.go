package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/brushly/brushly-api/internal/application/dto"
	"github.com/brushly/brushly-api/internal/domain"
	"github.com/brushly/brushly-api/internal/domain/entity"
	"github.com/brushly/brushly-api/internal/domain/repository"
	"github.com/brushly/brushly-api/pkg/jwt"
)

// JWTConfig token generation settings.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase registration and login. Registration provisions the whole
// tenant: user, company, owner membership and the trial the subscription gate
// starts from.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	memberRepo  repository.CompanyUserRepository
	jwtCfg      JWTConfig
	trialDays   int
}

// NewAuthUseCase builds the use case.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	companyRepo repository.CompanyRepository,
	memberRepo repository.CompanyUserRepository,
	jwtCfg JWTConfig,
	trialDays int,
) *AuthUseCase {
	return &AuthUseCase{
		userRepo:    userRepo,
		companyRepo: companyRepo,
		memberRepo:  memberRepo,
		jwtCfg:      jwtCfg,
		trialDays:   trialDays,
	}
}

// Register creates user + company + owner membership and starts the trial.
// Returns ErrEmailAlreadyExists when the email is taken.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" || in.CompanyName == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.userRepo.FindByEmail(in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         name,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	trialEnds := now.AddDate(0, 0, uc.trialDays)
	company := &entity.Company{
		ID:                 uuid.New().String(),
		Name:               in.CompanyName,
		OwnerUserID:        user.ID,
		SubscriptionStatus: entity.SubscriptionTrialing,
		TrialEndsAt:        &trialEnds,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.companyRepo.Create(company); err != nil {
		return nil, err
	}
	member := &entity.CompanyUser{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		CompanyID: company.ID,
		Role:      entity.RoleOwner,
		CreatedAt: now,
	}
	if err := uc.memberRepo.Create(member); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, company.ID, member.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		User:      *toUserResponse(user),
		CompanyID: company.ID,
		Role:      member.Role,
	}, nil
}

// Login verifies credentials, picks the user's company and returns a token.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.FindByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}

	memberships, err := uc.memberRepo.ListByUser(user.ID)
	if err != nil {
		return nil, err
	}
	if len(memberships) == 0 {
		return nil, domain.ErrForbidden
	}
	// First membership wins; multi-company users switch via X-Company-ID.
	member := memberships[0]

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, member.CompanyID, member.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		User:      *toUserResponse(user),
		CompanyID: member.CompanyID,
		Role:      member.Role,
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

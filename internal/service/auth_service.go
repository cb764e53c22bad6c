package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"foodshare/internal/auth"
	"foodshare/internal/db"
	apperrors "foodshare/internal/errors"
	"foodshare/internal/metrics"
	"foodshare/internal/model"
	"foodshare/internal/repository"
)

const bcryptCost = 10

// dummyHash is compared against when an email is unknown so both failure
// paths cost one bcrypt comparison.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)

// RegisterInput carries registration fields; pointer fields are optional.
type RegisterInput struct {
	Email           string
	Password        string
	Role            string
	Name            string
	Contact         *string
	Address         *string
	License         *string
	RegistrationNo  *string
	VolunteersCount *int
}

// LoginResult is returned on successful login.
type LoginResult struct {
	AccountID uuid.UUID
	Role      model.Role
	Token     string
}

// AuthService handles registration and authentication.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.Account, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

type authService struct {
	uow         repository.UnitOfWork
	accountRepo repository.AccountRepository
	jwtService  *auth.JWTService
	tokenStore  auth.TokenStoreInterface
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	uow repository.UnitOfWork,
	accountRepo repository.AccountRepository,
	jwtService *auth.JWTService,
	tokenStore auth.TokenStoreInterface,
	m *metrics.Metrics,
	logger *slog.Logger,
) AuthService {
	return &authService{
		uow:         uow,
		accountRepo: accountRepo,
		jwtService:  jwtService,
		tokenStore:  tokenStore,
		metrics:     m,
		logger:      logger,
	}
}

// Register creates a pending account and its role profile in one transaction.
func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.Account, error) {
	email := normalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || in.Password == "" || in.Role == "" || name == "" {
		return nil, apperrors.ErrMissingFields
	}
	role, err := model.ParseRole(in.Role)
	if err != nil {
		return nil, apperrors.ErrInvalidRole
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Role:         role,
		Status:       model.AccountStatusPending,
	}

	err = s.uow.WithTransaction(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		if err := repos.Accounts.Create(ctx, account); err != nil {
			return fmt.Errorf("create account: %w", err)
		}
		profiles, err := repos.Profiles.For(role)
		if err != nil {
			return err
		}
		if err := profiles.Create(ctx, newProfile(account.ID, role, name, in)); err != nil {
			return fmt.Errorf("create %s profile: %w", role, err)
		}
		return nil
	})
	if err != nil {
		if db.IsDuplicateKey(err) {
			s.metrics.IncrementRegistration(role.String(), "conflict")
			return nil, apperrors.ErrEmailTaken
		}
		s.metrics.IncrementRegistration(role.String(), "failed")
		s.logger.ErrorContext(ctx, "registration failed", "role", role, "error", err)
		return nil, fmt.Errorf("register account: %w", err)
	}

	s.metrics.IncrementRegistration(role.String(), "created")
	return account, nil
}

// newProfile builds the profile variant for role. Absent optional fields stay nil.
func newProfile(accountID uuid.UUID, role model.Role, name string, in RegisterInput) model.Profile {
	if role == model.RoleRestaurant {
		return &model.RestaurantProfile{
			AccountID:     accountID,
			Name:          name,
			OwnerName:     &name,
			ContactNumber: optional(in.Contact),
			Address:       optional(in.Address),
			LicenseProof:  optional(in.License),
		}
	}
	return &model.NGOProfile{
		AccountID:               accountID,
		Name:                    name,
		ContactPerson:           &name,
		ContactNumber:           optional(in.Contact),
		Address:                 optional(in.Address),
		RegistrationCertificate: optional(in.RegistrationNo),
		VolunteersCount:         in.VolunteersCount,
	}
}

// Login authenticates an approved account and issues a bearer token.
func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	account, err := s.accountRepo.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("find account: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !account.Approved() {
		return nil, apperrors.ErrAccountPending
	}

	token, err := s.jwtService.GenerateAccessToken(account.ID, account.Role)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	return &LoginResult{AccountID: account.ID, Role: account.Role, Token: token}, nil
}

// Logout revokes the presented token for the rest of its lifetime.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" {
		return apperrors.ErrInvalidToken
	}
	return s.tokenStore.RevokeAccessToken(ctx, claims.ID, s.jwtService.Remaining(claims))
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// optional maps blank strings to nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

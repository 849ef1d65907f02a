package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/thapelomagqazana/accounts-api/internal/core/domain"
	"github.com/thapelomagqazana/accounts-api/internal/core/ports"
)

const (
	minPasswordLength = 8
	maxListLimit      = 10000
)

// AccountService implements the account use cases: signin/signout and
// CRUD with owner/admin authorization.
type AccountService struct {
	repo   ports.AccountRepository
	tokens ports.TokenService
	logger zerolog.Logger
}

func NewAccountService(repo ports.AccountRepository, tokens ports.TokenService, logger zerolog.Logger) *AccountService {
	return &AccountService{repo: repo, tokens: tokens, logger: logger}
}

// SignIn verifies credentials and issues a bearer token. An unknown email
// and a wrong password both collapse to domain.ErrInvalidCredentials.
func (s *AccountService) SignIn(ctx context.Context, email, password string) (string, error) {
	account, err := s.repo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !VerifyPassword(password, account.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(ports.TokenClaims{Subject: account.ID, Role: account.Role})
	if err != nil {
		return "", err
	}

	s.logger.Info().Str("account_id", account.ID).Msg("signin succeeded")
	return token, nil
}

// SignOut acknowledges a signout. Tokens are stateless and non-revocable:
// no server-side state changes, the issued token stays valid until its
// natural expiry. Calling this repeatedly with the same token always
// succeeds.
func (s *AccountService) SignOut(ctx context.Context, requester domain.Requester) error {
	s.logger.Debug().Str("account_id", requester.ID).Msg("signout acknowledged")
	return nil
}

// Create validates, normalizes, hashes the password, and persists a new
// account.
func (s *AccountService) Create(ctx context.Context, input ports.CreateAccountInput) (*domain.Account, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "must not be blank")
	}

	email := domain.NormalizeEmail(input.Email)
	if email == "" {
		return nil, domain.NewValidationError("email", "must not be blank")
	}

	if len(strings.TrimSpace(input.Password)) < minPasswordLength {
		return nil, domain.NewValidationError("password", "must be at least 8 characters")
	}

	role := domain.NormalizeRole(input.Role)
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.NewValidationError("role", "must be one of: user, admin")
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, &domain.Account{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", created.ID).Str("role", created.Role).Msg("account created")
	return created, nil
}

// List returns one offset-based page. Bounds are validated before any
// storage call: skip >= 0 and limit in [1, 10000].
func (s *AccountService) List(ctx context.Context, input ports.ListAccountsInput) ([]*domain.Account, error) {
	if input.Skip < 0 {
		return nil, domain.NewValidationError("skip", "must not be negative")
	}
	if input.Limit < 1 || input.Limit > maxListLimit {
		return nil, domain.NewValidationError("limit", "must be between 1 and 10000")
	}
	return s.repo.GetAll(ctx, input.Skip, input.Limit)
}

// Get fetches one account by id.
func (s *AccountService) Get(ctx context.Context, id string) (*domain.Account, error) {
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial update after the not-found and authorization
// gates. Only non-nil input fields change; a supplied password is
// re-hashed before it reaches the repository.
func (s *AccountService) Update(ctx context.Context, requester domain.Requester, id string, input ports.UpdateAccountInput) (*domain.Account, error) {
	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !domain.CanModify(requester, target.ID) {
		return nil, domain.ErrForbidden
	}

	changes, err := buildChanges(input)
	if err != nil {
		return nil, err
	}
	if changes.IsEmpty() {
		return target, nil
	}

	updated, err := s.repo.Update(ctx, id, changes)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("account_id", id).Str("requester_id", requester.ID).Msg("account updated")
	return updated, nil
}

// Delete permanently removes an account after the same gate sequence as
// Update. No soft-delete.
func (s *AccountService) Delete(ctx context.Context, requester domain.Requester, id string) error {
	target, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.CanModify(requester, target.ID) {
		return domain.ErrForbidden
	}

	existed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !existed {
		return domain.ErrAccountNotFound
	}

	s.logger.Info().Str("account_id", id).Str("requester_id", requester.ID).Msg("account deleted")
	return nil
}

// buildChanges converts the partial input into repository changes.
// Presence is signalled by a non-nil pointer; a supplied-but-blank value
// is a validation error, never a silent no-op.
func buildChanges(input ports.UpdateAccountInput) (domain.AccountChanges, error) {
	var changes domain.AccountChanges

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return changes, domain.NewValidationError("name", "must not be blank")
		}
		changes.Name = &name
	}

	if input.Email != nil {
		email := domain.NormalizeEmail(*input.Email)
		if email == "" {
			return changes, domain.NewValidationError("email", "must not be blank")
		}
		changes.Email = &email
	}

	if input.Password != nil {
		if len(strings.TrimSpace(*input.Password)) < minPasswordLength {
			return changes, domain.NewValidationError("password", "must be at least 8 characters")
		}
		hash, err := HashPassword(*input.Password)
		if err != nil {
			return changes, err
		}
		changes.PasswordHash = &hash
	}

	if input.Role != nil {
		role := domain.NormalizeRole(*input.Role)
		if !domain.ValidRole(role) {
			return changes, domain.NewValidationError("role", "must be one of: user, admin")
		}
		changes.Role = &role
	}

	return changes, nil
}

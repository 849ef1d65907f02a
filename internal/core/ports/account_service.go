package ports

import (
	"context"

	"github.com/thapelomagqazana/accounts-api/internal/core/domain"
)

// CreateAccountInput carries the data needed to register an account.
// Password is plaintext here; the service hashes it before anything is
// persisted.
type CreateAccountInput struct {
	Name     string
	Email    string
	Password string
	Role     string // optional, defaults to "user"
}

// UpdateAccountInput is a partial update: nil means "leave unchanged".
// A non-nil blank value is rejected as invalid rather than treated as
// absent.
type UpdateAccountInput struct {
	Name     *string
	Email    *string
	Password *string
	Role     *string
}

// ListAccountsInput carries offset pagination bounds.
type ListAccountsInput struct {
	Skip  int
	Limit int
}

// AccountService defines the account use cases.
type AccountService interface {
	SignIn(ctx context.Context, email, password string) (string, error)
	SignOut(ctx context.Context, requester domain.Requester) error
	Create(ctx context.Context, input CreateAccountInput) (*domain.Account, error)
	List(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error)
	Get(ctx context.Context, id string) (*domain.Account, error)
	Update(ctx context.Context, requester domain.Requester, id string, input UpdateAccountInput) (*domain.Account, error)
	Delete(ctx context.Context, requester domain.Requester, id string) error
}

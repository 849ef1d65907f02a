package ports

import (
	"context"

	"github.com/thapelomagqazana/accounts-api/internal/core/domain"
)

// AccountRepository defines persistence operations for accounts. Both the
// relational and the document implementation must satisfy identical
// semantics:
//   - GetByID/GetByEmail return domain.ErrAccountNotFound when no account
//     matches. Email lookup is case-insensitive; implementations normalize
//     the argument before querying.
//   - GetAll returns a stable, creation-ordered page.
//   - Create returns domain.ErrDuplicateEmail when the normalized email is
//     already taken; the check is enforced by the storage engine, not by a
//     racy pre-read.
//   - Update applies only the non-nil fields of changes and refreshes
//     updated_at.
//   - Delete reports whether a record existed and was removed.
type AccountRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	GetAll(ctx context.Context, skip, limit int) ([]*domain.Account, error)
	Create(ctx context.Context, account *domain.Account) (*domain.Account, error)
	Update(ctx context.Context, id string, changes domain.AccountChanges) (*domain.Account, error)
	Delete(ctx context.Context, id string) (bool, error)
}

package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/thapelomagqazana/accounts-api/internal/core/domain"
	"github.com/thapelomagqazana/accounts-api/internal/core/ports"
)

type stubAccountRepo struct {
	seq      int
	order    []string
	accounts map[string]*domain.Account
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{accounts: make(map[string]*domain.Account)}
}

func cloneAccount(a *domain.Account) *domain.Account {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	email = domain.NormalizeEmail(email)
	for _, a := range r.accounts {
		if a.Email == email {
			return cloneAccount(a), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) GetAll(_ context.Context, skip, limit int) ([]*domain.Account, error) {
	var page []*domain.Account
	for i := skip; i < len(r.order) && len(page) < limit; i++ {
		page = append(page, cloneAccount(r.accounts[r.order[i]]))
	}
	return page, nil
}

func (r *stubAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	for _, existing := range r.accounts {
		if existing.Email == account.Email {
			return nil, domain.ErrDuplicateEmail
		}
	}
	r.seq++
	created := cloneAccount(account)
	created.ID = fmt.Sprintf("acct-%d", r.seq)
	r.accounts[created.ID] = created
	r.order = append(r.order, created.ID)
	return cloneAccount(created), nil
}

func (r *stubAccountRepo) Update(_ context.Context, id string, changes domain.AccountChanges) (*domain.Account, error) {
	a, ok := r.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	if changes.Email != nil {
		for otherID, other := range r.accounts {
			if otherID != id && other.Email == *changes.Email {
				return nil, domain.ErrDuplicateEmail
			}
		}
		a.Email = *changes.Email
	}
	if changes.Name != nil {
		a.Name = *changes.Name
	}
	if changes.PasswordHash != nil {
		a.PasswordHash = *changes.PasswordHash
	}
	if changes.Role != nil {
		a.Role = *changes.Role
	}
	a.UpdatedAt = time.Now().UTC()
	return cloneAccount(a), nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.accounts[id]; !ok {
		return false, nil
	}
	delete(r.accounts, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

func newTestService(t *testing.T) (*AccountService, *stubAccountRepo, *TokenService) {
	t.Helper()
	repo := newStubAccountRepo()
	tokens, err := NewTokenService("secret", "HS256", time.Hour)
	if err != nil {
		t.Fatalf("build token service: %v", err)
	}
	return NewAccountService(repo, tokens, zerolog.Nop()), repo, tokens
}

func mustCreate(t *testing.T, svc *AccountService, input ports.CreateAccountInput) *domain.Account {
	t.Helper()
	account, err := svc.Create(context.Background(), input)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	return account
}

func isValidationError(err error, field string) bool {
	var ve *domain.ValidationError
	return errors.As(err, &ve) && ve.Field == field
}

func TestAccountService_Create_HashesPassword(t *testing.T) {
	svc, repo, _ := newTestService(t)

	account := mustCreate(t, svc, ports.CreateAccountInput{
		Name: "John Doe", Email: "john@x.com", Password: "securepw1",
	})

	stored := repo.accounts[account.ID]
	if stored.PasswordHash == "" || stored.PasswordHash == "securepw1" {
		t.Fatalf("stored hash must be non-empty and not the plaintext")
	}
	if !VerifyPassword("securepw1", stored.PasswordHash) {
		t.Fatalf("stored hash must verify the original password")
	}
}

func TestAccountService_Create_Normalizes(t *testing.T) {
	svc, _, _ := newTestService(t)

	account := mustCreate(t, svc, ports.CreateAccountInput{
		Name: "  John Doe  ", Email: " JOHN@X.COM ", Password: "securepw1", Role: " ADMIN ",
	})

	if account.Email != "john@x.com" {
		t.Fatalf("email not normalized: %q", account.Email)
	}
	if account.Name != "John Doe" {
		t.Fatalf("name not trimmed: %q", account.Name)
	}
	if account.Role != domain.RoleAdmin {
		t.Fatalf("role not normalized: %q", account.Role)
	}
}

func TestAccountService_Create_DefaultRole(t *testing.T) {
	svc, _, _ := newTestService(t)

	account := mustCreate(t, svc, ports.CreateAccountInput{
		Name: "John Doe", Email: "john@x.com", Password: "securepw1",
	})
	if account.Role != domain.RoleUser {
		t.Fatalf("expected default role %q, got %q", domain.RoleUser, account.Role)
	}
}

func TestAccountService_Create_Validation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, ports.CreateAccountInput{Name: "   ", Email: "a@x.com", Password: "securepw1"}); !isValidationError(err, "name") {
		t.Fatalf("expected name validation error, got %v", err)
	}
	if _, err := svc.Create(ctx, ports.CreateAccountInput{Name: "A", Email: "a@x.com", Password: "short"}); !isValidationError(err, "password") {
		t.Fatalf("expected password validation error, got %v", err)
	}
	if _, err := svc.Create(ctx, ports.CreateAccountInput{Name: "A", Email: "a@x.com", Password: "securepw1", Role: "root"}); !isValidationError(err, "role") {
		t.Fatalf("expected role validation error, got %v", err)
	}
}

func TestAccountService_Create_DuplicateEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	mustCreate(t, svc, ports.CreateAccountInput{Name: "John", Email: "JOHN@X.COM", Password: "securepw1"})

	// Same address differing only by case and whitespace.
	_, err := svc.Create(context.Background(), ports.CreateAccountInput{
		Name: "John Again", Email: "  john@x.com ", Password: "securepw1",
	})
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAccountService_SignIn_Success(t *testing.T) {
	svc, _, tokens := newTestService(t)

	created := mustCreate(t, svc, ports.CreateAccountInput{
		Name: "John Doe", Email: "JOHN@X.COM", Password: "securepw1", Role: "admin",
	})

	// Mixed-case email must authenticate against the normalized stored one.
	token, err := svc.SignIn(context.Background(), "JOHN@x.com", "securepw1")
	if err != nil {
		t.Fatalf("signin failed: %v", err)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token must verify: %v", err)
	}
	if claims.Subject != created.ID {
		t.Fatalf("expected subject %q, got %q", created.ID, claims.Subject)
	}
	if claims.Role != domain.RoleAdmin {
		t.Fatalf("expected role admin, got %q", claims.Role)
	}
}

func TestAccountService_SignIn_WrongPassword(t *testing.T) {
	svc, _, _ := newTestService(t)

	mustCreate(t, svc, ports.CreateAccountInput{Name: "John", Email: "john@x.com", Password: "securepw1"})

	if _, err := svc.SignIn(context.Background(), "john@x.com", "wrongpass1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_SignIn_UnknownEmail(t *testing.T) {
	svc, _, _ := newTestService(t)

	// Unknown account and wrong password collapse to the same error.
	if _, err := svc.SignIn(context.Background(), "ghost@x.com", "securepw1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAccountService_SignOut_Idempotent(t *testing.T) {
	svc, _, _ := newTestService(t)

	requester := domain.Requester{ID: "acct-1", Role: domain.RoleUser}
	for i := 0; i < 3; i++ {
		if err := svc.SignOut(context.Background(), requester); err != nil {
			t.Fatalf("signout attempt %d failed: %v", i+1, err)
		}
	}
}

func TestAccountService_List_Bounds(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.List(ctx, ports.ListAccountsInput{Skip: -1, Limit: 10}); !isValidationError(err, "skip") {
		t.Fatalf("expected skip validation error, got %v", err)
	}
	if _, err := svc.List(ctx, ports.ListAccountsInput{Skip: 0, Limit: 0}); !isValidationError(err, "limit") {
		t.Fatalf("expected limit validation error, got %v", err)
	}
	if _, err := svc.List(ctx, ports.ListAccountsInput{Skip: 0, Limit: 10001}); !isValidationError(err, "limit") {
		t.Fatalf("expected limit validation error, got %v", err)
	}
}

func TestAccountService_List_Pagination(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		mustCreate(t, svc, ports.CreateAccountInput{
			Name: "User", Email: fmt.Sprintf("user%d@x.com", i), Password: "securepw1",
		})
	}

	// Skip beyond the total count returns an empty page.
	page, err := svc.List(ctx, ports.ListAccountsInput{Skip: 10, Limit: 5})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page) != 0 {
		t.Fatalf("expected empty page, got %d rows", len(page))
	}

	// Limit greater than the remaining rows returns exactly the remainder.
	page, err = svc.List(ctx, ports.ListAccountsInput{Skip: 1, Limit: 100})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(page))
	}
}

func TestAccountService_Get_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountService_Update_PartialName(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created := mustCreate(t, svc, ports.CreateAccountInput{Name: "John", Email: "john@x.com", Password: "securepw1"})
	requester := domain.Requester{ID: created.ID, Role: created.Role}

	name := "New Name"
	updated, err := svc.Update(ctx, requester, created.ID, ports.UpdateAccountInput{Name: &name})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "New Name" {
		t.Fatalf("name not updated: %q", updated.Name)
	}
	if updated.Email != created.Email || updated.Role != created.Role {
		t.Fatalf("unsupplied fields must not change")
	}
}

func TestAccountService_Update_RehashesPassword(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	created := mustCreate(t, svc, ports.CreateAccountInput{Name: "John", Email: "john@x.com", Password: "securepw1"})
	oldHash := repo.accounts[created.ID].PasswordHash

	password := "newsecret9"
	if _, err := svc.Update(ctx, domain.Requester{ID: created.ID, Role: created.Role}, created.ID, ports.UpdateAccountInput{Password: &password}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	newHash := repo.accounts[created.ID].PasswordHash
	if newHash == oldHash || newHash == password {
		t.Fatalf("password must be re-hashed")
	}
	if !VerifyPassword("newsecret9", newHash) {
		t.Fatalf("new hash must verify the new password")
	}
}

func TestAccountService_Update_Forbidden(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	target := mustCreate(t, svc, ports.CreateAccountInput{Name: "Target", Email: "target@x.com", Password: "securepw1"})
	other := mustCreate(t, svc, ports.CreateAccountInput{Name: "Other", Email: "other@x.com", Password: "securepw1"})

	name := "Hijacked"
	_, err := svc.Update(ctx, domain.Requester{ID: other.ID, Role: domain.RoleUser}, target.ID, ports.UpdateAccountInput{Name: &name})
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAccountService_Update_AdminAnyAccount(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	target := mustCreate(t, svc, ports.CreateAccountInput{Name: "Target", Email: "target@x.com", Password: "securepw1"})

	name := "Renamed"
	updated, err := svc.Update(ctx, domain.Requester{ID: "acct-admin", Role: domain.RoleAdmin}, target.ID, ports.UpdateAccountInput{Name: &name})
	if err != nil {
		t.Fatalf("admin update failed: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Fatalf("name not updated: %q", updated.Name)
	}
}

func TestAccountService_Update_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	name := "Name"
	// Not-found wins over forbidden: the requester is not the owner.
	_, err := svc.Update(context.Background(), domain.Requester{ID: "acct-1", Role: domain.RoleUser}, "missing", ports.UpdateAccountInput{Name: &name})
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestAccountService_Update_BlankFieldRejected(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created := mustCreate(t, svc, ports.CreateAccountInput{Name: "John", Email: "john@x.com", Password: "securepw1"})
	requester := domain.Requester{ID: created.ID, Role: created.Role}

	blank := "   "
	if _, err := svc.Update(ctx, requester, created.ID, ports.UpdateAccountInput{Name: &blank}); !isValidationError(err, "name") {
		t.Fatalf("expected name validation error, got %v", err)
	}
	if _, err := svc.Update(ctx, requester, created.ID, ports.UpdateAccountInput{Email: &blank}); !isValidationError(err, "email") {
		t.Fatalf("expected email validation error, got %v", err)
	}
	short := "short"
	if _, err := svc.Update(ctx, requester, created.ID, ports.UpdateAccountInput{Password: &short}); !isValidationError(err, "password") {
		t.Fatalf("expected password validation error, got %v", err)
	}
}

func TestAccountService_Update_NoFields(t *testing.T) {
	svc, _, _ := newTestService(t)

	created := mustCreate(t, svc, ports.CreateAccountInput{Name: "John", Email: "john@x.com", Password: "securepw1"})

	updated, err := svc.Update(context.Background(), domain.Requester{ID: created.ID, Role: created.Role}, created.ID, ports.UpdateAccountInput{})
	if err != nil {
		t.Fatalf("empty update failed: %v", err)
	}
	if updated.UpdatedAt != created.UpdatedAt {
		t.Fatalf("empty update must not touch the record")
	}
}

func TestAccountService_Delete_Owner(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created := mustCreate(t, svc, ports.CreateAccountInput{Name: "John", Email: "john@x.com", Password: "securepw1"})

	if err := svc.Delete(ctx, domain.Requester{ID: created.ID, Role: created.Role}, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("account must be gone after delete, got %v", err)
	}
}

func TestAccountService_Delete_Forbidden(t *testing.T) {
	svc, _, _ := newTestService(t)

	target := mustCreate(t, svc, ports.CreateAccountInput{Name: "Target", Email: "target@x.com", Password: "securepw1"})

	err := svc.Delete(context.Background(), domain.Requester{ID: "acct-stranger", Role: domain.RoleUser}, target.ID)
	if !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestAccountService_Delete_NotFound(t *testing.T) {
	svc, _, _ := newTestService(t)

	err := svc.Delete(context.Background(), domain.Requester{ID: "acct-1", Role: domain.RoleAdmin}, "missing")
	if !errors.Is(err, domain.ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

package domain

import (
	"errors"
	"strings"
	"time"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrInvalidToken = errors.New("invalid token")
var ErrAccountNotFound = errors.New("account not found")
var ErrDuplicateEmail = errors.New("email already registered")
var ErrForbidden = errors.New("access forbidden")
var ErrStorageUnavailable = errors.New("storage unavailable")

// Account models one registered user. The password hash is never
// serialized to JSON.
type Account struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// AccountChanges carries a partial update. A nil field is left unchanged;
// a non-nil field overwrites the stored value.
type AccountChanges struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *string
}

// IsEmpty reports whether no field is set.
func (c AccountChanges) IsEmpty() bool {
	return c.Name == nil && c.Email == nil && c.PasswordHash == nil && c.Role == nil
}

// ValidRole reports whether role is one of the recognized values.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// NormalizeEmail trims surrounding whitespace and lower-cases the address.
// Every email comparison and every stored email goes through this.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeRole trims and lower-cases a role value. It does not validate.
func NormalizeRole(role string) string {
	return strings.ToLower(strings.TrimSpace(role))
}

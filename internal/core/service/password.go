package service

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a one-way salted digest from a plaintext password.
// bcrypt embeds a random salt, so hashing the same input twice yields
// different digests.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether plain matches digest. A malformed digest
// verifies as false rather than returning an error; the comparison inside
// bcrypt is constant-time.
func VerifyPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

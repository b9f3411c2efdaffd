package password

import (
	"hospital-management-api/pkg/apperror"

	"golang.org/x/crypto/bcrypt"
)

// MaxBytes is the longest password bcrypt accepts. The limit is in bytes, so
// multi-byte characters count more than once.
const MaxBytes = 72

// Hasher hashes and verifies passwords. Cost is configurable so tests can
// use bcrypt.MinCost.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash generates a bcrypt hash of the password.
func (h *Hasher) Hash(password string) (string, error) {
	if len(password) > MaxBytes {
		return "", apperror.Validation("password", "must be at most 72 bytes")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Check reports whether password matches the bcrypt hash.
func (h *Hasher) Check(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

package auth

import (
	"errors"

	"github.com/samber/oops"
	"golang.org/x/crypto/bcrypt"
)

// DefaultHashCost is the bcrypt work factor used when none is configured.
const DefaultHashCost = 10

// MaxPasswordBytes is the longest password bcrypt can represent.
const MaxPasswordBytes = 72

// PasswordHasher produces and checks salted one-way password digests.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// BcryptHasher implements PasswordHasher with bcrypt. The salt is random per
// call and embedded in the returned hash.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost, clamped to the range
// bcrypt accepts.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Cost() int {
	return h.cost
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", oops.Code("AUTH_PASSWORD_TOO_LONG").Wrap(err)
		}
		return "", oops.Code("AUTH_HASH_FAILED").Wrap(err)
	}
	return string(b), nil
}

// Verify returns false on mismatch and on any malformed hash.
func (h *BcryptHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

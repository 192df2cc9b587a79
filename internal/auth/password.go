package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/spec-kit/store-rating-service/pkg/util"
)

// ErrPasswordMismatch signals an ordinary failed verification. It is the
// expected outcome for a wrong password and never an internal fault.
var ErrPasswordMismatch = errors.New("password mismatch")

// Hasher wraps bcrypt with an injected cost factor. The digest is
// self-describing: algorithm version, cost, and salt are embedded, so
// verification needs no stored parameters beyond the digest itself.
type Hasher struct {
	cost int
}

// NewHasher builds a Hasher, clamping the cost into bcrypt's valid range.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash derives a salted digest from the plaintext.
func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify compares a plaintext candidate against a stored digest. A wrong
// password yields ErrPasswordMismatch. A digest bcrypt cannot parse yields
// a CorruptCredential error: internally generated digests always parse, so
// this indicates data corruption rather than a mistaken caller.
func (h *Hasher) Verify(password, digest string) error {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return apperrors.NewCorruptCredential(err)
	}
}

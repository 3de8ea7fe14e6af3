// Package hasher provides password hashing for dashboard credentials.
package hasher

import (
	"strings"

	"github.com/x402dash/x402dash/ports"
	"golang.org/x/crypto/bcrypt"
)

// Bcrypt uses bcrypt for hashing.
type Bcrypt struct {
	cost int
}

// NewBcrypt creates a bcrypt hasher with the given cost.
// Out-of-range costs fall back to bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{cost: cost}
}

// Hash generates a bcrypt hash from plaintext.
func (h *Bcrypt) Hash(plaintext string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
}

// Compare checks if plaintext matches hash.
func (h *Bcrypt) Compare(hash []byte, plaintext string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(plaintext)) == nil
}

var _ ports.Hasher = (*Bcrypt)(nil)

// IsHash reports whether s looks like a bcrypt hash ($2a$, $2b$, $2y$).
func IsHash(s string) bool {
	if !strings.HasPrefix(s, "$2") {
		return false
	}
	_, err := bcrypt.Cost([]byte(s))
	return err == nil
}

// Credential checks a configured password that may be stored either as a
// bcrypt hash or in plain text.
type Credential struct {
	hasher ports.Hasher
	hash   []byte
}

// NewCredential prepares configured for comparison.
// Plain-text values are hashed once up front.
func NewCredential(h ports.Hasher, configured string) (*Credential, error) {
	if IsHash(configured) {
		return &Credential{hasher: h, hash: []byte(configured)}, nil
	}
	hash, err := h.Hash(configured)
	if err != nil {
		return nil, err
	}
	return &Credential{hasher: h, hash: hash}, nil
}

// Matches reports whether candidate is the configured password.
func (c *Credential) Matches(candidate string) bool {
	return c.hasher.Compare(c.hash, candidate)
}

// Fake provides a no-op hasher for testing (NOT FOR PRODUCTION).
type Fake struct{}

// Hash returns the plaintext as bytes.
func (Fake) Hash(plaintext string) ([]byte, error) {
	return []byte(plaintext), nil
}

// Compare does simple equality check.
func (Fake) Compare(hash []byte, plaintext string) bool {
	return string(hash) == plaintext
}

var _ ports.Hasher = Fake{}

package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost balances brute-force resistance against login latency.
const DefaultBcryptCost = 12

// Hasher performs one-way password hashing and verification using bcrypt.
// Each Hash call salts independently, so two hashes of the same password
// differ while both still verify.
type Hasher struct {
	cost int
}

// NewHasher builds a Hasher with the given cost. Out-of-range costs fall
// back to DefaultBcryptCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the salted bcrypt hash of plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. A malformed or corrupted
// hash fails closed: the answer is false, never a distinct error the caller
// could leak. bcrypt's comparison is constant-time in the digest.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

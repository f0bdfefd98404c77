package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/octovision/auth-service/internal/user"
)

// Identity is the resolved caller of an authenticated request. It is built
// from the live credential record, not from token claims, so a role change
// or account deletion takes effect on the next request.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Resolver turns a presented token into a caller identity anchored to the
// current user store contents.
type Resolver struct {
	codec *Codec
	repo  user.Repository
}

// NewResolver builds an identity resolver.
func NewResolver(codec *Codec, repo user.Repository) *Resolver {
	return &Resolver{codec: codec, repo: repo}
}

// Resolve validates the token, parses its subject as a user identifier and
// re-fetches the credential record. Every failure collapses to
// ErrUnauthenticated so callers cannot distinguish a bad signature from a
// deleted account. One store read per call; results are never cached.
func (r *Resolver) Resolve(ctx context.Context, token string) (Identity, error) {
	claims, err := r.codec.Validate(token)
	if err != nil {
		return Identity{}, ErrUnauthenticated
	}

	sub := claims.Subject
	if sub == "" {
		return Identity{}, ErrUnauthenticated
	}
	if _, err := uuid.Parse(sub); err != nil {
		return Identity{}, ErrUnauthenticated
	}

	u, err := r.repo.FindByID(ctx, sub)
	if err != nil {
		return Identity{}, ErrUnauthenticated
	}

	return Identity{ID: u.ID, Email: u.Email, Role: user.NormalizeRole(u.Role)}, nil
}

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/octovision/auth-service/internal/user"
)

// Service orchestrates registration and login over the credential store,
// the password hasher and the token codec.
type Service struct {
	repo   user.Repository
	hasher *Hasher
	codec  *Codec
}

// NewService creates the credential service.
func NewService(repo user.Repository, hasher *Hasher, codec *Codec) *Service {
	return &Service{repo: repo, hasher: hasher, codec: codec}
}

// Token is the result of a successful login.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

// Register hashes the password and persists a new credential. An empty role
// defaults to user; anything outside the enum is rejected. The existence
// check is advisory only: the store's uniqueness constraint is what closes
// the check-then-insert race, and both paths surface ErrDuplicateEmail.
func (s *Service) Register(ctx context.Context, email, password, role string) (user.Public, error) {
	role = user.NormalizeRole(role)
	if !user.ValidRole(role) {
		return user.Public{}, ErrInvalidRole
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return user.Public{}, user.ErrDuplicateEmail
	} else if !errors.Is(err, user.ErrNotFound) {
		return user.Public{}, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return user.Public{}, err
	}

	u := user.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, u); err != nil {
		return user.Public{}, err
	}

	return u.Public(), nil
}

// Login verifies the password and issues an access token. An unknown email
// and a wrong password return the same ErrInvalidCredentials; the hasher
// runs against a throwaway hash in the unknown-email case so the two paths
// cost roughly the same.
func (s *Service) Login(ctx context.Context, email, password string) (Token, error) {
	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			s.hasher.Verify(password, dummyHash)
			return Token{}, ErrInvalidCredentials
		}
		return Token{}, err
	}

	if !s.hasher.Verify(password, u.PasswordHash) {
		return Token{}, ErrInvalidCredentials
	}

	access, err := s.codec.Issue(u.ID, u.Email, user.NormalizeRole(u.Role))
	if err != nil {
		return Token{}, err
	}

	return Token{
		AccessToken: access,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.codec.TTL().Seconds()),
	}, nil
}

// dummyHash is a fixed cost-12 bcrypt hash compared against when the email
// is unknown, so both login failure paths pay the hashing cost.
const dummyHash = "$2a$12$R9h/cIPz0gi.URNNX3kh2OPST9/PgBkqquzi.Ss7KIUgO2t0jWMUW"

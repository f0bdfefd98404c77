package auth

import "errors"

// Failure kinds returned by the auth core. Handlers map these to HTTP
// statuses; the messages are what callers see, so none of them carries
// internal detail.
var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. The two cases are deliberately indistinguishable so login
	// responses cannot be used to enumerate registered accounts.
	ErrInvalidCredentials = errors.New("incorrect email or password")

	// ErrUnauthenticated covers every way a presented token can fail to
	// resolve: missing, malformed, expired, bad signature, or a subject
	// that no longer exists.
	ErrUnauthenticated = errors.New("invalid or expired token")

	// ErrForbidden means the caller authenticated but lacks the role.
	ErrForbidden = errors.New("insufficient privileges")

	// ErrInvalidRole rejects registration with an unknown role value.
	ErrInvalidRole = errors.New("role must be user or admin")
)

// Token validation failure kinds, surfaced by Codec.Validate.
var (
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token is expired")
	ErrTokenSignature = errors.New("token signature is invalid")
)

package auth

// RequireRole admits an already-resolved identity to a role-restricted
// operation. It is a pure predicate: authentication must have succeeded
// first, and the result must not be cached across requests.
func RequireRole(identity Identity, role string) (Identity, error) {
	if identity.Role != role {
		return Identity{}, ErrForbidden
	}
	return identity, nil
}

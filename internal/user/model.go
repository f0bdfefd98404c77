package user

import "time"

// Roles a credential can carry. Anything else is rejected at registration.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is a persisted credential record. PasswordHash never leaves the
// service layer; handlers expose only the Public view.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// Public is the externally visible identity view of a credential.
type Public struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public strips the password hash and applies the role default. A record
// persisted without a role reads back as a regular user; the default is
// applied here, at the read boundary, not at each use site.
func (u User) Public() Public {
	return Public{ID: u.ID, Email: u.Email, Role: NormalizeRole(u.Role)}
}

// NormalizeRole maps an absent role to RoleUser.
func NormalizeRole(role string) string {
	if role == "" {
		return RoleUser
	}
	return role
}

// ValidRole reports whether role is one of the known enum values.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

package domain

import "time"

// Role enumerates authorization roles.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User is a seeded account that can authenticate against the API.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	IsActive     bool
	CreatedAt    time.Time
}

// Identity is the server-resolved view of an authenticated user. The
// admin flag derives from the role column, never from the username.
type Identity struct {
	ID        int64
	Username  string
	Email     string
	Role      Role
	IsAdmin   bool
	IsActive  bool
	CreatedAt time.Time
}

// IdentityOf builds the identity view for a user record.
func IdentityOf(u *User) *Identity {
	return &Identity{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		Role:      u.Role,
		IsAdmin:   u.Role == RoleAdmin,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}
}

package user

import (
	"strconv"
	"strings"
)

// Type is the account kind stored in the user file.
type Type string

const (
	TypeAdmin Type = "admin"
	TypeUser  Type = "user"
)

// Role is the access level carried in access tokens.
type Role string

const (
	RoleAdmin    Role = "admin"    // Payroll administrator - full access
	RoleEmployee Role = "employee" // Worker - own attendance and payslips
)

// User is one login. Employee usernames are their numeric worker ID.
type User struct {
	Username string
	Password string
	Type     Type
}

func ParseType(s string) (Type, error) {
	switch Type(strings.ToLower(strings.TrimSpace(s))) {
	case TypeAdmin:
		return TypeAdmin, nil
	case TypeUser, "employee":
		return TypeUser, nil
	}
	return "", ErrInvalidUserType
}

// IsAdmin checks if user is an administrator
func (u User) IsAdmin() bool {
	return u.Type == TypeAdmin
}

func (u User) Role() Role {
	if u.IsAdmin() {
		return RoleAdmin
	}
	return RoleEmployee
}

// WorkerID parses the username as a worker ID.
func (u User) WorkerID() (int, bool) {
	id, err := strconv.Atoi(u.Username)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// HasHashedPassword reports whether the stored password is a bcrypt hash.
func (u User) HasHashedPassword() bool {
	return strings.HasPrefix(u.Password, "$2a$") ||
		strings.HasPrefix(u.Password, "$2b$") ||
		strings.HasPrefix(u.Password, "$2y$")
}

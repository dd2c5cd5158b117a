package models

type Role string

const (
	RoleManager Role = "manager"
	RoleMember  Role = "member"
)

type User struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"password_credential"`
	Email        string `json:"email"`
	Role         Role   `json:"role"`
	Active       bool   `json:"active"`
}

// IsManager reports whether the user holds the manager role.
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

package account

import "time"

const (
	RoleFarmer = "farmer"
	RoleClient = "client"
)

// ValidRole reports whether role is one of the two roles an account can hold.
func ValidRole(role string) bool {
	return role == RoleFarmer || role == RoleClient
}

type Account struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

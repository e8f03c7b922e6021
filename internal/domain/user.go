package domain

// Role partitions directory accounts.
type Role string

const (
	RoleUser  Role = "user"
	RoleAgent Role = "agent"
	RoleAdmin Role = "admin"
)

// User is a directory account. Accounts are seeded at startup and never mutated.
type User struct {
	ID         string `json:"id"`
	Username   string `json:"username"`
	FullName   string `json:"fullName"`
	Role       Role   `json:"role"`
	Department string `json:"department"`
	Email      string `json:"email"`
}

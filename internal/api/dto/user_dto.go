package dto

// LoginRequest payload for username login.
type LoginRequest struct {
	Username string `json:"username"`
}

package identity

import "time"

// LoginRequest is the admin login form
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	AccessToken string    `json:"accessToken"`
	TokenType   string    `json:"tokenType"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Email       string    `json:"email"`
}

// Principal is the authenticated admin behind a request
type Principal struct {
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

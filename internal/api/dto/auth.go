package dto

import "time"

// AuthorizeRequest represents the authorization request
type AuthorizeRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthorizeResponse represents the authorization response
type AuthorizeResponse struct {
	Code string `json:"code"`
}

// TokenRequest represents the token request
type TokenRequest struct {
	GrantType    string `json:"grant_type" binding:"required"` // "authorization_code", "password" or "client_credentials"
	Code         string `json:"code"`                          // For authorization_code
	Email        string `json:"email"`                         // For password
	Password     string `json:"password"`                      // For password
	ClientID     string `json:"client_id"`                     // For client_credentials
	ClientSecret string `json:"client_secret"`                 // For client_credentials
}

// TokenResponse represents the token response
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"` // In seconds
}

// ChangePasswordRequest is sent by a signed-in user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required"`
}

// CreateUserRequest represents the admin user creation request
type CreateUserRequest struct {
	Email    string  `json:"email" binding:"required"`
	Password string  `json:"password" binding:"required"`
	FullName string  `json:"full_name"`
	Role     *string `json:"role"`
}

// UpdateUserRequest changes the role and/or resets the password
type UpdateUserRequest struct {
	Role     *string `json:"role"`
	Password *string `json:"password"`
}

// UserResponse represents a profile
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"full_name,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserListResponse = ListResponse[UserResponse]

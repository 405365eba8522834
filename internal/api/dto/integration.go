package dto

import "time"

// CreateIntegrationRequest represents the API client creation request
type CreateIntegrationRequest struct {
	Label   string   `json:"label" binding:"required"`
	OwnerID string   `json:"user_id"` // Defaults to the caller
	Scopes  []string `json:"scopes"`  // Defaults to all
}

// UpdateIntegrationRequest represents the API client update request
type UpdateIntegrationRequest struct {
	Label  string   `json:"label" binding:"required"`
	Scopes []string `json:"scopes"`
}

// IntegrationResponse represents an API client
type IntegrationResponse struct {
	ID        string    `json:"id"`
	Label     string    `json:"label"`
	OwnerID   string    `json:"user_id"`
	Scopes    []string  `json:"scopes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IntegrationCreateResponse includes the secret (only shown once)
type IntegrationCreateResponse struct {
	IntegrationResponse
	Secret string `json:"secret"`
}

type IntegrationListResponse = ListResponse[IntegrationResponse]

// Package domain holds DTOs for access http and service contracts
package domain

// ValidateInput is the body for an explicit credential check
type ValidateInput struct {
	Token string `json:"token" validate:"required,min=1,max=128" example:"pk_c3f1..."`
}

// GrantInfo summarizes a valid grant for the caller
type GrantInfo struct {
	Label        string   `json:"label"`
	IssuedAt     string   `json:"issued_at"`
	ExpiresAt    string   `json:"expires_at,omitempty"`
	Unrestricted bool     `json:"unrestricted"`
	Dates        []string `json:"dates,omitempty"`
}

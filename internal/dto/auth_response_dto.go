package dto

import "github.com/SscSPs/invoice_workflow_app/internal/core/domain"

// LoginRequest selects a demo user by email.
type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token string          `json:"token"`
	User  domain.Identity `json:"user"`
}

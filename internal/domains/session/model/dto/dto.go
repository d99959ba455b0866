package dto

import "tonsor/internal/domains/session/model"

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// AuthResponse is the shape both login and register return: a bearer token
// plus the identity it belongs to.
type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	User        model.Identity `json:"user"`
}


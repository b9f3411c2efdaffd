package dto

import "time"

// Request DTOs

type RegisterRequest struct {
	Username  string `json:"username" validate:"required,max=80"`
	Password  string `json:"password" validate:"required,min=6,max=72"`
	Role      string `json:"role" validate:"omitempty"`
	DoctorID  *uint  `json:"doctor_id" validate:"omitempty,gt=0"`
	PatientID *uint  `json:"patient_id" validate:"omitempty,gt=0"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int64         `json:"expires_in"`
	User         *UserResponse `json:"user,omitempty"`
}

type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	DoctorID  *uint     `json:"doctor_id,omitempty"`
	PatientID *uint     `json:"patient_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

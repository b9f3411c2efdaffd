package dto

import "time"

// Request DTOs

type CreateDoctorRequest struct {
	Name           string  `json:"name" validate:"required"`
	Specialization string  `json:"specialization" validate:"required"`
	Contact        *string `json:"contact"`
	DepartmentID   *uint   `json:"department_id" validate:"omitempty,gt=0"`
}

type UpdateDoctorRequest struct {
	Name           *string `json:"name"`
	Specialization *string `json:"specialization"`
	Contact        *string `json:"contact"`
	DepartmentID   *uint   `json:"department_id" validate:"omitempty,gt=0"`
}

// Response DTOs

type DoctorResponse struct {
	ID             uint               `json:"id"`
	Name           string             `json:"name"`
	Specialization string             `json:"specialization"`
	Contact        *string            `json:"contact"`
	DepartmentID   *uint              `json:"department_id"`
	Department     *DepartmentSummary `json:"department,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

package dto

import "time"

// Request DTOs

// CreatePatientRequest carries the base fields plus the variant fields for
// inpatients (admission_date, ward_number) and outpatients (last_visit_date).
// Dates use YYYY-MM-DD.
type CreatePatientRequest struct {
	Type          string  `json:"type"`
	Name          string  `json:"name" validate:"required"`
	Age           *int    `json:"age"`
	DateOfBirth   *string `json:"date_of_birth"`
	Gender        string  `json:"gender" validate:"required"`
	ContactNumber string  `json:"contact_number" validate:"required"`
	AdmissionDate *string `json:"admission_date"`
	WardNumber    *int    `json:"ward_number"`
	LastVisitDate *string `json:"last_visit_date"`
}

type UpdatePatientRequest struct {
	Type          *string `json:"type"`
	Name          *string `json:"name"`
	Age           *int    `json:"age"`
	DateOfBirth   *string `json:"date_of_birth"`
	Gender        *string `json:"gender"`
	ContactNumber *string `json:"contact_number"`
	AdmissionDate *string `json:"admission_date"`
	WardNumber    *int    `json:"ward_number"`
	LastVisitDate *string `json:"last_visit_date"`
}

// Response DTOs

type PatientResponse struct {
	ID            uint      `json:"id"`
	Type          string    `json:"type"`
	Name          string    `json:"name"`
	Age           *int      `json:"age"`
	DateOfBirth   *string   `json:"date_of_birth"`
	Gender        string    `json:"gender"`
	ContactNumber string    `json:"contact_number"`
	AdmissionDate *string   `json:"admission_date,omitempty"`
	WardNumber    *int      `json:"ward_number,omitempty"`
	LastVisitDate *string   `json:"last_visit_date,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

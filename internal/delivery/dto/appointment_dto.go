package dto

import "time"

// Request DTOs

// Date times are ISO-8601; any offset is dropped and the wall clock is read as UTC.
type CreateAppointmentRequest struct {
	PatientID       uint    `json:"patient_id" validate:"required,gt=0"`
	DoctorID        uint    `json:"doctor_id" validate:"required,gt=0"`
	AppointmentDate string  `json:"appointment_date" validate:"required"`
	Status          *string `json:"status"`
}

type UpdateAppointmentRequest struct {
	PatientID       *uint   `json:"patient_id" validate:"omitempty,gt=0"`
	DoctorID        *uint   `json:"doctor_id" validate:"omitempty,gt=0"`
	AppointmentDate *string `json:"appointment_date"`
	Status          *string `json:"status"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uint      `json:"id"`
	PatientID       uint      `json:"patient_id"`
	PatientName     string    `json:"patient_name,omitempty"`
	DoctorID        uint      `json:"doctor_id"`
	DoctorName      string    `json:"doctor_name,omitempty"`
	AppointmentDate string    `json:"appointment_date"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

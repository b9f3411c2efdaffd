package dto

import "time"

// Request DTOs

type CreateMedicalRecordRequest struct {
	PatientID uint    `json:"patient_id" validate:"required,gt=0"`
	DoctorID  uint    `json:"doctor_id" validate:"required,gt=0"`
	VisitDate *string `json:"visit_date"`
	Diagnosis string  `json:"diagnosis" validate:"required"`
	Treatment string  `json:"treatment" validate:"required"`
}

type UpdateMedicalRecordRequest struct {
	PatientID *uint   `json:"patient_id" validate:"omitempty,gt=0"`
	DoctorID  *uint   `json:"doctor_id" validate:"omitempty,gt=0"`
	VisitDate *string `json:"visit_date"`
	Diagnosis *string `json:"diagnosis"`
	Treatment *string `json:"treatment"`
}

// Response DTOs

type MedicalRecordResponse struct {
	ID          uint      `json:"id"`
	PatientID   uint      `json:"patient_id"`
	PatientName string    `json:"patient_name,omitempty"`
	DoctorID    uint      `json:"doctor_id"`
	DoctorName  string    `json:"doctor_name,omitempty"`
	VisitDate   string    `json:"visit_date"`
	Diagnosis   string    `json:"diagnosis"`
	Treatment   string    `json:"treatment"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

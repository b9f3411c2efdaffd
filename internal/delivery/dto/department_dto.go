package dto

import "time"

// Request DTOs

type CreateDepartmentRequest struct {
	Name         string `json:"name" validate:"required"`
	Specialty    string `json:"specialty" validate:"required"`
	HeadDoctorID *uint  `json:"head_doctor_id" validate:"required,gt=0"`
}

type UpdateDepartmentRequest struct {
	Name         *string `json:"name"`
	Specialty    *string `json:"specialty"`
	HeadDoctorID *uint   `json:"head_doctor_id" validate:"omitempty,gt=0"`
}

// Response DTOs

type DepartmentResponse struct {
	ID               uint      `json:"id"`
	Name             string    `json:"name"`
	Specialty        string    `json:"specialty"`
	HeadDoctorID     *uint     `json:"head_doctor_id"`
	HeadDoctorName   *string   `json:"head_doctor_name"`
	NumDoctorsInDept int64     `json:"num_doctors_in_dept"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// DepartmentSummary is the department as embedded in other resources.
type DepartmentSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

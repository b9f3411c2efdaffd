package entity

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uint             `gorm:"index" json:"user_id,omitempty"`
	Action    string            `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  datatypes.JSONMap `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time         `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Audit actions
const (
	AuditActionUserRegister        = "user.register"
	AuditActionUserCreate          = "user.create"
	AuditActionDepartmentCreate    = "department.create"
	AuditActionDepartmentUpdate    = "department.update"
	AuditActionDepartmentDelete    = "department.delete"
	AuditActionDoctorCreate        = "doctor.create"
	AuditActionDoctorUpdate        = "doctor.update"
	AuditActionDoctorDelete        = "doctor.delete"
	AuditActionPatientCreate       = "patient.create"
	AuditActionPatientUpdate       = "patient.update"
	AuditActionPatientDelete       = "patient.delete"
	AuditActionAppointmentCreate   = "appointment.create"
	AuditActionAppointmentUpdate   = "appointment.update"
	AuditActionAppointmentDelete   = "appointment.delete"
	AuditActionMedicalRecordCreate = "medical_record.create"
	AuditActionMedicalRecordUpdate = "medical_record.update"
	AuditActionMedicalRecordDelete = "medical_record.delete"
)

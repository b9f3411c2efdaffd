package entity

import "time"

// MedicalRecord is a diagnosis and treatment written by a doctor for a patient.
type MedicalRecord struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID uint      `gorm:"not null;index" json:"patient_id"`
	DoctorID  uint      `gorm:"not null;index" json:"doctor_id"`
	VisitDate time.Time `gorm:"type:timestamp;not null" json:"visit_date"`
	Diagnosis string    `gorm:"type:text;not null" json:"diagnosis"`
	Treatment string    `gorm:"type:text;not null" json:"treatment"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient *Patient `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"patient,omitempty"`
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"doctor,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}

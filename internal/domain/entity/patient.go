package entity

import (
	"time"

	"hospital-management-api/pkg/apperror"
)

// PatientType discriminates the patient variants stored in the patients table.
type PatientType string

const (
	PatientTypePatient    PatientType = "patient"
	PatientTypeInpatient  PatientType = "inpatient"
	PatientTypeOutpatient PatientType = "outpatient"
)

var PatientTypes = []PatientType{PatientTypePatient, PatientTypeInpatient, PatientTypeOutpatient}

func (t PatientType) Valid() bool {
	for _, pt := range PatientTypes {
		if t == pt {
			return true
		}
	}
	return false
}

// InpatientInfo is only populated for inpatients.
type InpatientInfo struct {
	AdmissionDate *time.Time `gorm:"type:date" json:"admission_date,omitempty"`
	WardNumber    *int       `json:"ward_number,omitempty"`
}

func (i InpatientInfo) empty() bool {
	return i.AdmissionDate == nil && i.WardNumber == nil
}

// OutpatientInfo is only populated for outpatients.
type OutpatientInfo struct {
	LastVisitDate *time.Time `gorm:"type:date" json:"last_visit_date,omitempty"`
}

func (o OutpatientInfo) empty() bool {
	return o.LastVisitDate == nil
}

// Patient is a tagged variant: Type selects which of Inpatient/Outpatient is
// meaningful, and the other payload must stay empty.
type Patient struct {
	ID            uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Type          PatientType    `gorm:"type:varchar(20);not null;default:patient;index" json:"type"`
	Name          string         `gorm:"type:varchar(100);not null" json:"name"`
	Age           *int           `json:"age,omitempty"`
	DateOfBirth   *time.Time     `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender        string         `gorm:"type:varchar(10);not null" json:"gender"`
	ContactNumber string         `gorm:"type:varchar(20);uniqueIndex;not null" json:"contact_number"`
	Inpatient     InpatientInfo  `gorm:"embedded;embeddedPrefix:inpatient_" json:"inpatient"`
	Outpatient    OutpatientInfo `gorm:"embedded;embeddedPrefix:outpatient_" json:"outpatient"`
	CreatedAt     time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patient) TableName() string {
	return "patients"
}

// Gender values, stored lower-case.
const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

var Genders = []string{GenderMale, GenderFemale, GenderOther}

// NewPatient stamps the discriminator on base, defaulting to a plain patient,
// and checks the variant invariants.
func NewPatient(base Patient, t PatientType) (*Patient, error) {
	if t == "" {
		t = PatientTypePatient
	}
	base.Type = t
	if err := base.CheckInvariants(); err != nil {
		return nil, err
	}
	return &base, nil
}

// CheckInvariants verifies the discriminator, the variant payload and the
// age/date_of_birth requirement.
func (p *Patient) CheckInvariants() error {
	if !p.Type.Valid() {
		return apperror.Validation("type", "must be one of patient, inpatient, outpatient")
	}
	if p.Age == nil && p.DateOfBirth == nil {
		return apperror.Validation("age", "age or date_of_birth is required")
	}

	switch p.Type {
	case PatientTypeInpatient:
		if !p.Outpatient.empty() {
			return apperror.Validation("last_visit_date", "not allowed for inpatients")
		}
		if p.Inpatient.AdmissionDate == nil {
			return apperror.Validation("admission_date", "is required for inpatients")
		}
		if p.Inpatient.WardNumber == nil {
			return apperror.Validation("ward_number", "is required for inpatients")
		}
	case PatientTypeOutpatient:
		if !p.Inpatient.empty() {
			return apperror.Validation("admission_date", "not allowed for outpatients")
		}
		if p.Outpatient.LastVisitDate == nil {
			return apperror.Validation("last_visit_date", "is required for outpatients")
		}
	default:
		if !p.Inpatient.empty() || !p.Outpatient.empty() {
			return apperror.Validation("type", "inpatient or outpatient fields require a matching type")
		}
	}
	return nil
}

// ChangeType rejects any change of discriminator; switching variant means
// deleting and recreating the patient.
func (p *Patient) ChangeType(t PatientType) error {
	if t != p.Type {
		return apperror.Validation("type", "patient type cannot be changed")
	}
	return nil
}

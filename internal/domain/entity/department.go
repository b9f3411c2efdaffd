package entity

import "time"

// Department groups doctors under a head doctor. The doctors.department_id
// column is nullable so a department and its head can be created in one
// transaction: doctor first, then department, then the doctor is patched.
type Department struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Specialty    string    `gorm:"type:varchar(100);not null" json:"specialty"`
	HeadDoctorID *uint     `gorm:"uniqueIndex" json:"head_doctor_id"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Computed on read
	DoctorCount int64 `gorm:"->;-:migration" json:"num_doctors_in_dept"`

	// Relationships
	HeadDoctor *Doctor `gorm:"foreignKey:HeadDoctorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"head_doctor,omitempty"`
}

func (Department) TableName() string {
	return "departments"
}

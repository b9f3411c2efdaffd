package entity

import "time"

// User is an authenticated account. A user may be linked to at most one
// doctor and one patient profile; each profile links to at most one user.
type User struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"type:varchar(80);uniqueIndex;not null" json:"username"`
	Password  string    `gorm:"type:text;not null" json:"-"`
	Role      Role      `gorm:"type:varchar(32);not null;default:patient;index" json:"role"`
	DoctorID  *uint     `gorm:"uniqueIndex" json:"doctor_id,omitempty"`
	PatientID *uint     `gorm:"uniqueIndex" json:"patient_id,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  *Doctor  `gorm:"foreignKey:DoctorID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
	Patient *Patient `gorm:"foreignKey:PatientID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"-"`
}

func (User) TableName() string {
	return "users"
}

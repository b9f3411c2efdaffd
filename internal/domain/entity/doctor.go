package entity

import "time"

// Doctor is a physician, optionally assigned to a department.
type Doctor struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"type:varchar(100);not null" json:"name"`
	Specialization string    `gorm:"type:varchar(100);not null" json:"specialization"`
	Contact        *string   `gorm:"type:varchar(50);uniqueIndex" json:"contact,omitempty"`
	DepartmentID   *uint     `gorm:"index" json:"department_id,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Department *Department `gorm:"foreignKey:DepartmentID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL" json:"department,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

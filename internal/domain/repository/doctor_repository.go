package repository

import (
	"context"

	"hospital-management-api/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Doctor, error)
	FindAll(ctx context.Context, db *gorm.DB, filter entity.DoctorFilter) ([]entity.Doctor, error)
	Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error
	// Delete removes the doctor with its appointments and medical records,
	// and unlinks any user account and headed department.
	Delete(ctx context.Context, db *gorm.DB, id uint) (int64, error)
}

package repository

import (
	"context"

	"hospital-management-api/internal/domain/entity"

	"gorm.io/gorm"
)

type PatientRepository interface {
	Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Patient, error)
	FindAll(ctx context.Context, db *gorm.DB, filter entity.PatientFilter) ([]entity.Patient, error)
	Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error
	// Delete removes the patient with their appointments and medical records,
	// and unlinks any user account.
	Delete(ctx context.Context, db *gorm.DB, id uint) (int64, error)
}

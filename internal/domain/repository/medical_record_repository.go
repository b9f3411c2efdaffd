package repository

import (
	"context"

	"hospital-management-api/internal/domain/entity"

	"gorm.io/gorm"
)

type MedicalRecordRepository interface {
	Create(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.MedicalRecord, error)
	FindAll(ctx context.Context, db *gorm.DB, filter entity.MedicalRecordFilter) ([]entity.MedicalRecord, error)
	Update(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error
	Delete(ctx context.Context, db *gorm.DB, id uint) (int64, error)
}

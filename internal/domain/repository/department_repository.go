package repository

import (
	"context"

	"hospital-management-api/internal/domain/entity"

	"gorm.io/gorm"
)

type DepartmentRepository interface {
	Create(ctx context.Context, db *gorm.DB, department *entity.Department) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Department, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]entity.Department, error)
	Update(ctx context.Context, db *gorm.DB, department *entity.Department) error
	Delete(ctx context.Context, db *gorm.DB, id uint) (int64, error)
}

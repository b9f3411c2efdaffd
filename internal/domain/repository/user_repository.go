package repository

import (
	"context"

	"hospital-management-api/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, db *gorm.DB, user *entity.User) error
	FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.User, error)
	FindByUsername(ctx context.Context, db *gorm.DB, username string) (*entity.User, error)
}

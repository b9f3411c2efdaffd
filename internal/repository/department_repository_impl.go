package repository

import (
	"context"
	"errors"

	"hospital-management-api/internal/domain/entity"
	domainRepo "hospital-management-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const departmentWithDoctorCount = "departments.*, " +
	"(SELECT COUNT(*) FROM doctors WHERE doctors.department_id = departments.id) AS doctor_count"

type departmentRepository struct{}

func NewDepartmentRepository() domainRepo.DepartmentRepository {
	return &departmentRepository{}
}

func (r *departmentRepository) Create(ctx context.Context, db *gorm.DB, department *entity.Department) error {
	return translateError(db.WithContext(ctx).Omit(clause.Associations).Create(department).Error)
}

func (r *departmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Department, error) {
	var department entity.Department
	err := db.WithContext(ctx).
		Select(departmentWithDoctorCount).
		Preload("HeadDoctor").
		Where("departments.id = ?", id).
		First(&department).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Department, error) {
	var departments []entity.Department
	err := db.WithContext(ctx).
		Select(departmentWithDoctorCount).
		Preload("HeadDoctor").
		Order("departments.id").
		Find(&departments).Error
	if err != nil {
		return nil, err
	}
	return departments, nil
}

func (r *departmentRepository) Update(ctx context.Context, db *gorm.DB, department *entity.Department) error {
	return translateError(db.WithContext(ctx).Omit(clause.Associations).Save(department).Error)
}

func (r *departmentRepository) Delete(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	db = db.WithContext(ctx)

	if err := db.Model(&entity.Doctor{}).Where("department_id = ?", id).Update("department_id", nil).Error; err != nil {
		return 0, translateError(err)
	}

	result := db.Delete(&entity.Department{}, id)
	return result.RowsAffected, translateError(result.Error)
}

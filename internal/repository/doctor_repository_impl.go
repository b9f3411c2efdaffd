package repository

import (
	"context"
	"errors"

	"hospital-management-api/internal/domain/entity"
	domainRepo "hospital-management-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return translateError(db.WithContext(ctx).Omit(clause.Associations).Create(doctor).Error)
}

func (r *doctorRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.WithContext(ctx).Preload("Department").First(&doctor, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.DoctorFilter) ([]entity.Doctor, error) {
	query := db.WithContext(ctx).Preload("Department")
	if filter.DepartmentID != nil {
		query = query.Where("department_id = ?", *filter.DepartmentID)
	}

	var doctors []entity.Doctor
	if err := query.Order("id").Find(&doctors).Error; err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	return translateError(db.WithContext(ctx).Omit(clause.Associations).Save(doctor).Error)
}

func (r *doctorRepository) Delete(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	db = db.WithContext(ctx)

	if err := db.Where("doctor_id = ?", id).Delete(&entity.Appointment{}).Error; err != nil {
		return 0, translateError(err)
	}
	if err := db.Where("doctor_id = ?", id).Delete(&entity.MedicalRecord{}).Error; err != nil {
		return 0, translateError(err)
	}
	if err := db.Model(&entity.User{}).Where("doctor_id = ?", id).Update("doctor_id", nil).Error; err != nil {
		return 0, translateError(err)
	}
	if err := db.Model(&entity.Department{}).Where("head_doctor_id = ?", id).Update("head_doctor_id", nil).Error; err != nil {
		return 0, translateError(err)
	}

	result := db.Delete(&entity.Doctor{}, id)
	return result.RowsAffected, translateError(result.Error)
}

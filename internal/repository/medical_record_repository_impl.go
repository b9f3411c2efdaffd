package repository

import (
	"context"
	"errors"

	"hospital-management-api/internal/domain/entity"
	domainRepo "hospital-management-api/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type medicalRecordRepository struct{}

func NewMedicalRecordRepository() domainRepo.MedicalRecordRepository {
	return &medicalRecordRepository{}
}

func (r *medicalRecordRepository) Create(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error {
	return translateError(db.WithContext(ctx).Omit(clause.Associations).Create(record).Error)
}

func (r *medicalRecordRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.MedicalRecord, error) {
	var record entity.MedicalRecord
	err := db.WithContext(ctx).
		Preload("Patient").
		Preload("Doctor").
		First(&record, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

func (r *medicalRecordRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.MedicalRecordFilter) ([]entity.MedicalRecord, error) {
	query := db.WithContext(ctx).Preload("Patient").Preload("Doctor")
	if filter.PatientID != nil {
		query = query.Where("patient_id = ?", *filter.PatientID)
	}
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}

	var records []entity.MedicalRecord
	if err := query.Order("visit_date DESC, id").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *medicalRecordRepository) Update(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error {
	return translateError(db.WithContext(ctx).Omit(clause.Associations).Save(record).Error)
}

func (r *medicalRecordRepository) Delete(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	result := db.WithContext(ctx).Delete(&entity.MedicalRecord{}, id)
	return result.RowsAffected, translateError(result.Error)
}

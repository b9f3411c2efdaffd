package repository

import (
	"context"
	"errors"

	"hospital-management-api/internal/domain/entity"
	domainRepo "hospital-management-api/internal/domain/repository"

	"gorm.io/gorm"
)

type patientRepository struct{}

func NewPatientRepository() domainRepo.PatientRepository {
	return &patientRepository{}
}

func (r *patientRepository) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return translateError(db.WithContext(ctx).Create(patient).Error)
}

func (r *patientRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Patient, error) {
	var patient entity.Patient
	err := db.WithContext(ctx).First(&patient, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.PatientFilter) ([]entity.Patient, error) {
	query := db.WithContext(ctx)
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var patients []entity.Patient
	if err := query.Order("id").Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	return translateError(db.WithContext(ctx).Save(patient).Error)
}

func (r *patientRepository) Delete(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	db = db.WithContext(ctx)

	if err := db.Where("patient_id = ?", id).Delete(&entity.Appointment{}).Error; err != nil {
		return 0, translateError(err)
	}
	if err := db.Where("patient_id = ?", id).Delete(&entity.MedicalRecord{}).Error; err != nil {
		return 0, translateError(err)
	}
	if err := db.Model(&entity.User{}).Where("patient_id = ?", id).Update("patient_id", nil).Error; err != nil {
		return 0, translateError(err)
	}

	result := db.Delete(&entity.Patient{}, id)
	return result.RowsAffected, translateError(result.Error)
}

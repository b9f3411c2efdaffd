package mocks

import (
	"context"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/repository"

	"gorm.io/gorm"
)

type medicalRecordRepository struct{ s *Store }

func (s *Store) MedicalRecords() repository.MedicalRecordRepository {
	return &medicalRecordRepository{s: s}
}

func (r *medicalRecordRepository) check(m *entity.MedicalRecord) error {
	if _, ok := r.s.data.patients[m.PatientID]; !ok {
		return errFK
	}
	if _, ok := r.s.data.doctors[m.DoctorID]; !ok {
		return errFK
	}
	return nil
}

func (r *medicalRecordRepository) load(m entity.MedicalRecord) entity.MedicalRecord {
	m.Patient, m.Doctor = nil, nil
	if p, ok := r.s.data.patients[m.PatientID]; ok {
		m.Patient = &p
	}
	if d, ok := r.s.data.doctors[m.DoctorID]; ok {
		m.Doctor = &d
	}
	return m
}

func (r *medicalRecordRepository) Create(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	if err := r.check(record); err != nil {
		return err
	}

	record.ID = r.s.id()
	stamp(&record.CreatedAt, &record.UpdatedAt)
	stored := *record
	stored.Patient, stored.Doctor = nil, nil
	r.s.data.medicalRecords[record.ID] = stored
	return nil
}

func (r *medicalRecordRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.MedicalRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}

	m, ok := r.s.data.medicalRecords[id]
	if !ok {
		return nil, nil
	}
	m = r.load(m)
	return &m, nil
}

func (r *medicalRecordRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.MedicalRecordFilter) ([]entity.MedicalRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}

	out := []entity.MedicalRecord{}
	for _, id := range sortedKeys(r.s.data.medicalRecords) {
		m := r.s.data.medicalRecords[id]
		if filter.PatientID != nil && m.PatientID != *filter.PatientID {
			continue
		}
		if filter.DoctorID != nil && m.DoctorID != *filter.DoctorID {
			continue
		}
		out = append(out, r.load(m))
	}
	return out, nil
}

func (r *medicalRecordRepository) Update(ctx context.Context, db *gorm.DB, record *entity.MedicalRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	if _, ok := r.s.data.medicalRecords[record.ID]; !ok {
		return errNotStored
	}
	if err := r.check(record); err != nil {
		return err
	}

	stamp(&record.CreatedAt, &record.UpdatedAt)
	stored := *record
	stored.Patient, stored.Doctor = nil, nil
	r.s.data.medicalRecords[record.ID] = stored
	return nil
}

func (r *medicalRecordRepository) Delete(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return 0, err
	}
	if _, ok := r.s.data.medicalRecords[id]; !ok {
		return 0, nil
	}
	delete(r.s.data.medicalRecords, id)
	return 1, nil
}

package mocks

import (
	"context"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/pkg/apperror"

	"gorm.io/gorm"
)

type patientRepository struct{ s *Store }

func (s *Store) Patients() repository.PatientRepository {
	return &patientRepository{s: s}
}

func (r *patientRepository) check(p *entity.Patient) error {
	for id, other := range r.s.data.patients {
		if id != p.ID && other.ContactNumber == p.ContactNumber {
			return apperror.Conflict("contact number already exists")
		}
	}
	return nil
}

func (r *patientRepository) Create(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	if err := r.check(patient); err != nil {
		return err
	}

	patient.ID = r.s.id()
	stamp(&patient.CreatedAt, &patient.UpdatedAt)
	r.s.data.patients[patient.ID] = *patient
	return nil
}

func (r *patientRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}

	p, ok := r.s.data.patients[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *patientRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.PatientFilter) ([]entity.Patient, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}

	out := []entity.Patient{}
	for _, id := range sortedKeys(r.s.data.patients) {
		p := r.s.data.patients[id]
		if filter.Type != "" && p.Type != filter.Type {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *patientRepository) Update(ctx context.Context, db *gorm.DB, patient *entity.Patient) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	if _, ok := r.s.data.patients[patient.ID]; !ok {
		return errNotStored
	}
	if err := r.check(patient); err != nil {
		return err
	}

	stamp(&patient.CreatedAt, &patient.UpdatedAt)
	r.s.data.patients[patient.ID] = *patient
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return 0, err
	}
	if _, ok := r.s.data.patients[id]; !ok {
		return 0, nil
	}

	for aid, a := range r.s.data.appointments {
		if a.PatientID == id {
			delete(r.s.data.appointments, aid)
		}
	}
	for mid, m := range r.s.data.medicalRecords {
		if m.PatientID == id {
			delete(r.s.data.medicalRecords, mid)
		}
	}
	for uid, u := range r.s.data.users {
		if u.PatientID != nil && *u.PatientID == id {
			u.PatientID = nil
			r.s.data.users[uid] = u
		}
	}
	delete(r.s.data.patients, id)
	return 1, nil
}

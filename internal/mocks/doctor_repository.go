package mocks

import (
	"context"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/pkg/apperror"

	"gorm.io/gorm"
)

type doctorRepository struct{ s *Store }

func (s *Store) Doctors() repository.DoctorRepository {
	return &doctorRepository{s: s}
}

func (r *doctorRepository) check(d *entity.Doctor) error {
	if d.Contact != nil {
		for id, other := range r.s.data.doctors {
			if id != d.ID && other.Contact != nil && *other.Contact == *d.Contact {
				return apperror.Conflict("doctor contact already exists")
			}
		}
	}
	if d.DepartmentID != nil {
		if _, ok := r.s.data.departments[*d.DepartmentID]; !ok {
			return errFK
		}
	}
	return nil
}

func (r *doctorRepository) load(d entity.Doctor) entity.Doctor {
	d.Department = nil
	if d.DepartmentID != nil {
		if dep, ok := r.s.data.departments[*d.DepartmentID]; ok {
			d.Department = &dep
		}
	}
	return d
}

func (r *doctorRepository) Create(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	if err := r.check(doctor); err != nil {
		return err
	}

	doctor.ID = r.s.id()
	stamp(&doctor.CreatedAt, &doctor.UpdatedAt)
	stored := *doctor
	stored.Department = nil
	r.s.data.doctors[doctor.ID] = stored
	return nil
}

func (r *doctorRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}

	d, ok := r.s.data.doctors[id]
	if !ok {
		return nil, nil
	}
	d = r.load(d)
	return &d, nil
}

func (r *doctorRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.DoctorFilter) ([]entity.Doctor, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}

	out := []entity.Doctor{}
	for _, id := range sortedKeys(r.s.data.doctors) {
		d := r.s.data.doctors[id]
		if filter.DepartmentID != nil && !eqPtr(d.DepartmentID, filter.DepartmentID) {
			continue
		}
		out = append(out, r.load(d))
	}
	return out, nil
}

func (r *doctorRepository) Update(ctx context.Context, db *gorm.DB, doctor *entity.Doctor) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	if _, ok := r.s.data.doctors[doctor.ID]; !ok {
		return errNotStored
	}
	if err := r.check(doctor); err != nil {
		return err
	}

	stamp(&doctor.CreatedAt, &doctor.UpdatedAt)
	stored := *doctor
	stored.Department = nil
	r.s.data.doctors[doctor.ID] = stored
	return nil
}

func (r *doctorRepository) Delete(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return 0, err
	}
	if _, ok := r.s.data.doctors[id]; !ok {
		return 0, nil
	}

	for aid, a := range r.s.data.appointments {
		if a.DoctorID == id {
			delete(r.s.data.appointments, aid)
		}
	}
	for mid, m := range r.s.data.medicalRecords {
		if m.DoctorID == id {
			delete(r.s.data.medicalRecords, mid)
		}
	}
	for uid, u := range r.s.data.users {
		if u.DoctorID != nil && *u.DoctorID == id {
			u.DoctorID = nil
			r.s.data.users[uid] = u
		}
	}
	for did, d := range r.s.data.departments {
		if d.HeadDoctorID != nil && *d.HeadDoctorID == id {
			d.HeadDoctorID = nil
			r.s.data.departments[did] = d
		}
	}
	delete(r.s.data.doctors, id)
	return 1, nil
}

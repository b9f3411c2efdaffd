package mocks

import (
	"context"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/pkg/apperror"

	"gorm.io/gorm"
)

type departmentRepository struct{ s *Store }

func (s *Store) Departments() repository.DepartmentRepository {
	return &departmentRepository{s: s}
}

func (r *departmentRepository) check(d *entity.Department) error {
	for id, other := range r.s.data.departments {
		if id == d.ID {
			continue
		}
		if other.Name == d.Name {
			return apperror.Conflict("department name already exists")
		}
		if eqPtr(other.HeadDoctorID, d.HeadDoctorID) {
			return apperror.Conflict("doctor already heads another department")
		}
	}
	if d.HeadDoctorID != nil {
		if _, ok := r.s.data.doctors[*d.HeadDoctorID]; !ok {
			return errFK
		}
	}
	return nil
}

// load fills the relations the gorm repository preloads. Caller holds the lock.
func (r *departmentRepository) load(d entity.Department) entity.Department {
	d.HeadDoctor = nil
	if d.HeadDoctorID != nil {
		if doc, ok := r.s.data.doctors[*d.HeadDoctorID]; ok {
			doc.Department = nil
			d.HeadDoctor = &doc
		}
	}
	d.DoctorCount = 0
	for _, doc := range r.s.data.doctors {
		if doc.DepartmentID != nil && *doc.DepartmentID == d.ID {
			d.DoctorCount++
		}
	}
	return d
}

func strip(d entity.Department) entity.Department {
	d.HeadDoctor = nil
	d.DoctorCount = 0
	return d
}

func (r *departmentRepository) Create(ctx context.Context, db *gorm.DB, department *entity.Department) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	if err := r.check(department); err != nil {
		return err
	}

	department.ID = r.s.id()
	stamp(&department.CreatedAt, &department.UpdatedAt)
	r.s.data.departments[department.ID] = strip(*department)
	return nil
}

func (r *departmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Department, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}

	d, ok := r.s.data.departments[id]
	if !ok {
		return nil, nil
	}
	d = r.load(d)
	return &d, nil
}

func (r *departmentRepository) FindAll(ctx context.Context, db *gorm.DB) ([]entity.Department, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}

	out := []entity.Department{}
	for _, id := range sortedKeys(r.s.data.departments) {
		out = append(out, r.load(r.s.data.departments[id]))
	}
	return out, nil
}

func (r *departmentRepository) Update(ctx context.Context, db *gorm.DB, department *entity.Department) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	if _, ok := r.s.data.departments[department.ID]; !ok {
		return errNotStored
	}
	if err := r.check(department); err != nil {
		return err
	}

	stamp(&department.CreatedAt, &department.UpdatedAt)
	r.s.data.departments[department.ID] = strip(*department)
	return nil
}

func (r *departmentRepository) Delete(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return 0, err
	}
	if _, ok := r.s.data.departments[id]; !ok {
		return 0, nil
	}

	for docID, doc := range r.s.data.doctors {
		if doc.DepartmentID != nil && *doc.DepartmentID == id {
			doc.DepartmentID = nil
			r.s.data.doctors[docID] = doc
		}
	}
	delete(r.s.data.departments, id)
	return 1, nil
}

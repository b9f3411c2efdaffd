package mocks

import (
	"context"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct{ s *Store }

func (s *Store) Appointments() repository.AppointmentRepository {
	return &appointmentRepository{s: s}
}

func (r *appointmentRepository) check(a *entity.Appointment) error {
	if _, ok := r.s.data.patients[a.PatientID]; !ok {
		return errFK
	}
	if _, ok := r.s.data.doctors[a.DoctorID]; !ok {
		return errFK
	}
	return nil
}

func (r *appointmentRepository) load(a entity.Appointment) entity.Appointment {
	a.Patient, a.Doctor = nil, nil
	if p, ok := r.s.data.patients[a.PatientID]; ok {
		a.Patient = &p
	}
	if d, ok := r.s.data.doctors[a.DoctorID]; ok {
		a.Doctor = &d
	}
	return a
}

func (r *appointmentRepository) Create(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	if err := r.check(appointment); err != nil {
		return err
	}

	appointment.ID = r.s.id()
	stamp(&appointment.CreatedAt, &appointment.UpdatedAt)
	stored := *appointment
	stored.Patient, stored.Doctor = nil, nil
	r.s.data.appointments[appointment.ID] = stored
	return nil
}

func (r *appointmentRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}

	a, ok := r.s.data.appointments[id]
	if !ok {
		return nil, nil
	}
	a = r.load(a)
	return &a, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}

	out := []entity.Appointment{}
	for _, id := range sortedKeys(r.s.data.appointments) {
		a := r.s.data.appointments[id]
		if filter.PatientID != nil && a.PatientID != *filter.PatientID {
			continue
		}
		if filter.DoctorID != nil && a.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, r.load(a))
	}
	return out, nil
}

func (r *appointmentRepository) Update(ctx context.Context, db *gorm.DB, appointment *entity.Appointment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}
	if _, ok := r.s.data.appointments[appointment.ID]; !ok {
		return errNotStored
	}
	if err := r.check(appointment); err != nil {
		return err
	}

	stamp(&appointment.CreatedAt, &appointment.UpdatedAt)
	stored := *appointment
	stored.Patient, stored.Doctor = nil, nil
	r.s.data.appointments[appointment.ID] = stored
	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, db *gorm.DB, id uint) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return 0, err
	}
	if _, ok := r.s.data.appointments[id]; !ok {
		return 0, nil
	}
	delete(r.s.data.appointments, id)
	return 1, nil
}

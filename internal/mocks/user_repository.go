package mocks

import (
	"context"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/pkg/apperror"

	"gorm.io/gorm"
)

type userRepository struct{ s *Store }

func (s *Store) Users() repository.UserRepository {
	return &userRepository{s: s}
}

func (r *userRepository) Create(ctx context.Context, db *gorm.DB, user *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}

	for _, u := range r.s.data.users {
		switch {
		case u.Username == user.Username:
			return apperror.Conflict("username already exists")
		case eqPtr(u.DoctorID, user.DoctorID):
			return apperror.Conflict("doctor profile is already linked to another user")
		case eqPtr(u.PatientID, user.PatientID):
			return apperror.Conflict("patient profile is already linked to another user")
		}
	}
	if user.DoctorID != nil {
		if _, ok := r.s.data.doctors[*user.DoctorID]; !ok {
			return errFK
		}
	}
	if user.PatientID != nil {
		if _, ok := r.s.data.patients[*user.PatientID]; !ok {
			return errFK
		}
	}

	user.ID = r.s.id()
	stamp(&user.CreatedAt, &user.UpdatedAt)
	stored := *user
	stored.Doctor, stored.Patient = nil, nil
	r.s.data.users[user.ID] = stored
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}

	u, ok := r.s.data.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, db *gorm.DB, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}

	for _, u := range r.s.data.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

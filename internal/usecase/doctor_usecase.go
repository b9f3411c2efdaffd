package usecase

import (
	"context"

	"hospital-management-api/internal/converter"
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/access"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/internal/domain/rules"
	"hospital-management-api/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, actor access.Actor, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, actor access.Actor, id uint) (*dto.DoctorResponse, error)
	GetAllDoctors(ctx context.Context, actor access.Actor, filter entity.DoctorFilter) ([]dto.DoctorResponse, error)
	UpdateDoctor(ctx context.Context, actor access.Actor, id uint, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, actor access.Actor, id uint) error
}

type doctorUsecase struct {
	txm            repository.Transactor
	log            *logrus.Logger
	matrix         *access.Matrix
	doctorRepo     repository.DoctorRepository
	departmentRepo repository.DepartmentRepository
	auditService   service.AuditService
}

func NewDoctorUsecase(
	txm repository.Transactor,
	log *logrus.Logger,
	matrix *access.Matrix,
	doctorRepo repository.DoctorRepository,
	departmentRepo repository.DepartmentRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		txm:            txm,
		log:            log,
		matrix:         matrix,
		doctorRepo:     doctorRepo,
		departmentRepo: departmentRepo,
		auditService:   auditService,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, actor access.Actor, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	if err := u.matrix.Authorize(actor, access.Doctors, access.OpCreate); err != nil {
		return nil, err
	}

	name, err := rules.PersonName(req.Name)
	if err != nil {
		return nil, err
	}
	specialization, err := rules.Specialization(req.Specialization)
	if err != nil {
		return nil, err
	}
	doctor := &entity.Doctor{
		Name:           name,
		Specialization: specialization,
		DepartmentID:   req.DepartmentID,
	}
	if req.Contact != nil {
		contact, err := rules.DoctorContact(*req.Contact)
		if err != nil {
			return nil, err
		}
		doctor.Contact = &contact
	}

	var resp *dto.DoctorResponse
	err = u.txm.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.ensureDepartment(ctx, tx, req.DepartmentID); err != nil {
			return err
		}

		if err := u.doctorRepo.Create(ctx, tx, doctor); err != nil {
			u.log.Warnf("Failed to create doctor: %+v", err)
			return err
		}

		created, err := u.doctorRepo.FindByID(ctx, tx, doctor.ID)
		if err != nil {
			u.log.Warnf("Failed to reload doctor: %+v", err)
			return err
		}
		resp = converter.DoctorToResponse(created)

		return u.auditService.LogCreate(ctx, tx, auditUserID(actor), entity.AuditActionDoctorCreate, "doctor", doctor.ID, resp)
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, actor access.Actor, id uint) (*dto.DoctorResponse, error) {
	if err := u.matrix.Authorize(actor, access.Doctors, access.OpGet); err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindByID(ctx, u.txm.Conn(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetAllDoctors(ctx context.Context, actor access.Actor, filter entity.DoctorFilter) ([]dto.DoctorResponse, error) {
	if err := u.matrix.Authorize(actor, access.Doctors, access.OpList); err != nil {
		return nil, err
	}

	doctors, err := u.doctorRepo.FindAll(ctx, u.txm.Conn(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find all doctors: %+v", err)
		return nil, err
	}

	return converter.DoctorsToResponses(doctors), nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, actor access.Actor, id uint, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	if err := u.matrix.Authorize(actor, access.Doctors, access.OpUpdate); err != nil {
		return nil, err
	}

	var name, specialization, contact string
	var err error
	if req.Name != nil {
		if name, err = rules.PersonName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Specialization != nil {
		if specialization, err = rules.Specialization(*req.Specialization); err != nil {
			return nil, err
		}
	}
	if req.Contact != nil {
		if contact, err = rules.DoctorContact(*req.Contact); err != nil {
			return nil, err
		}
	}

	var resp *dto.DoctorResponse
	err = u.txm.WithinTransaction(ctx, func(tx *gorm.DB) error {
		doctor, err := u.doctorRepo.FindByID(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed to find doctor: %+v", err)
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}

		oldValue := converter.DoctorToResponse(doctor)

		if req.Name != nil {
			doctor.Name = name
		}
		if req.Specialization != nil {
			doctor.Specialization = specialization
		}
		if req.Contact != nil {
			doctor.Contact = &contact
		}
		if req.DepartmentID != nil {
			if err := u.ensureDepartment(ctx, tx, req.DepartmentID); err != nil {
				return err
			}
			doctor.DepartmentID = req.DepartmentID
		}

		doctor.Department = nil
		if err := u.doctorRepo.Update(ctx, tx, doctor); err != nil {
			u.log.Warnf("Failed to update doctor: %+v", err)
			return err
		}

		updated, err := u.doctorRepo.FindByID(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed to reload doctor: %+v", err)
			return err
		}
		resp = converter.DoctorToResponse(updated)

		return u.auditService.LogUpdate(ctx, tx, auditUserID(actor), entity.AuditActionDoctorUpdate, "doctor", id, oldValue, resp)
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (u *doctorUsecase) DeleteDoctor(ctx context.Context, actor access.Actor, id uint) error {
	if err := u.matrix.Authorize(actor, access.Doctors, access.OpDelete); err != nil {
		return err
	}

	return u.txm.WithinTransaction(ctx, func(tx *gorm.DB) error {
		doctor, err := u.doctorRepo.FindByID(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed to find doctor: %+v", err)
			return err
		}
		if doctor == nil {
			return ErrDoctorNotFound
		}
		oldValue := converter.DoctorToResponse(doctor)

		affectedRows, err := u.doctorRepo.Delete(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed delete doctor: %+v", err)
			return err
		}
		if affectedRows == 0 {
			return ErrDoctorNotFound
		}

		return u.auditService.LogDelete(ctx, tx, auditUserID(actor), entity.AuditActionDoctorDelete, "doctor", id, oldValue)
	})
}

func (u *doctorUsecase) ensureDepartment(ctx context.Context, tx *gorm.DB, id *uint) error {
	if id == nil {
		return nil
	}
	department, err := u.departmentRepo.FindByID(ctx, tx, *id)
	if err != nil {
		u.log.Warnf("Failed to find department: %+v", err)
		return err
	}
	if department == nil {
		return ErrDepartmentNotFound
	}
	return nil
}

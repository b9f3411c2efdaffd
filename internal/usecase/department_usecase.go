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
	"hospital-management-api/pkg/apperror"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type DepartmentUsecase interface {
	CreateDepartment(ctx context.Context, actor access.Actor, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error)
	GetDepartment(ctx context.Context, actor access.Actor, id uint) (*dto.DepartmentResponse, error)
	GetAllDepartments(ctx context.Context, actor access.Actor) ([]dto.DepartmentResponse, error)
	UpdateDepartment(ctx context.Context, actor access.Actor, id uint, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error)
	DeleteDepartment(ctx context.Context, actor access.Actor, id uint) error
}

type departmentUsecase struct {
	txm            repository.Transactor
	log            *logrus.Logger
	matrix         *access.Matrix
	departmentRepo repository.DepartmentRepository
	doctorRepo     repository.DoctorRepository
	auditService   service.AuditService
}

func NewDepartmentUsecase(
	txm repository.Transactor,
	log *logrus.Logger,
	matrix *access.Matrix,
	departmentRepo repository.DepartmentRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) DepartmentUsecase {
	return &departmentUsecase{
		txm:            txm,
		log:            log,
		matrix:         matrix,
		departmentRepo: departmentRepo,
		doctorRepo:     doctorRepo,
		auditService:   auditService,
	}
}

func (u *departmentUsecase) CreateDepartment(ctx context.Context, actor access.Actor, req *dto.CreateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if err := u.matrix.Authorize(actor, access.Departments, access.OpCreate); err != nil {
		return nil, err
	}

	name, err := rules.DepartmentName(req.Name)
	if err != nil {
		return nil, err
	}
	specialty, err := rules.Specialty(req.Specialty)
	if err != nil {
		return nil, err
	}
	if req.HeadDoctorID == nil {
		return nil, apperror.Validation("head_doctor_id", "is required")
	}

	department := &entity.Department{
		Name:         name,
		Specialty:    specialty,
		HeadDoctorID: req.HeadDoctorID,
	}

	var resp *dto.DepartmentResponse
	err = u.txm.WithinTransaction(ctx, func(tx *gorm.DB) error {
		head, err := u.doctorRepo.FindByID(ctx, tx, *req.HeadDoctorID)
		if err != nil {
			u.log.Warnf("Failed to find head doctor: %+v", err)
			return err
		}
		if head == nil {
			return ErrHeadDoctorNotFound
		}

		if err := u.departmentRepo.Create(ctx, tx, department); err != nil {
			u.log.Warnf("Failed to create department: %+v", err)
			return err
		}

		// Second phase: a head doctor without a department joins the one they head.
		if head.DepartmentID == nil {
			head.DepartmentID = &department.ID
			head.Department = nil
			if err := u.doctorRepo.Update(ctx, tx, head); err != nil {
				u.log.Warnf("Failed to assign head doctor to department: %+v", err)
				return err
			}
		}

		created, err := u.departmentRepo.FindByID(ctx, tx, department.ID)
		if err != nil {
			u.log.Warnf("Failed to reload department: %+v", err)
			return err
		}
		resp = converter.DepartmentToResponse(created)

		return u.auditService.LogCreate(ctx, tx, auditUserID(actor), entity.AuditActionDepartmentCreate, "department", department.ID, resp)
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (u *departmentUsecase) GetDepartment(ctx context.Context, actor access.Actor, id uint) (*dto.DepartmentResponse, error) {
	if err := u.matrix.Authorize(actor, access.Departments, access.OpGet); err != nil {
		return nil, err
	}

	department, err := u.departmentRepo.FindByID(ctx, u.txm.Conn(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find department: %+v", err)
		return nil, err
	}
	if department == nil {
		return nil, ErrDepartmentNotFound
	}

	return converter.DepartmentToResponse(department), nil
}

func (u *departmentUsecase) GetAllDepartments(ctx context.Context, actor access.Actor) ([]dto.DepartmentResponse, error) {
	if err := u.matrix.Authorize(actor, access.Departments, access.OpList); err != nil {
		return nil, err
	}

	departments, err := u.departmentRepo.FindAll(ctx, u.txm.Conn(ctx))
	if err != nil {
		u.log.Warnf("Failed to find all departments: %+v", err)
		return nil, err
	}

	return converter.DepartmentsToResponses(departments), nil
}

func (u *departmentUsecase) UpdateDepartment(ctx context.Context, actor access.Actor, id uint, req *dto.UpdateDepartmentRequest) (*dto.DepartmentResponse, error) {
	if err := u.matrix.Authorize(actor, access.Departments, access.OpUpdate); err != nil {
		return nil, err
	}

	var name, specialty string
	var err error
	if req.Name != nil {
		if name, err = rules.DepartmentName(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Specialty != nil {
		if specialty, err = rules.Specialty(*req.Specialty); err != nil {
			return nil, err
		}
	}

	var resp *dto.DepartmentResponse
	err = u.txm.WithinTransaction(ctx, func(tx *gorm.DB) error {
		department, err := u.departmentRepo.FindByID(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed to find department: %+v", err)
			return err
		}
		if department == nil {
			return ErrDepartmentNotFound
		}

		oldValue := converter.DepartmentToResponse(department)

		if req.Name != nil {
			department.Name = name
		}
		if req.Specialty != nil {
			department.Specialty = specialty
		}

		var newHead *entity.Doctor
		if req.HeadDoctorID != nil && (department.HeadDoctorID == nil || *department.HeadDoctorID != *req.HeadDoctorID) {
			newHead, err = u.doctorRepo.FindByID(ctx, tx, *req.HeadDoctorID)
			if err != nil {
				u.log.Warnf("Failed to find head doctor: %+v", err)
				return err
			}
			if newHead == nil {
				return ErrHeadDoctorNotFound
			}
			department.HeadDoctorID = req.HeadDoctorID
		}

		department.HeadDoctor = nil
		if err := u.departmentRepo.Update(ctx, tx, department); err != nil {
			u.log.Warnf("Failed to update department: %+v", err)
			return err
		}

		if newHead != nil && newHead.DepartmentID == nil {
			newHead.DepartmentID = &department.ID
			newHead.Department = nil
			if err := u.doctorRepo.Update(ctx, tx, newHead); err != nil {
				u.log.Warnf("Failed to assign head doctor to department: %+v", err)
				return err
			}
		}

		updated, err := u.departmentRepo.FindByID(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed to reload department: %+v", err)
			return err
		}
		resp = converter.DepartmentToResponse(updated)

		return u.auditService.LogUpdate(ctx, tx, auditUserID(actor), entity.AuditActionDepartmentUpdate, "department", id, oldValue, resp)
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (u *departmentUsecase) DeleteDepartment(ctx context.Context, actor access.Actor, id uint) error {
	if err := u.matrix.Authorize(actor, access.Departments, access.OpDelete); err != nil {
		return err
	}

	return u.txm.WithinTransaction(ctx, func(tx *gorm.DB) error {
		department, err := u.departmentRepo.FindByID(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed to find department: %+v", err)
			return err
		}
		if department == nil {
			return ErrDepartmentNotFound
		}
		oldValue := converter.DepartmentToResponse(department)

		affectedRows, err := u.departmentRepo.Delete(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed delete department: %+v", err)
			return err
		}
		if affectedRows == 0 {
			return ErrDepartmentNotFound
		}

		return u.auditService.LogDelete(ctx, tx, auditUserID(actor), entity.AuditActionDepartmentDelete, "department", id, oldValue)
	})
}

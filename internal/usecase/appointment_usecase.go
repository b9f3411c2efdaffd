package usecase

import (
	"context"
	"time"

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

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, actor access.Actor, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, actor access.Actor, id uint) (*dto.AppointmentResponse, error)
	GetAllAppointments(ctx context.Context, actor access.Actor, filter entity.AppointmentFilter) ([]dto.AppointmentResponse, error)
	UpdateAppointment(ctx context.Context, actor access.Actor, id uint, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	DeleteAppointment(ctx context.Context, actor access.Actor, id uint) error
}

type appointmentUsecase struct {
	txm             repository.Transactor
	log             *logrus.Logger
	matrix          *access.Matrix
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	doctorRepo      repository.DoctorRepository
	auditService    service.AuditService
	now             func() time.Time
}

func NewAppointmentUsecase(
	txm repository.Transactor,
	log *logrus.Logger,
	matrix *access.Matrix,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		txm:             txm,
		log:             log,
		matrix:          matrix,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		doctorRepo:      doctorRepo,
		auditService:    auditService,
		now:             time.Now,
	}
}

// appointmentDate parses raw and rejects dates before the current UTC wall clock.
func (u *appointmentUsecase) appointmentDate(raw string) (time.Time, error) {
	date, err := rules.DateTime("appointment_date", raw)
	if err != nil {
		return time.Time{}, err
	}
	if err := rules.NotInPast("appointment_date", date, u.now().UTC()); err != nil {
		return time.Time{}, err
	}
	return date, nil
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, actor access.Actor, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := u.matrix.Authorize(actor, access.Appointments, access.OpCreate); err != nil {
		return nil, err
	}

	date, err := u.appointmentDate(req.AppointmentDate)
	if err != nil {
		return nil, err
	}
	status := entity.AppointmentStatusScheduled
	if req.Status != nil {
		if status, err = rules.AppointmentStatus(*req.Status); err != nil {
			return nil, err
		}
	}

	appointment := &entity.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: date,
		Status:          status,
	}
	if err := u.matrix.AuthorizeOwnership(actor, access.OpCreate, appointmentOwnership(appointment)); err != nil {
		return nil, err
	}

	var resp *dto.AppointmentResponse
	err = u.txm.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.ensureParticipants(ctx, tx, req.PatientID, req.DoctorID); err != nil {
			return err
		}

		if err := u.appointmentRepo.Create(ctx, tx, appointment); err != nil {
			u.log.Warnf("Failed to create appointment: %+v", err)
			return err
		}

		created, err := u.appointmentRepo.FindByID(ctx, tx, appointment.ID)
		if err != nil {
			u.log.Warnf("Failed to reload appointment: %+v", err)
			return err
		}
		resp = converter.AppointmentToResponse(created)

		return u.auditService.LogCreate(ctx, tx, auditUserID(actor), entity.AuditActionAppointmentCreate, "appointment", appointment.ID, resp)
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, actor access.Actor, id uint) (*dto.AppointmentResponse, error) {
	if err := u.matrix.Authorize(actor, access.Appointments, access.OpGet); err != nil {
		return nil, err
	}

	appointment, err := u.appointmentRepo.FindByID(ctx, u.txm.Conn(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	if err := u.matrix.AuthorizeOwnership(actor, access.OpGet, appointmentOwnership(appointment)); err != nil {
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAllAppointments(ctx context.Context, actor access.Actor, filter entity.AppointmentFilter) ([]dto.AppointmentResponse, error) {
	if err := u.matrix.Authorize(actor, access.Appointments, access.OpList); err != nil {
		return nil, err
	}

	if filter.Status != "" {
		status, err := rules.AppointmentStatus(string(filter.Status))
		if err != nil {
			return nil, err
		}
		filter.Status = status
	}

	patientID, doctorID, ok := scopeOwners(u.matrix.ListScope(actor, access.Appointments), filter.PatientID, filter.DoctorID)
	if !ok {
		return []dto.AppointmentResponse{}, nil
	}
	filter.PatientID, filter.DoctorID = patientID, doctorID

	appointments, err := u.appointmentRepo.FindAll(ctx, u.txm.Conn(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find all appointments: %+v", err)
		return nil, err
	}

	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) UpdateAppointment(ctx context.Context, actor access.Actor, id uint, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	if err := u.matrix.Authorize(actor, access.Appointments, access.OpUpdate); err != nil {
		return nil, err
	}

	var date time.Time
	var status entity.AppointmentStatus
	var err error
	if req.AppointmentDate != nil {
		if date, err = u.appointmentDate(*req.AppointmentDate); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		if status, err = rules.AppointmentStatus(*req.Status); err != nil {
			return nil, err
		}
	}

	var resp *dto.AppointmentResponse
	err = u.txm.WithinTransaction(ctx, func(tx *gorm.DB) error {
		appointment, err := u.appointmentRepo.FindByID(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed to find appointment: %+v", err)
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}

		if err := u.matrix.AuthorizeOwnership(actor, access.OpUpdate, appointmentOwnership(appointment)); err != nil {
			return err
		}

		oldValue := converter.AppointmentToResponse(appointment)

		if req.PatientID != nil || req.DoctorID != nil {
			patientID, doctorID := appointment.PatientID, appointment.DoctorID
			if req.PatientID != nil {
				patientID = *req.PatientID
			}
			if req.DoctorID != nil {
				doctorID = *req.DoctorID
			}
			// The new owners must still be the caller's.
			if err := u.matrix.AuthorizeOwnership(actor, access.OpUpdate, access.Ownership{PatientID: &patientID, DoctorID: &doctorID}); err != nil {
				return err
			}
			if err := u.ensureParticipants(ctx, tx, patientID, doctorID); err != nil {
				return err
			}
			appointment.PatientID, appointment.DoctorID = patientID, doctorID
		}
		if req.AppointmentDate != nil {
			appointment.AppointmentDate = date
		}
		if req.Status != nil {
			appointment.Status = status
		}

		appointment.Patient, appointment.Doctor = nil, nil
		if err := u.appointmentRepo.Update(ctx, tx, appointment); err != nil {
			u.log.Warnf("Failed to update appointment: %+v", err)
			return err
		}

		updated, err := u.appointmentRepo.FindByID(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed to reload appointment: %+v", err)
			return err
		}
		resp = converter.AppointmentToResponse(updated)

		return u.auditService.LogUpdate(ctx, tx, auditUserID(actor), entity.AuditActionAppointmentUpdate, "appointment", id, oldValue, resp)
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (u *appointmentUsecase) DeleteAppointment(ctx context.Context, actor access.Actor, id uint) error {
	if err := u.matrix.Authorize(actor, access.Appointments, access.OpDelete); err != nil {
		return err
	}

	return u.txm.WithinTransaction(ctx, func(tx *gorm.DB) error {
		appointment, err := u.appointmentRepo.FindByID(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed to find appointment: %+v", err)
			return err
		}
		if appointment == nil {
			return ErrAppointmentNotFound
		}
		oldValue := converter.AppointmentToResponse(appointment)

		affectedRows, err := u.appointmentRepo.Delete(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed delete appointment: %+v", err)
			return err
		}
		if affectedRows == 0 {
			return ErrAppointmentNotFound
		}

		return u.auditService.LogDelete(ctx, tx, auditUserID(actor), entity.AuditActionAppointmentDelete, "appointment", id, oldValue)
	})
}

func (u *appointmentUsecase) ensureParticipants(ctx context.Context, tx *gorm.DB, patientID, doctorID uint) error {
	patient, err := u.patientRepo.FindByID(ctx, tx, patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	doctor, err := u.doctorRepo.FindByID(ctx, tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}
	return nil
}

func appointmentOwnership(a *entity.Appointment) access.Ownership {
	return access.Ownership{PatientID: &a.PatientID, DoctorID: &a.DoctorID}
}

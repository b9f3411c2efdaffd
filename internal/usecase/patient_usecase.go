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

type PatientUsecase interface {
	CreatePatient(ctx context.Context, actor access.Actor, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, actor access.Actor, id uint) (*dto.PatientResponse, error)
	GetAllPatients(ctx context.Context, actor access.Actor, filter entity.PatientFilter) ([]dto.PatientResponse, error)
	UpdatePatient(ctx context.Context, actor access.Actor, id uint, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, actor access.Actor, id uint) error
}

type patientUsecase struct {
	txm          repository.Transactor
	log          *logrus.Logger
	matrix       *access.Matrix
	patientRepo  repository.PatientRepository
	auditService service.AuditService
	now          func() time.Time
}

func NewPatientUsecase(
	txm repository.Transactor,
	log *logrus.Logger,
	matrix *access.Matrix,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		txm:          txm,
		log:          log,
		matrix:       matrix,
		patientRepo:  patientRepo,
		auditService: auditService,
		now:          time.Now,
	}
}

// patientFields holds validated payload values; nil means "not supplied".
type patientFields struct {
	name          *string
	age           *int
	dateOfBirth   *time.Time
	gender        *string
	contactNumber *string
	admissionDate *time.Time
	wardNumber    *int
	lastVisitDate *time.Time
}

func (u *patientUsecase) parseFields(name, gender, contact *string, age *int, dob, admission *string, ward *int, lastVisit *string) (*patientFields, error) {
	f := &patientFields{}
	now := u.now().UTC()

	if name != nil {
		v, err := rules.PersonName(*name)
		if err != nil {
			return nil, err
		}
		f.name = &v
	}
	if age != nil {
		if err := rules.PositiveInt("age", *age); err != nil {
			return nil, err
		}
		f.age = age
	}
	if dob != nil {
		v, err := rules.Date("date_of_birth", *dob)
		if err != nil {
			return nil, err
		}
		if err := rules.NotInFuture("date_of_birth", v, now); err != nil {
			return nil, err
		}
		f.dateOfBirth = &v
	}
	if gender != nil {
		v, err := rules.Gender(*gender)
		if err != nil {
			return nil, err
		}
		f.gender = &v
	}
	if contact != nil {
		v, err := rules.ContactNumber(*contact)
		if err != nil {
			return nil, err
		}
		f.contactNumber = &v
	}
	if admission != nil {
		v, err := rules.Date("admission_date", *admission)
		if err != nil {
			return nil, err
		}
		f.admissionDate = &v
	}
	if ward != nil {
		if err := rules.PositiveInt("ward_number", *ward); err != nil {
			return nil, err
		}
		f.wardNumber = ward
	}
	if lastVisit != nil {
		v, err := rules.Date("last_visit_date", *lastVisit)
		if err != nil {
			return nil, err
		}
		if err := rules.NotInFuture("last_visit_date", v, now); err != nil {
			return nil, err
		}
		f.lastVisitDate = &v
	}
	return f, nil
}

func (f *patientFields) apply(p *entity.Patient) {
	if f.name != nil {
		p.Name = *f.name
	}
	if f.age != nil {
		p.Age = f.age
	}
	if f.dateOfBirth != nil {
		p.DateOfBirth = f.dateOfBirth
	}
	if f.gender != nil {
		p.Gender = *f.gender
	}
	if f.contactNumber != nil {
		p.ContactNumber = *f.contactNumber
	}
	if f.admissionDate != nil {
		p.Inpatient.AdmissionDate = f.admissionDate
	}
	if f.wardNumber != nil {
		p.Inpatient.WardNumber = f.wardNumber
	}
	if f.lastVisitDate != nil {
		p.Outpatient.LastVisitDate = f.lastVisitDate
	}
}

func (u *patientUsecase) CreatePatient(ctx context.Context, actor access.Actor, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	if err := u.matrix.Authorize(actor, access.Patients, access.OpCreate); err != nil {
		return nil, err
	}

	var patientType entity.PatientType
	if req.Type != "" {
		t, err := rules.PatientType(req.Type)
		if err != nil {
			return nil, err
		}
		patientType = t
	}

	fields, err := u.parseFields(&req.Name, &req.Gender, &req.ContactNumber, req.Age, req.DateOfBirth, req.AdmissionDate, req.WardNumber, req.LastVisitDate)
	if err != nil {
		return nil, err
	}
	var base entity.Patient
	fields.apply(&base)

	patient, err := entity.NewPatient(base, patientType)
	if err != nil {
		return nil, err
	}

	var resp *dto.PatientResponse
	err = u.txm.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.patientRepo.Create(ctx, tx, patient); err != nil {
			u.log.Warnf("Failed to create patient: %+v", err)
			return err
		}
		resp = converter.PatientToResponse(patient)

		return u.auditService.LogCreate(ctx, tx, auditUserID(actor), entity.AuditActionPatientCreate, "patient", patient.ID, resp)
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, actor access.Actor, id uint) (*dto.PatientResponse, error) {
	if err := u.matrix.Authorize(actor, access.Patients, access.OpGet); err != nil {
		return nil, err
	}

	patient, err := u.patientRepo.FindByID(ctx, u.txm.Conn(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if err := u.matrix.AuthorizeOwnership(actor, access.OpGet, access.Ownership{PatientID: &patient.ID}); err != nil {
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetAllPatients(ctx context.Context, actor access.Actor, filter entity.PatientFilter) ([]dto.PatientResponse, error) {
	if err := u.matrix.Authorize(actor, access.Patients, access.OpList); err != nil {
		return nil, err
	}

	patients, err := u.patientRepo.FindAll(ctx, u.txm.Conn(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find all patients: %+v", err)
		return nil, err
	}

	return converter.PatientsToResponses(patients), nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, actor access.Actor, id uint, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	if err := u.matrix.Authorize(actor, access.Patients, access.OpUpdate); err != nil {
		return nil, err
	}

	var patientType *entity.PatientType
	if req.Type != nil {
		t, err := rules.PatientType(*req.Type)
		if err != nil {
			return nil, err
		}
		patientType = &t
	}

	fields, err := u.parseFields(req.Name, req.Gender, req.ContactNumber, req.Age, req.DateOfBirth, req.AdmissionDate, req.WardNumber, req.LastVisitDate)
	if err != nil {
		return nil, err
	}

	var resp *dto.PatientResponse
	err = u.txm.WithinTransaction(ctx, func(tx *gorm.DB) error {
		patient, err := u.patientRepo.FindByID(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed to find patient: %+v", err)
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}

		if err := u.matrix.AuthorizeOwnership(actor, access.OpUpdate, access.Ownership{PatientID: &patient.ID}); err != nil {
			return err
		}

		if patientType != nil {
			if err := patient.ChangeType(*patientType); err != nil {
				return err
			}
		}

		oldValue := converter.PatientToResponse(patient)
		fields.apply(patient)
		if err := patient.CheckInvariants(); err != nil {
			return err
		}

		if err := u.patientRepo.Update(ctx, tx, patient); err != nil {
			u.log.Warnf("Failed to update patient: %+v", err)
			return err
		}
		resp = converter.PatientToResponse(patient)

		return u.auditService.LogUpdate(ctx, tx, auditUserID(actor), entity.AuditActionPatientUpdate, "patient", id, oldValue, resp)
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (u *patientUsecase) DeletePatient(ctx context.Context, actor access.Actor, id uint) error {
	if err := u.matrix.Authorize(actor, access.Patients, access.OpDelete); err != nil {
		return err
	}

	return u.txm.WithinTransaction(ctx, func(tx *gorm.DB) error {
		patient, err := u.patientRepo.FindByID(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed to find patient: %+v", err)
			return err
		}
		if patient == nil {
			return ErrPatientNotFound
		}
		oldValue := converter.PatientToResponse(patient)

		affectedRows, err := u.patientRepo.Delete(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed delete patient: %+v", err)
			return err
		}
		if affectedRows == 0 {
			return ErrPatientNotFound
		}

		return u.auditService.LogDelete(ctx, tx, auditUserID(actor), entity.AuditActionPatientDelete, "patient", id, oldValue)
	})
}

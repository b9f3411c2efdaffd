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

type MedicalRecordUsecase interface {
	CreateMedicalRecord(ctx context.Context, actor access.Actor, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	GetMedicalRecord(ctx context.Context, actor access.Actor, id uint) (*dto.MedicalRecordResponse, error)
	GetAllMedicalRecords(ctx context.Context, actor access.Actor, filter entity.MedicalRecordFilter) ([]dto.MedicalRecordResponse, error)
	GetPatientMedicalRecords(ctx context.Context, actor access.Actor, patientID uint) ([]dto.MedicalRecordResponse, error)
	UpdateMedicalRecord(ctx context.Context, actor access.Actor, id uint, req *dto.UpdateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	DeleteMedicalRecord(ctx context.Context, actor access.Actor, id uint) error
}

type medicalRecordUsecase struct {
	txm          repository.Transactor
	log          *logrus.Logger
	matrix       *access.Matrix
	recordRepo   repository.MedicalRecordRepository
	patientRepo  repository.PatientRepository
	doctorRepo   repository.DoctorRepository
	auditService service.AuditService
	now          func() time.Time
}

func NewMedicalRecordUsecase(
	txm repository.Transactor,
	log *logrus.Logger,
	matrix *access.Matrix,
	recordRepo repository.MedicalRecordRepository,
	patientRepo repository.PatientRepository,
	doctorRepo repository.DoctorRepository,
	auditService service.AuditService,
) MedicalRecordUsecase {
	return &medicalRecordUsecase{
		txm:          txm,
		log:          log,
		matrix:       matrix,
		recordRepo:   recordRepo,
		patientRepo:  patientRepo,
		doctorRepo:   doctorRepo,
		auditService: auditService,
		now:          time.Now,
	}
}

func (u *medicalRecordUsecase) CreateMedicalRecord(ctx context.Context, actor access.Actor, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	if err := u.matrix.Authorize(actor, access.MedicalRecords, access.OpCreate); err != nil {
		return nil, err
	}

	diagnosis, err := rules.Diagnosis(req.Diagnosis)
	if err != nil {
		return nil, err
	}
	treatment, err := rules.Treatment(req.Treatment)
	if err != nil {
		return nil, err
	}
	visitDate := rules.NaiveUTC(u.now().UTC())
	if req.VisitDate != nil {
		if visitDate, err = rules.DateTime("visit_date", *req.VisitDate); err != nil {
			return nil, err
		}
	}

	record := &entity.MedicalRecord{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		VisitDate: visitDate,
		Diagnosis: diagnosis,
		Treatment: treatment,
	}
	if err := u.matrix.AuthorizeOwnership(actor, access.OpCreate, recordOwnership(record)); err != nil {
		return nil, err
	}

	var resp *dto.MedicalRecordResponse
	err = u.txm.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := u.ensureParticipants(ctx, tx, req.PatientID, req.DoctorID); err != nil {
			return err
		}

		if err := u.recordRepo.Create(ctx, tx, record); err != nil {
			u.log.Warnf("Failed to create medical record: %+v", err)
			return err
		}

		created, err := u.recordRepo.FindByID(ctx, tx, record.ID)
		if err != nil {
			u.log.Warnf("Failed to reload medical record: %+v", err)
			return err
		}
		resp = converter.MedicalRecordToResponse(created)

		return u.auditService.LogCreate(ctx, tx, auditUserID(actor), entity.AuditActionMedicalRecordCreate, "medical_record", record.ID, resp)
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (u *medicalRecordUsecase) GetMedicalRecord(ctx context.Context, actor access.Actor, id uint) (*dto.MedicalRecordResponse, error) {
	if err := u.matrix.Authorize(actor, access.MedicalRecords, access.OpGet); err != nil {
		return nil, err
	}

	record, err := u.recordRepo.FindByID(ctx, u.txm.Conn(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medical record: %+v", err)
		return nil, err
	}
	if record == nil {
		return nil, ErrMedicalRecordNotFound
	}

	if err := u.matrix.AuthorizeOwnership(actor, access.OpGet, recordOwnership(record)); err != nil {
		return nil, err
	}

	return converter.MedicalRecordToResponse(record), nil
}

func (u *medicalRecordUsecase) GetAllMedicalRecords(ctx context.Context, actor access.Actor, filter entity.MedicalRecordFilter) ([]dto.MedicalRecordResponse, error) {
	if err := u.matrix.Authorize(actor, access.MedicalRecords, access.OpList); err != nil {
		return nil, err
	}

	return u.findScoped(ctx, u.txm.Conn(ctx), actor, filter)
}

// GetPatientMedicalRecords lists one patient's records. Patients may only
// read their own history; doctors see the records they wrote.
func (u *medicalRecordUsecase) GetPatientMedicalRecords(ctx context.Context, actor access.Actor, patientID uint) ([]dto.MedicalRecordResponse, error) {
	if err := u.matrix.Authorize(actor, access.MedicalRecords, access.OpList); err != nil {
		return nil, err
	}

	db := u.txm.Conn(ctx)
	patient, err := u.patientRepo.FindByID(ctx, db, patientID)
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

	return u.findScoped(ctx, db, actor, entity.MedicalRecordFilter{PatientID: &patient.ID})
}

func (u *medicalRecordUsecase) findScoped(ctx context.Context, db *gorm.DB, actor access.Actor, filter entity.MedicalRecordFilter) ([]dto.MedicalRecordResponse, error) {
	patientID, doctorID, ok := scopeOwners(u.matrix.ListScope(actor, access.MedicalRecords), filter.PatientID, filter.DoctorID)
	if !ok {
		return []dto.MedicalRecordResponse{}, nil
	}
	filter.PatientID, filter.DoctorID = patientID, doctorID

	records, err := u.recordRepo.FindAll(ctx, db, filter)
	if err != nil {
		u.log.Warnf("Failed to find all medical records: %+v", err)
		return nil, err
	}

	return converter.MedicalRecordsToResponses(records), nil
}

func (u *medicalRecordUsecase) UpdateMedicalRecord(ctx context.Context, actor access.Actor, id uint, req *dto.UpdateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	if err := u.matrix.Authorize(actor, access.MedicalRecords, access.OpUpdate); err != nil {
		return nil, err
	}

	var diagnosis, treatment string
	var visitDate time.Time
	var err error
	if req.Diagnosis != nil {
		if diagnosis, err = rules.Diagnosis(*req.Diagnosis); err != nil {
			return nil, err
		}
	}
	if req.Treatment != nil {
		if treatment, err = rules.Treatment(*req.Treatment); err != nil {
			return nil, err
		}
	}
	if req.VisitDate != nil {
		if visitDate, err = rules.DateTime("visit_date", *req.VisitDate); err != nil {
			return nil, err
		}
	}

	var resp *dto.MedicalRecordResponse
	err = u.txm.WithinTransaction(ctx, func(tx *gorm.DB) error {
		record, err := u.recordRepo.FindByID(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed to find medical record: %+v", err)
			return err
		}
		if record == nil {
			return ErrMedicalRecordNotFound
		}

		if err := u.matrix.AuthorizeOwnership(actor, access.OpUpdate, recordOwnership(record)); err != nil {
			return err
		}

		oldValue := converter.MedicalRecordToResponse(record)

		if req.PatientID != nil || req.DoctorID != nil {
			patientID, doctorID := record.PatientID, record.DoctorID
			if req.PatientID != nil {
				patientID = *req.PatientID
			}
			if req.DoctorID != nil {
				doctorID = *req.DoctorID
			}
			if err := u.matrix.AuthorizeOwnership(actor, access.OpUpdate, access.Ownership{PatientID: &patientID, DoctorID: &doctorID}); err != nil {
				return err
			}
			if err := u.ensureParticipants(ctx, tx, patientID, doctorID); err != nil {
				return err
			}
			record.PatientID, record.DoctorID = patientID, doctorID
		}
		if req.Diagnosis != nil {
			record.Diagnosis = diagnosis
		}
		if req.Treatment != nil {
			record.Treatment = treatment
		}
		if req.VisitDate != nil {
			record.VisitDate = visitDate
		}

		record.Patient, record.Doctor = nil, nil
		if err := u.recordRepo.Update(ctx, tx, record); err != nil {
			u.log.Warnf("Failed to update medical record: %+v", err)
			return err
		}

		updated, err := u.recordRepo.FindByID(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed to reload medical record: %+v", err)
			return err
		}
		resp = converter.MedicalRecordToResponse(updated)

		return u.auditService.LogUpdate(ctx, tx, auditUserID(actor), entity.AuditActionMedicalRecordUpdate, "medical_record", id, oldValue, resp)
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (u *medicalRecordUsecase) DeleteMedicalRecord(ctx context.Context, actor access.Actor, id uint) error {
	if err := u.matrix.Authorize(actor, access.MedicalRecords, access.OpDelete); err != nil {
		return err
	}

	return u.txm.WithinTransaction(ctx, func(tx *gorm.DB) error {
		record, err := u.recordRepo.FindByID(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed to find medical record: %+v", err)
			return err
		}
		if record == nil {
			return ErrMedicalRecordNotFound
		}
		oldValue := converter.MedicalRecordToResponse(record)

		affectedRows, err := u.recordRepo.Delete(ctx, tx, id)
		if err != nil {
			u.log.Warnf("Failed delete medical record: %+v", err)
			return err
		}
		if affectedRows == 0 {
			return ErrMedicalRecordNotFound
		}

		return u.auditService.LogDelete(ctx, tx, auditUserID(actor), entity.AuditActionMedicalRecordDelete, "medical_record", id, oldValue)
	})
}

func (u *medicalRecordUsecase) ensureParticipants(ctx context.Context, tx *gorm.DB, patientID, doctorID uint) error {
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

func recordOwnership(r *entity.MedicalRecord) access.Ownership {
	return access.Ownership{PatientID: &r.PatientID, DoctorID: &r.DoctorID}
}

package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"hospital-management-api/internal/domain/access"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/mocks"
	"hospital-management-api/internal/service"
	"hospital-management-api/pkg/apperror"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)

type fixture struct {
	store  *mocks.Store
	txm    *mocks.Transactor
	log    *logrus.Logger
	matrix *access.Matrix
	audit  service.AuditService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	store := mocks.NewStore()
	return &fixture{
		store:  store,
		txm:    store.Transactor(),
		log:    log,
		matrix: access.DefaultMatrix(),
		audit:  service.NewAuditService(log, store.AuditLogRepository()),
	}
}

func ptr[T any](v T) *T { return &v }

func adminActor() access.Actor {
	return access.Actor{UserID: 1, Username: "admin", Role: entity.RoleAdmin}
}

func managerActor() access.Actor {
	return access.Actor{UserID: 2, Username: "manager", Role: entity.RoleDepartmentManager}
}

func doctorActor(doctorID uint) access.Actor {
	return access.Actor{UserID: 3, Username: "doctor", Role: entity.RoleDoctor, DoctorID: &doctorID}
}

func patientActor(patientID uint) access.Actor {
	return access.Actor{UserID: 4, Username: "patient", Role: entity.RolePatient, PatientID: &patientID}
}

func (f *fixture) seedDoctor(t *testing.T, name string, departmentID *uint) *entity.Doctor {
	t.Helper()
	doctor := &entity.Doctor{Name: name, Specialization: "Cardiology", DepartmentID: departmentID}
	require.NoError(t, f.store.Doctors().Create(context.Background(), nil, doctor))
	return doctor
}

func (f *fixture) seedDepartment(t *testing.T, name string, headDoctorID uint) *entity.Department {
	t.Helper()
	department := &entity.Department{Name: name, Specialty: "Heart", HeadDoctorID: &headDoctorID}
	require.NoError(t, f.store.Departments().Create(context.Background(), nil, department))
	return department
}

func (f *fixture) seedPatient(t *testing.T, name, contact string) *entity.Patient {
	t.Helper()
	patient := &entity.Patient{
		Type:          entity.PatientTypePatient,
		Name:          name,
		Age:           ptr(40),
		Gender:        entity.GenderFemale,
		ContactNumber: contact,
	}
	require.NoError(t, f.store.Patients().Create(context.Background(), nil, patient))
	return patient
}

func (f *fixture) seedAppointment(t *testing.T, patientID, doctorID uint) *entity.Appointment {
	t.Helper()
	appointment := &entity.Appointment{
		PatientID:       patientID,
		DoctorID:        doctorID,
		AppointmentDate: fixedNow.Add(48 * time.Hour),
		Status:          entity.AppointmentStatusScheduled,
	}
	require.NoError(t, f.store.Appointments().Create(context.Background(), nil, appointment))
	return appointment
}

func (f *fixture) seedMedicalRecord(t *testing.T, patientID, doctorID uint) *entity.MedicalRecord {
	t.Helper()
	record := &entity.MedicalRecord{
		PatientID: patientID,
		DoctorID:  doctorID,
		VisitDate: fixedNow.Add(-24 * time.Hour),
		Diagnosis: "Seasonal flu",
		Treatment: "Rest and fluids",
	}
	require.NoError(t, f.store.MedicalRecords().Create(context.Background(), nil, record))
	return record
}

func requireKind(t *testing.T, err error, kind apperror.Kind) *apperror.Error {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperror.As(err)
	require.True(t, ok, "expected *apperror.Error, got %T", err)
	require.Equal(t, kind, appErr.Kind, appErr.Error())
	return appErr
}

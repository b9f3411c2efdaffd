//go:build integration

package repository

import (
	"context"
	"testing"
	"time"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/infrastructure/database"
	"hospital-management-api/pkg/apperror"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("hospital_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = container.Terminate(context.Background())
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := database.Open(dsn, logger.Silent)
	require.NoError(t, err)
	log, _ := logtest.NewNullLogger()
	require.NoError(t, database.Migrate(db, log))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func requireConflict(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err), err.Error())
}

func TestRepositoriesAgainstPostgres(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	doctors := NewDoctorRepository()
	departments := NewDepartmentRepository()
	patients := NewPatientRepository()
	appointments := NewAppointmentRepository()
	records := NewMedicalRecordRepository()
	users := NewUserRepository()
	auditLogs := NewAuditLogRepository()

	contact := "+62-11"
	head := &entity.Doctor{Name: "Dr. Head", Specialization: "Cardiology", Contact: &contact}
	require.NoError(t, doctors.Create(ctx, db, head))

	t.Run("doctor contact is unique", func(t *testing.T) {
		dup := &entity.Doctor{Name: "Dr. Dup", Specialization: "Cardiology", Contact: &contact}
		requireConflict(t, doctors.Create(ctx, db, dup))
	})

	dept := &entity.Department{Name: "Cardiology", Specialty: "Heart", HeadDoctorID: &head.ID}
	require.NoError(t, departments.Create(ctx, db, dept))
	head.DepartmentID = &dept.ID
	require.NoError(t, doctors.Update(ctx, db, head))

	t.Run("department counts its doctors", func(t *testing.T) {
		got, err := departments.FindByID(ctx, db, dept.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.EqualValues(t, 1, got.DoctorCount)
		require.NotNil(t, got.HeadDoctor)
		assert.Equal(t, "Dr. Head", got.HeadDoctor.Name)
	})

	t.Run("department name is unique", func(t *testing.T) {
		requireConflict(t, departments.Create(ctx, db, &entity.Department{Name: "Cardiology", Specialty: "Other"}))
	})

	t.Run("doctor heads at most one department", func(t *testing.T) {
		requireConflict(t, departments.Create(ctx, db, &entity.Department{Name: "Neurology", Specialty: "Brain", HeadDoctorID: &head.ID}))
	})

	admitted := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	age, ward := 41, 4
	patient, err := entity.NewPatient(entity.Patient{
		Name:          "Jane Doe",
		Age:           &age,
		Gender:        entity.GenderFemale,
		ContactNumber: "081234567890",
		Inpatient:     entity.InpatientInfo{AdmissionDate: &admitted, WardNumber: &ward},
	}, entity.PatientTypeInpatient)
	require.NoError(t, err)
	require.NoError(t, patients.Create(ctx, db, patient))

	t.Run("patient contact is unique", func(t *testing.T) {
		dup := &entity.Patient{Type: entity.PatientTypePatient, Name: "John", Age: &age, Gender: entity.GenderMale, ContactNumber: "081234567890"}
		requireConflict(t, patients.Create(ctx, db, dup))
	})

	t.Run("patient variant round trips", func(t *testing.T) {
		got, err := patients.FindByID(ctx, db, patient.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, entity.PatientTypeInpatient, got.Type)
		require.NotNil(t, got.Inpatient.WardNumber)
		assert.Equal(t, 4, *got.Inpatient.WardNumber)

		list, err := patients.FindAll(ctx, db, entity.PatientFilter{Type: entity.PatientTypeOutpatient})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	appointment := &entity.Appointment{
		PatientID:       patient.ID,
		DoctorID:        head.ID,
		AppointmentDate: time.Date(2030, 1, 2, 10, 0, 0, 0, time.UTC),
		Status:          entity.AppointmentStatusScheduled,
	}
	require.NoError(t, appointments.Create(ctx, db, appointment))

	t.Run("appointment foreign keys are enforced", func(t *testing.T) {
		bad := &entity.Appointment{PatientID: 9999, DoctorID: head.ID, AppointmentDate: appointment.AppointmentDate, Status: entity.AppointmentStatusScheduled}
		requireConflict(t, appointments.Create(ctx, db, bad))
	})

	t.Run("appointment filters", func(t *testing.T) {
		list, err := appointments.FindAll(ctx, db, entity.AppointmentFilter{PatientID: &patient.ID, Status: entity.AppointmentStatusScheduled})
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.True(t, list[0].AppointmentDate.Equal(appointment.AppointmentDate))

		list, err = appointments.FindAll(ctx, db, entity.AppointmentFilter{Status: entity.AppointmentStatusCanceled})
		require.NoError(t, err)
		assert.Empty(t, list)
	})

	record := &entity.MedicalRecord{
		PatientID: patient.ID,
		DoctorID:  head.ID,
		VisitDate: time.Date(2025, 5, 2, 8, 0, 0, 0, time.UTC),
		Diagnosis: "Seasonal flu",
		Treatment: "Rest and fluids",
	}
	require.NoError(t, records.Create(ctx, db, record))

	user := &entity.User{Username: "jane", Password: "hash", Role: entity.RolePatient, PatientID: &patient.ID}
	require.NoError(t, users.Create(ctx, db, user))

	t.Run("username is unique", func(t *testing.T) {
		requireConflict(t, users.Create(ctx, db, &entity.User{Username: "jane", Password: "hash", Role: entity.RolePatient}))
	})

	t.Run("audit log stores metadata", func(t *testing.T) {
		entry := &entity.AuditLog{UserID: &user.ID, Action: entity.AuditActionPatientCreate, Metadata: map[string]interface{}{"entity": "patient"}}
		require.NoError(t, auditLogs.Create(ctx, db, entry))

		got, err := auditLogs.FindByID(ctx, db, entry.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "patient", got.Metadata["entity"])
	})

	t.Run("deleting a patient cascades and unlinks", func(t *testing.T) {
		affected, err := patients.Delete(ctx, db, patient.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)

		gotAppointment, err := appointments.FindByID(ctx, db, appointment.ID)
		require.NoError(t, err)
		assert.Nil(t, gotAppointment)

		gotRecord, err := records.FindByID(ctx, db, record.ID)
		require.NoError(t, err)
		assert.Nil(t, gotRecord)

		gotUser, err := users.FindByID(ctx, db, user.ID)
		require.NoError(t, err)
		require.NotNil(t, gotUser)
		assert.Nil(t, gotUser.PatientID)
	})

	t.Run("deleting a head doctor clears the department head", func(t *testing.T) {
		affected, err := doctors.Delete(ctx, db, head.ID)
		require.NoError(t, err)
		assert.EqualValues(t, 1, affected)

		got, err := departments.FindByID(ctx, db, dept.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Nil(t, got.HeadDoctorID)
		assert.EqualValues(t, 0, got.DoctorCount)
	})

	t.Run("deleting a missing row affects nothing", func(t *testing.T) {
		affected, err := departments.Delete(ctx, db, 9999)
		require.NoError(t, err)
		assert.Zero(t, affected)
	})
}

func TestTransactorRollsBack(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	txm := NewTransactor(db)
	doctors := NewDoctorRepository()

	err := txm.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if err := doctors.Create(ctx, tx, &entity.Doctor{Name: "Dr. Gone", Specialization: "Oncology"}); err != nil {
			return err
		}
		return apperror.Conflict("abort")
	})
	require.Error(t, err)

	list, err := doctors.FindAll(ctx, txm.Conn(ctx), entity.DoctorFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

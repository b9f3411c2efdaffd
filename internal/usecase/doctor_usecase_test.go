package usecase

import (
	"context"
	"testing"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDoctorUsecase(f *fixture) DoctorUsecase {
	return NewDoctorUsecase(f.txm, f.log, f.matrix, f.store.Doctors(), f.store.Departments(), f.audit)
}

func TestCreateDoctor(t *testing.T) {
	f := newFixture(t)
	uc := newDoctorUsecase(f)
	head := f.seedDoctor(t, "Dr. House", nil)
	department := f.seedDepartment(t, "Cardiology", head.ID)

	resp, err := uc.CreateDoctor(context.Background(), managerActor(), &dto.CreateDoctorRequest{
		Name:           "Dr. Cuddy",
		Specialization: "Endocrinology",
		Contact:        ptr(" cuddy@ppth.org "),
		DepartmentID:   &department.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "cuddy@ppth.org", *resp.Contact)
	require.NotNil(t, resp.Department)
	assert.Equal(t, "Cardiology", resp.Department.Name)

	logs := f.store.AuditLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditActionDoctorCreate, logs[0].Action)
}

func TestCreateDoctorErrors(t *testing.T) {
	f := newFixture(t)
	uc := newDoctorUsecase(f)
	f.seedDoctor(t, "Dr. House", nil)
	existing := &entity.Doctor{Name: "Dr. Taken", Specialization: "Surgery", Contact: ptr("taken@ppth.org")}
	require.NoError(t, f.store.Doctors().Create(context.Background(), nil, existing))

	_, err := uc.CreateDoctor(context.Background(), adminActor(), &dto.CreateDoctorRequest{Name: "D", Specialization: "Surgery"})
	appErr := requireKind(t, err, apperror.KindValidation)
	assert.Equal(t, "name", appErr.Field)

	_, err = uc.CreateDoctor(context.Background(), adminActor(), &dto.CreateDoctorRequest{Name: "Dr. Chase", Specialization: " "})
	appErr = requireKind(t, err, apperror.KindValidation)
	assert.Equal(t, "specialization", appErr.Field)

	_, err = uc.CreateDoctor(context.Background(), adminActor(), &dto.CreateDoctorRequest{Name: "Dr. Chase", Specialization: "Surgery", Contact: ptr("123")})
	appErr = requireKind(t, err, apperror.KindValidation)
	assert.Equal(t, "contact", appErr.Field)

	_, err = uc.CreateDoctor(context.Background(), adminActor(), &dto.CreateDoctorRequest{Name: "Dr. Chase", Specialization: "Surgery", DepartmentID: ptr(uint(404))})
	assert.ErrorIs(t, err, ErrDepartmentNotFound)

	_, err = uc.CreateDoctor(context.Background(), adminActor(), &dto.CreateDoctorRequest{Name: "Dr. Chase", Specialization: "Surgery", Contact: ptr("taken@ppth.org")})
	requireKind(t, err, apperror.KindConflict)

	_, err = uc.CreateDoctor(context.Background(), doctorActor(1), &dto.CreateDoctorRequest{Name: "Dr. Chase", Specialization: "Surgery"})
	requireKind(t, err, apperror.KindForbidden)

	assert.Equal(t, 2, f.store.Counts()["doctors"])
	assert.Empty(t, f.store.AuditLogs())
}

func TestGetAllDoctors(t *testing.T) {
	f := newFixture(t)
	uc := newDoctorUsecase(f)
	head := f.seedDoctor(t, "Dr. House", nil)
	department := f.seedDepartment(t, "Cardiology", head.ID)
	f.seedDoctor(t, "Dr. Member", &department.ID)

	all, err := uc.GetAllDoctors(context.Background(), doctorActor(head.ID), entity.DoctorFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)

	members, err := uc.GetAllDoctors(context.Background(), adminActor(), entity.DoctorFilter{DepartmentID: &department.ID})
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Dr. Member", members[0].Name)

	_, err = uc.GetAllDoctors(context.Background(), patientActor(1), entity.DoctorFilter{})
	requireKind(t, err, apperror.KindForbidden)
}

func TestGetDoctor(t *testing.T) {
	f := newFixture(t)
	uc := newDoctorUsecase(f)
	doctor := f.seedDoctor(t, "Dr. House", nil)

	resp, err := uc.GetDoctor(context.Background(), patientActor(1), doctor.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dr. House", resp.Name)
	assert.Nil(t, resp.Department)

	_, err = uc.GetDoctor(context.Background(), patientActor(1), 404)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestUpdateDoctor(t *testing.T) {
	f := newFixture(t)
	uc := newDoctorUsecase(f)
	head := f.seedDoctor(t, "Dr. House", nil)
	department := f.seedDepartment(t, "Cardiology", head.ID)
	doctor := f.seedDoctor(t, "Dr. Chase", nil)

	resp, err := uc.UpdateDoctor(context.Background(), adminActor(), doctor.ID, &dto.UpdateDoctorRequest{
		Specialization: ptr("Intensive care"),
		DepartmentID:   &department.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, "Dr. Chase", resp.Name)
	assert.Equal(t, "Intensive care", resp.Specialization)
	assert.Equal(t, department.ID, *resp.DepartmentID)

	_, err = uc.UpdateDoctor(context.Background(), adminActor(), 404, &dto.UpdateDoctorRequest{Name: ptr("Dr. Nobody")})
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	_, err = uc.UpdateDoctor(context.Background(), adminActor(), doctor.ID, &dto.UpdateDoctorRequest{DepartmentID: ptr(uint(404))})
	assert.ErrorIs(t, err, ErrDepartmentNotFound)

	_, err = uc.UpdateDoctor(context.Background(), doctorActor(doctor.ID), doctor.ID, &dto.UpdateDoctorRequest{Name: ptr("Dr. Me")})
	requireKind(t, err, apperror.KindForbidden)
}

func TestDeleteDoctorCascades(t *testing.T) {
	f := newFixture(t)
	uc := newDoctorUsecase(f)
	doctor := f.seedDoctor(t, "Dr. House", nil)
	department := f.seedDepartment(t, "Cardiology", doctor.ID)
	patient := f.seedPatient(t, "Jane", "0811111111")
	f.seedAppointment(t, patient.ID, doctor.ID)
	f.seedMedicalRecord(t, patient.ID, doctor.ID)

	require.NoError(t, uc.DeleteDoctor(context.Background(), adminActor(), doctor.ID))

	counts := f.store.Counts()
	assert.Equal(t, 0, counts["doctors"])
	assert.Equal(t, 0, counts["appointments"])
	assert.Equal(t, 0, counts["medical_records"])
	assert.Equal(t, 1, counts["patients"])

	stored, err := f.store.Departments().FindByID(context.Background(), nil, department.ID)
	require.NoError(t, err)
	assert.Nil(t, stored.HeadDoctorID)

	err = uc.DeleteDoctor(context.Background(), adminActor(), doctor.ID)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

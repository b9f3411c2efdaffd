package converter

import (
	"testing"
	"time"

	"hospital-management-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatientToResponseEmitsOwnVariantOnly(t *testing.T) {
	admitted := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	ward := 12
	p := &entity.Patient{
		ID:            4,
		Type:          entity.PatientTypeInpatient,
		Name:          "Amina",
		Gender:        "female",
		ContactNumber: "0712345678",
		Inpatient:     entity.InpatientInfo{AdmissionDate: &admitted, WardNumber: &ward},
	}

	resp := PatientToResponse(p)
	require.NotNil(t, resp)
	assert.Equal(t, "inpatient", resp.Type)
	require.NotNil(t, resp.AdmissionDate)
	assert.Equal(t, "2024-06-01", *resp.AdmissionDate)
	assert.Equal(t, &ward, resp.WardNumber)
	assert.Nil(t, resp.LastVisitDate)
	assert.Nil(t, resp.DateOfBirth)
}

func TestDepartmentToResponse(t *testing.T) {
	headID := uint(2)
	d := &entity.Department{
		ID:           1,
		Name:         "Cardiology",
		Specialty:    "Heart",
		HeadDoctorID: &headID,
		DoctorCount:  3,
		HeadDoctor:   &entity.Doctor{ID: 2, Name: "Dr. Otieno"},
	}

	resp := DepartmentToResponse(d)
	require.NotNil(t, resp.HeadDoctorName)
	assert.Equal(t, "Dr. Otieno", *resp.HeadDoctorName)
	assert.Equal(t, int64(3), resp.NumDoctorsInDept)

	d.HeadDoctor = nil
	assert.Nil(t, DepartmentToResponse(d).HeadDoctorName)
}

func TestAppointmentToResponseFormatsNaiveDate(t *testing.T) {
	a := &entity.Appointment{
		ID:              9,
		PatientID:       1,
		DoctorID:        2,
		AppointmentDate: time.Date(2030, 1, 2, 9, 30, 0, 0, time.UTC),
		Status:          entity.AppointmentStatusScheduled,
		Patient:         &entity.Patient{Name: "Amina"},
		Doctor:          &entity.Doctor{Name: "Dr. Otieno"},
	}

	resp := AppointmentToResponse(a)
	assert.Equal(t, "2030-01-02T09:30:00", resp.AppointmentDate)
	assert.Equal(t, "Amina", resp.PatientName)
	assert.Equal(t, "Dr. Otieno", resp.DoctorName)
	assert.Equal(t, "Scheduled", resp.Status)
}

func TestSliceConvertersKeepOrder(t *testing.T) {
	doctors := []entity.Doctor{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}
	resp := DoctorsToResponses(doctors)
	require.Len(t, resp, 2)
	assert.Equal(t, uint(1), resp[0].ID)
	assert.Equal(t, "B", resp[1].Name)

	assert.Empty(t, MedicalRecordsToResponses(nil))
	assert.NotNil(t, MedicalRecordsToResponses(nil))
}

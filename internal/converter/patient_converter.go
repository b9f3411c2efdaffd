package converter

import (
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO. Only the
// fields of the patient's own variant are emitted.
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	resp := &dto.PatientResponse{
		ID:            patient.ID,
		Type:          string(patient.Type),
		Name:          patient.Name,
		Age:           patient.Age,
		DateOfBirth:   formatDate(patient.DateOfBirth),
		Gender:        patient.Gender,
		ContactNumber: patient.ContactNumber,
		CreatedAt:     patient.CreatedAt,
		UpdatedAt:     patient.UpdatedAt,
	}

	switch patient.Type {
	case entity.PatientTypeInpatient:
		resp.AdmissionDate = formatDate(patient.Inpatient.AdmissionDate)
		resp.WardNumber = patient.Inpatient.WardNumber
	case entity.PatientTypeOutpatient:
		resp.LastVisitDate = formatDate(patient.Outpatient.LastVisitDate)
	}
	return resp
}

// PatientsToResponses converts a slice of Patient entities to slice of PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}

package converter

import (
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
)

// MedicalRecordToResponse converts a MedicalRecord entity to MedicalRecordResponse DTO
func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if record == nil {
		return nil
	}

	resp := &dto.MedicalRecordResponse{
		ID:        record.ID,
		PatientID: record.PatientID,
		DoctorID:  record.DoctorID,
		VisitDate: formatDateTime(record.VisitDate),
		Diagnosis: record.Diagnosis,
		Treatment: record.Treatment,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}
	if record.Patient != nil {
		resp.PatientName = record.Patient.Name
	}
	if record.Doctor != nil {
		resp.DoctorName = record.Doctor.Name
	}
	return resp
}

// MedicalRecordsToResponses converts a slice of MedicalRecord entities to slice of MedicalRecordResponse DTOs
func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i := range records {
		responses[i] = *MedicalRecordToResponse(&records[i])
	}
	return responses
}

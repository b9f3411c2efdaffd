package handler

import (
	"net/http"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/response"
	"hospital-management-api/pkg/validator"

	"github.com/sirupsen/logrus"
)

type MedicalRecordHandler struct {
	recordUsecase usecase.MedicalRecordUsecase
	validator     *validator.CustomValidator
	log           *logrus.Logger
}

func NewMedicalRecordHandler(recordUsecase usecase.MedicalRecordUsecase, validator *validator.CustomValidator, log *logrus.Logger) *MedicalRecordHandler {
	return &MedicalRecordHandler{
		recordUsecase: recordUsecase,
		validator:     validator,
		log:           log,
	}
}

func (h *MedicalRecordHandler) CreateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req dto.CreateMedicalRecordRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	record, err := h.recordUsecase.CreateMedicalRecord(r.Context(), actor, &req)
	if err != nil {
		response.FromError(w, h.log, err)
		return
	}

	response.JSON(w, http.StatusCreated, record)
}

func (h *MedicalRecordHandler) GetMedicalRecord(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "medical record")
	if !ok {
		return
	}

	record, err := h.recordUsecase.GetMedicalRecord(r.Context(), actor, id)
	if err != nil {
		response.FromError(w, h.log, err)
		return
	}

	response.JSON(w, http.StatusOK, record)
}

func (h *MedicalRecordHandler) GetAllMedicalRecords(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	patientID, ok := queryID(w, r, "patient_id")
	if !ok {
		return
	}
	doctorID, ok := queryID(w, r, "doctor_id")
	if !ok {
		return
	}

	records, err := h.recordUsecase.GetAllMedicalRecords(r.Context(), actor, entity.MedicalRecordFilter{PatientID: patientID, DoctorID: doctorID})
	if err != nil {
		response.FromError(w, h.log, err)
		return
	}

	response.JSON(w, http.StatusOK, records)
}

func (h *MedicalRecordHandler) UpdateMedicalRecord(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "medical record")
	if !ok {
		return
	}

	var req dto.UpdateMedicalRecordRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	record, err := h.recordUsecase.UpdateMedicalRecord(r.Context(), actor, id, &req)
	if err != nil {
		response.FromError(w, h.log, err)
		return
	}

	response.JSON(w, http.StatusOK, record)
}

func (h *MedicalRecordHandler) DeleteMedicalRecord(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "medical record")
	if !ok {
		return
	}

	if err := h.recordUsecase.DeleteMedicalRecord(r.Context(), actor, id); err != nil {
		response.FromError(w, h.log, err)
		return
	}

	response.NoContent(w)
}

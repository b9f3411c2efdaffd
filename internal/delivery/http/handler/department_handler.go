package handler

import (
	"net/http"

	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/response"
	"hospital-management-api/pkg/validator"

	"github.com/sirupsen/logrus"
)

type DepartmentHandler struct {
	departmentUsecase usecase.DepartmentUsecase
	validator         *validator.CustomValidator
	log               *logrus.Logger
}

func NewDepartmentHandler(departmentUsecase usecase.DepartmentUsecase, validator *validator.CustomValidator, log *logrus.Logger) *DepartmentHandler {
	return &DepartmentHandler{
		departmentUsecase: departmentUsecase,
		validator:         validator,
		log:               log,
	}
}

// CreateDepartment handles department creation
// @Summary Create a department
// @Tags Departments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateDepartmentRequest true "Department"
// @Success 201 {object} dto.DepartmentResponse
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /departments [post]
func (h *DepartmentHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	var req dto.CreateDepartmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	department, err := h.departmentUsecase.CreateDepartment(r.Context(), actor, &req)
	if err != nil {
		response.FromError(w, h.log, err)
		return
	}

	response.JSON(w, http.StatusCreated, department)
}

func (h *DepartmentHandler) GetDepartment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "department")
	if !ok {
		return
	}

	department, err := h.departmentUsecase.GetDepartment(r.Context(), actor, id)
	if err != nil {
		response.FromError(w, h.log, err)
		return
	}

	response.JSON(w, http.StatusOK, department)
}

func (h *DepartmentHandler) GetAllDepartments(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}

	departments, err := h.departmentUsecase.GetAllDepartments(r.Context(), actor)
	if err != nil {
		response.FromError(w, h.log, err)
		return
	}

	response.JSON(w, http.StatusOK, departments)
}

func (h *DepartmentHandler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "department")
	if !ok {
		return
	}

	var req dto.UpdateDepartmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	department, err := h.departmentUsecase.UpdateDepartment(r.Context(), actor, id, &req)
	if err != nil {
		response.FromError(w, h.log, err)
		return
	}

	response.JSON(w, http.StatusOK, department)
}

func (h *DepartmentHandler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "department")
	if !ok {
		return
	}

	if err := h.departmentUsecase.DeleteDepartment(r.Context(), actor, id); err != nil {
		response.FromError(w, h.log, err)
		return
	}

	response.NoContent(w)
}

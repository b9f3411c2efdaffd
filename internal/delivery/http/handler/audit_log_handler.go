package handler

import (
	"net/http"
	"strconv"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/usecase"
	"hospital-management-api/pkg/response"

	"github.com/sirupsen/logrus"
)

const defaultAuditLogLimit = 100

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
	log             *logrus.Logger
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase, log *logrus.Logger) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
		log:             log,
	}
}

func (h *AuditLogHandler) GetAuditLog(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "id", "audit log")
	if !ok {
		return
	}

	auditLog, err := h.auditLogUsecase.GetAuditLog(r.Context(), actor, id)
	if err != nil {
		response.FromError(w, h.log, err)
		return
	}

	response.JSON(w, http.StatusOK, auditLog)
}

// GetAllAuditLogs returns the newest entries first; ?action=, ?user_id= and ?limit= narrow the result.
func (h *AuditLogHandler) GetAllAuditLogs(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(w, r)
	if !ok {
		return
	}
	userID, ok := queryID(w, r, "user_id")
	if !ok {
		return
	}

	filter := entity.AuditLogFilter{
		Action: r.URL.Query().Get("action"),
		UserID: userID,
		Limit:  defaultAuditLogLimit,
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit <= 0 {
			response.ValidationError(w, map[string]string{"limit": "limit must be a positive integer"})
			return
		}
		filter.Limit = limit
	}

	auditLogs, err := h.auditLogUsecase.GetAllAuditLogs(r.Context(), actor, filter)
	if err != nil {
		response.FromError(w, h.log, err)
		return
	}

	response.JSON(w, http.StatusOK, auditLogs)
}

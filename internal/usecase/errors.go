package usecase

import (
	"hospital-management-api/internal/domain/access"
	"hospital-management-api/pkg/apperror"
)

var (
	ErrDepartmentNotFound    = apperror.NotFound("department not found")
	ErrDoctorNotFound        = apperror.NotFound("doctor not found")
	ErrHeadDoctorNotFound    = apperror.NotFound("head doctor not found")
	ErrPatientNotFound       = apperror.NotFound("patient not found")
	ErrAppointmentNotFound   = apperror.NotFound("appointment not found")
	ErrMedicalRecordNotFound = apperror.NotFound("medical record not found")
	ErrAuditLogNotFound      = apperror.NotFound("audit log not found")
	ErrUserNotFound          = apperror.NotFound("user not found")

	ErrInvalidCredentials = apperror.Unauthenticated("invalid username or password")
	ErrInvalidToken       = apperror.Unauthenticated("invalid or expired token")
	ErrTokenRevoked       = apperror.Unauthenticated("token has been revoked")
)

// auditUserID returns the actor's user id for the audit trail, nil for anonymous calls.
func auditUserID(actor access.Actor) *uint {
	if actor.UserID == 0 {
		return nil
	}
	id := actor.UserID
	return &id
}

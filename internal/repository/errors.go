package repository

import (
	"errors"
	"strings"

	"hospital-management-api/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// Unique indexes are named idx_<table>_<column> by gorm.
var uniqueViolationMessages = map[string]string{
	"idx_users_username":             "username already exists",
	"idx_users_doctor_id":            "doctor profile is already linked to another user",
	"idx_users_patient_id":           "patient profile is already linked to another user",
	"idx_patients_contact_number":    "contact number already exists",
	"idx_doctors_contact":            "doctor contact already exists",
	"idx_departments_name":           "department name already exists",
	"idx_departments_head_doctor_id": "doctor already heads another department",
}

// translateError maps constraint violations to conflict errors and leaves
// everything else untouched.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case pgUniqueViolation:
		msg, ok := uniqueViolationMessages[strings.ToLower(pgErr.ConstraintName)]
		if !ok {
			msg = "resource already exists"
		}
		return apperror.Wrap(apperror.Conflict(msg), err)
	case pgForeignKeyViolation:
		return apperror.Wrap(apperror.Conflict("referenced resource does not exist or is still in use"), err)
	}
	return err
}

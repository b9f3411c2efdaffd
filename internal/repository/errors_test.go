package repository

import (
	"errors"
	"fmt"
	"testing"

	"hospital-management-api/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))

	plain := errors.New("connection reset")
	assert.Same(t, plain, translateError(plain))

	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "idx_departments_name"})
	err := translateError(dup)
	appErr, ok := apperror.As(err)
	require.True(t, ok)
	assert.Equal(t, apperror.KindConflict, appErr.Kind)
	assert.Equal(t, "department name already exists", appErr.Message)
	assert.ErrorAs(t, err, new(*pgconn.PgError))

	unknown := translateError(&pgconn.PgError{Code: "23505", ConstraintName: "something_else"})
	assert.True(t, apperror.IsConflict(unknown))

	fk := translateError(&pgconn.PgError{Code: "23503", ConstraintName: "fk_appointments_doctor"})
	assert.True(t, apperror.IsConflict(fk))

	other := &pgconn.PgError{Code: "42P01"}
	assert.Equal(t, error(other), translateError(other))
}

package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Username  string `json:"username" validate:"required,max=10"`
	Password  string `json:"password" validate:"required,min=6"`
	PatientID *uint  `json:"patient_id" validate:"omitempty,gt=0"`
}

func TestFormatValidationErrorsUsesJSONNames(t *testing.T) {
	v := NewValidator()
	zero := uint(0)

	err := v.Validate(sampleRequest{Password: "abc", PatientID: &zero})
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	assert.Equal(t, "username is required", errs["username"])
	assert.Equal(t, "password must be at least 6 characters", errs["password"])
	assert.Equal(t, "patient_id must be greater than 0", errs["patient_id"])
}

func TestValidatePasses(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(sampleRequest{Username: "alice", Password: "secret123"}))
	assert.Empty(t, v.FormatValidationErrors(nil))
}

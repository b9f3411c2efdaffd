package access

import (
	"testing"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func u(v uint) *uint { return &v }

func TestMatrixCoarseGate(t *testing.T) {
	m := DefaultMatrix()

	tests := []struct {
		role    entity.Role
		res     Resource
		op      Operation
		allowed bool
	}{
		{entity.RoleAdmin, Departments, OpDelete, true},
		{entity.RoleDepartmentManager, Departments, OpDelete, false},
		{entity.RolePatient, Departments, OpDelete, false},
		{entity.RolePatient, Departments, OpList, true},
		{entity.RoleDepartmentManager, Departments, OpUpdate, true},
		{entity.RolePatient, Doctors, OpList, false},
		{entity.RolePatient, Doctors, OpGet, true},
		{entity.RoleDoctor, Doctors, OpCreate, false},
		{entity.RolePatient, Patients, OpList, false},
		{entity.RoleDoctor, Patients, OpCreate, true},
		{entity.RoleDoctor, Patients, OpDelete, false},
		{entity.RolePatient, Appointments, OpCreate, true},
		{entity.RolePatient, Appointments, OpUpdate, false},
		{entity.RoleDepartmentManager, Appointments, OpDelete, true},
		{entity.RoleDoctor, Appointments, OpDelete, false},
		{entity.RoleDepartmentManager, MedicalRecords, OpCreate, false},
		{entity.RoleDoctor, MedicalRecords, OpUpdate, true},
		{entity.RoleDoctor, MedicalRecords, OpDelete, false},
		{entity.RoleAdmin, AuditLogs, OpList, true},
		{entity.RoleDepartmentManager, AuditLogs, OpList, false},
		{entity.RoleAdmin, AuditLogs, OpDelete, false},
		{entity.RoleAdmin, Users, OpCreate, true},
		{entity.RoleDepartmentManager, Users, OpCreate, false},
		{entity.Role("nurse"), Departments, OpList, false},
		{entity.RoleAdmin, Resource("billing"), OpList, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.role)+"/"+string(tt.res)+"/"+string(tt.op), func(t *testing.T) {
			actor := Actor{Role: tt.role}
			err := m.Authorize(actor, tt.res, tt.op)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperror.IsForbidden(err))
			}
		})
	}
}

func TestAuthorizeNamesTheDeniedOperation(t *testing.T) {
	err := DefaultMatrix().Authorize(Actor{Role: entity.RolePatient}, Departments, OpDelete)

	appErr, ok := apperror.As(err)
	assert.True(t, ok)
	assert.Equal(t, `role "patient" may not delete departments`, appErr.Message)
}

func TestAuthorizeOwnership(t *testing.T) {
	m := DefaultMatrix()
	own := Ownership{PatientID: u(7), DoctorID: u(3)}

	tests := []struct {
		name    string
		actor   Actor
		op      Operation
		own     Ownership
		allowed bool
	}{
		{"patient owns", Actor{Role: entity.RolePatient, PatientID: u(7)}, OpGet, own, true},
		{"patient other", Actor{Role: entity.RolePatient, PatientID: u(8)}, OpGet, own, false},
		{"patient without profile", Actor{Role: entity.RolePatient}, OpGet, own, false},
		{"doctor owns", Actor{Role: entity.RoleDoctor, DoctorID: u(3)}, OpUpdate, own, true},
		{"doctor other", Actor{Role: entity.RoleDoctor, DoctorID: u(4)}, OpUpdate, own, false},
		{"doctor on patient row", Actor{Role: entity.RoleDoctor, DoctorID: u(4)}, OpGet, Ownership{PatientID: u(7)}, true},
		{"admin unrestricted", Actor{Role: entity.RoleAdmin}, OpGet, own, true},
		{"manager unrestricted", Actor{Role: entity.RoleDepartmentManager}, OpUpdate, own, true},
		{"delete not row gated", Actor{Role: entity.RolePatient, PatientID: u(8)}, OpDelete, own, true},
		{"patient creates for self", Actor{Role: entity.RolePatient, PatientID: u(7)}, OpCreate, own, true},
		{"patient creates for other", Actor{Role: entity.RolePatient, PatientID: u(8)}, OpCreate, own, false},
		{"doctor creates under other doctor", Actor{Role: entity.RoleDoctor, DoctorID: u(4)}, OpCreate, own, false},
		{"list not row gated", Actor{Role: entity.RolePatient, PatientID: u(8)}, OpList, own, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := m.AuthorizeOwnership(tt.actor, tt.op, tt.own)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.True(t, apperror.IsForbidden(err))
			}
		})
	}
}

func TestListScope(t *testing.T) {
	m := DefaultMatrix()

	s := m.ListScope(Actor{Role: entity.RolePatient, PatientID: u(5)}, Appointments)
	assert.Equal(t, Scope{PatientID: u(5)}, s)

	s = m.ListScope(Actor{Role: entity.RoleDoctor, DoctorID: u(2)}, MedicalRecords)
	assert.Equal(t, Scope{DoctorID: u(2)}, s)

	s = m.ListScope(Actor{Role: entity.RolePatient}, MedicalRecords)
	assert.True(t, s.None)

	s = m.ListScope(Actor{Role: entity.RoleAdmin}, Appointments)
	assert.Equal(t, Scope{}, s)

	s = m.ListScope(Actor{Role: entity.RoleDoctor, DoctorID: u(2)}, Departments)
	assert.Equal(t, Scope{}, s)
}

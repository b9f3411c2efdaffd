// Package access implements the authorization matrix: a coarse
// role-by-resource-by-operation gate and a row-level ownership gate for
// patient and doctor actors.
package access

import (
	"fmt"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/pkg/apperror"
)

type Resource string

const (
	Departments    Resource = "departments"
	Doctors        Resource = "doctors"
	Patients       Resource = "patients"
	Appointments   Resource = "appointments"
	MedicalRecords Resource = "medical_records"
	AuditLogs      Resource = "audit_logs"
	Users          Resource = "users"
)

type Operation string

const (
	OpList   Operation = "list"
	OpGet    Operation = "get"
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
)

// Actor is the authenticated caller.
type Actor struct {
	UserID    uint
	Username  string
	Role      entity.Role
	DoctorID  *uint
	PatientID *uint
}

// Ownership lists the owner dimensions of a loaded resource. A nil dimension
// is not checked.
type Ownership struct {
	PatientID *uint
	DoctorID  *uint
}

// Policy grants an operation on a resource to a set of roles.
type Policy struct {
	Resource     Resource
	Operation    Operation
	AllowedRoles []entity.Role
}

// Matrix is immutable after construction and safe for concurrent use.
type Matrix struct {
	grants map[Resource]map[Operation]map[entity.Role]bool
}

func NewMatrix(policies []Policy) *Matrix {
	m := &Matrix{grants: make(map[Resource]map[Operation]map[entity.Role]bool)}
	for _, p := range policies {
		ops, ok := m.grants[p.Resource]
		if !ok {
			ops = make(map[Operation]map[entity.Role]bool)
			m.grants[p.Resource] = ops
		}
		roles, ok := ops[p.Operation]
		if !ok {
			roles = make(map[entity.Role]bool)
			ops[p.Operation] = roles
		}
		for _, r := range p.AllowedRoles {
			roles[r] = true
		}
	}
	return m
}

var (
	admin   = entity.RoleAdmin
	manager = entity.RoleDepartmentManager
	doctor  = entity.RoleDoctor
	patient = entity.RolePatient
)

func grant(res Resource, op Operation, roles ...entity.Role) Policy {
	return Policy{Resource: res, Operation: op, AllowedRoles: roles}
}

// DefaultPolicies returns the hospital role matrix.
func DefaultPolicies() []Policy {
	return []Policy{
		grant(Departments, OpList, admin, manager, doctor, patient),
		grant(Departments, OpGet, admin, manager, doctor, patient),
		grant(Departments, OpCreate, admin, manager),
		grant(Departments, OpUpdate, admin, manager),
		grant(Departments, OpDelete, admin),

		grant(Doctors, OpList, admin, manager, doctor),
		grant(Doctors, OpGet, admin, manager, doctor, patient),
		grant(Doctors, OpCreate, admin, manager),
		grant(Doctors, OpUpdate, admin, manager),
		grant(Doctors, OpDelete, admin),

		grant(Patients, OpList, admin, manager, doctor),
		grant(Patients, OpGet, admin, manager, doctor, patient),
		grant(Patients, OpCreate, admin, manager, doctor),
		grant(Patients, OpUpdate, admin, manager, doctor),
		grant(Patients, OpDelete, admin),

		grant(Appointments, OpList, admin, manager, doctor, patient),
		grant(Appointments, OpGet, admin, manager, doctor, patient),
		grant(Appointments, OpCreate, admin, manager, doctor, patient),
		grant(Appointments, OpUpdate, admin, manager, doctor),
		grant(Appointments, OpDelete, admin, manager),

		grant(MedicalRecords, OpList, admin, manager, doctor, patient),
		grant(MedicalRecords, OpGet, admin, manager, doctor, patient),
		grant(MedicalRecords, OpCreate, admin, doctor),
		grant(MedicalRecords, OpUpdate, admin, doctor),
		grant(MedicalRecords, OpDelete, admin),

		grant(AuditLogs, OpList, admin),
		grant(AuditLogs, OpGet, admin),

		grant(Users, OpCreate, admin),
	}
}

func DefaultMatrix() *Matrix {
	return NewMatrix(DefaultPolicies())
}

// Authorize checks the coarse gate. Unknown resources and operations are denied.
func (m *Matrix) Authorize(actor Actor, res Resource, op Operation) error {
	if !m.grants[res][op][actor.Role] {
		return apperror.Forbidden(fmt.Sprintf("role %q may not %s %s", actor.Role, op, res))
	}
	return nil
}

// AuthorizeOwnership applies the row-level gate to get, update and create.
// For get it is checked against the loaded row; for create and update against
// the owners the row will have once written. Patients must own the patient
// dimension, doctors the doctor dimension. An actor without a linked profile
// owns nothing.
func (m *Matrix) AuthorizeOwnership(actor Actor, op Operation, own Ownership) error {
	if op != OpGet && op != OpUpdate && op != OpCreate {
		return nil
	}
	switch actor.Role {
	case entity.RolePatient:
		if own.PatientID != nil && !sameID(actor.PatientID, *own.PatientID) {
			return apperror.Forbidden("you can only access your own records")
		}
	case entity.RoleDoctor:
		if own.DoctorID != nil && !sameID(actor.DoctorID, *own.DoctorID) {
			return apperror.Forbidden("you can only access your own records")
		}
	}
	return nil
}

// Scope restricts a list query to the rows an actor owns.
type Scope struct {
	PatientID *uint
	DoctorID  *uint
	// None is set when the actor owns nothing, so the list is empty.
	None bool
}

// ListScope returns the ownership restriction for listing res. Only
// appointments and medical records are scoped.
func (m *Matrix) ListScope(actor Actor, res Resource) Scope {
	if res != Appointments && res != MedicalRecords {
		return Scope{}
	}
	switch actor.Role {
	case entity.RolePatient:
		if actor.PatientID == nil {
			return Scope{None: true}
		}
		return Scope{PatientID: actor.PatientID}
	case entity.RoleDoctor:
		if actor.DoctorID == nil {
			return Scope{None: true}
		}
		return Scope{DoctorID: actor.DoctorID}
	}
	return Scope{}
}

func sameID(have *uint, want uint) bool {
	return have != nil && *have == want
}

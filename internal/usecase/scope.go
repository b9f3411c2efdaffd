package usecase

import "hospital-management-api/internal/domain/access"

// narrow intersects a requested owner filter with the actor's scope. ok is
// false when the two cannot overlap.
func narrow(requested, scoped *uint) (result *uint, ok bool) {
	if scoped == nil {
		return requested, true
	}
	if requested != nil && *requested != *scoped {
		return nil, false
	}
	return scoped, true
}

// scopeOwners applies scope to a patient/doctor filter pair.
func scopeOwners(scope access.Scope, patientID, doctorID *uint) (*uint, *uint, bool) {
	if scope.None {
		return nil, nil, false
	}
	p, ok := narrow(patientID, scope.PatientID)
	if !ok {
		return nil, nil, false
	}
	d, ok := narrow(doctorID, scope.DoctorID)
	if !ok {
		return nil, nil, false
	}
	return p, d, true
}

package entity

// Domain-level filters for list queries.
// Used by repository layer to avoid coupling with delivery DTOs.

type DoctorFilter struct {
	DepartmentID *uint
}

type PatientFilter struct {
	Type PatientType
}

type AppointmentFilter struct {
	PatientID *uint
	DoctorID  *uint
	Status    AppointmentStatus
}

type MedicalRecordFilter struct {
	PatientID *uint
	DoctorID  *uint
}

type AuditLogFilter struct {
	Action string
	UserID *uint
	Limit  int
}

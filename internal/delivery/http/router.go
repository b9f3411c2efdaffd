package http

import (
	"context"
	"net/http"

	"hospital-management-api/internal/delivery/http/handler"
	"hospital-management-api/internal/delivery/http/middleware"
	"hospital-management-api/internal/domain/access"
	"hospital-management-api/pkg/response"

	"github.com/gorilla/mux"
)

// HealthChecker reports whether the backing database is reachable.
type HealthChecker func(ctx context.Context) error

type Router struct {
	router               *mux.Router
	matrix               *access.Matrix
	health               HealthChecker
	authHandler          *handler.AuthHandler
	departmentHandler    *handler.DepartmentHandler
	doctorHandler        *handler.DoctorHandler
	patientHandler       *handler.PatientHandler
	appointmentHandler   *handler.AppointmentHandler
	medicalRecordHandler *handler.MedicalRecordHandler
	auditLogHandler      *handler.AuditLogHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
	loggingMiddleware    *middleware.LoggingMiddleware
}

type RouterConfig struct {
	Matrix               *access.Matrix
	Health               HealthChecker
	AuthHandler          *handler.AuthHandler
	DepartmentHandler    *handler.DepartmentHandler
	DoctorHandler        *handler.DoctorHandler
	PatientHandler       *handler.PatientHandler
	AppointmentHandler   *handler.AppointmentHandler
	MedicalRecordHandler *handler.MedicalRecordHandler
	AuditLogHandler      *handler.AuditLogHandler
	AuthMiddleware       *middleware.AuthMiddleware
	CORSMiddleware       *middleware.CORSMiddleware
	LoggingMiddleware    *middleware.LoggingMiddleware
}

func NewRouter(cfg RouterConfig) *Router {
	return &Router{
		router:               mux.NewRouter(),
		matrix:               cfg.Matrix,
		health:               cfg.Health,
		authHandler:          cfg.AuthHandler,
		departmentHandler:    cfg.DepartmentHandler,
		doctorHandler:        cfg.DoctorHandler,
		patientHandler:       cfg.PatientHandler,
		appointmentHandler:   cfg.AppointmentHandler,
		medicalRecordHandler: cfg.MedicalRecordHandler,
		auditLogHandler:      cfg.AuditLogHandler,
		authMiddleware:       cfg.AuthMiddleware,
		corsMiddleware:       cfg.CORSMiddleware,
		loggingMiddleware:    cfg.LoggingMiddleware,
	}
}

// guard wraps h with the coarse role gate for res/op.
func (r *Router) guard(res access.Resource, op access.Operation, h http.HandlerFunc) http.Handler {
	return middleware.Authorize(r.matrix, res, op)(h)
}

func (r *Router) Setup() http.Handler {
	// Health check
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := r.router.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := r.router.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)

	api := r.router.NewRoute().Subrouter()
	api.Use(r.authMiddleware.Authenticate)

	// Departments
	api.Handle("/departments", r.guard(access.Departments, access.OpList, r.departmentHandler.GetAllDepartments)).Methods(http.MethodGet)
	api.Handle("/departments", r.guard(access.Departments, access.OpCreate, r.departmentHandler.CreateDepartment)).Methods(http.MethodPost)
	api.Handle("/departments/{id}", r.guard(access.Departments, access.OpGet, r.departmentHandler.GetDepartment)).Methods(http.MethodGet)
	api.Handle("/departments/{id}", r.guard(access.Departments, access.OpUpdate, r.departmentHandler.UpdateDepartment)).Methods(http.MethodPatch)
	api.Handle("/departments/{id}", r.guard(access.Departments, access.OpDelete, r.departmentHandler.DeleteDepartment)).Methods(http.MethodDelete)

	// Doctors
	api.Handle("/doctors", r.guard(access.Doctors, access.OpList, r.doctorHandler.GetAllDoctors)).Methods(http.MethodGet)
	api.Handle("/doctors", r.guard(access.Doctors, access.OpCreate, r.doctorHandler.CreateDoctor)).Methods(http.MethodPost)
	api.Handle("/doctors/{id}", r.guard(access.Doctors, access.OpGet, r.doctorHandler.GetDoctor)).Methods(http.MethodGet)
	api.Handle("/doctors/{id}", r.guard(access.Doctors, access.OpUpdate, r.doctorHandler.UpdateDoctor)).Methods(http.MethodPatch)
	api.Handle("/doctors/{id}", r.guard(access.Doctors, access.OpDelete, r.doctorHandler.DeleteDoctor)).Methods(http.MethodDelete)

	// Patients
	api.Handle("/patients", r.guard(access.Patients, access.OpList, r.patientHandler.GetAllPatients)).Methods(http.MethodGet)
	api.Handle("/patients", r.guard(access.Patients, access.OpCreate, r.patientHandler.CreatePatient)).Methods(http.MethodPost)
	api.Handle("/patients/{id}", r.guard(access.Patients, access.OpGet, r.patientHandler.GetPatient)).Methods(http.MethodGet)
	api.Handle("/patients/{id}", r.guard(access.Patients, access.OpUpdate, r.patientHandler.UpdatePatient)).Methods(http.MethodPatch)
	api.Handle("/patients/{id}", r.guard(access.Patients, access.OpDelete, r.patientHandler.DeletePatient)).Methods(http.MethodDelete)
	api.Handle("/patients/{id}/medical-records", r.guard(access.MedicalRecords, access.OpList, r.patientHandler.GetPatientMedicalRecords)).Methods(http.MethodGet)

	// Appointments
	api.Handle("/appointments", r.guard(access.Appointments, access.OpList, r.appointmentHandler.GetAllAppointments)).Methods(http.MethodGet)
	api.Handle("/appointments", r.guard(access.Appointments, access.OpCreate, r.appointmentHandler.CreateAppointment)).Methods(http.MethodPost)
	api.Handle("/appointments/{id}", r.guard(access.Appointments, access.OpGet, r.appointmentHandler.GetAppointment)).Methods(http.MethodGet)
	api.Handle("/appointments/{id}", r.guard(access.Appointments, access.OpUpdate, r.appointmentHandler.UpdateAppointment)).Methods(http.MethodPatch)
	api.Handle("/appointments/{id}", r.guard(access.Appointments, access.OpDelete, r.appointmentHandler.DeleteAppointment)).Methods(http.MethodDelete)

	// Medical records
	api.Handle("/medical-records", r.guard(access.MedicalRecords, access.OpList, r.medicalRecordHandler.GetAllMedicalRecords)).Methods(http.MethodGet)
	api.Handle("/medical-records", r.guard(access.MedicalRecords, access.OpCreate, r.medicalRecordHandler.CreateMedicalRecord)).Methods(http.MethodPost)
	api.Handle("/medical-records/{id}", r.guard(access.MedicalRecords, access.OpGet, r.medicalRecordHandler.GetMedicalRecord)).Methods(http.MethodGet)
	api.Handle("/medical-records/{id}", r.guard(access.MedicalRecords, access.OpUpdate, r.medicalRecordHandler.UpdateMedicalRecord)).Methods(http.MethodPatch)
	api.Handle("/medical-records/{id}", r.guard(access.MedicalRecords, access.OpDelete, r.medicalRecordHandler.DeleteMedicalRecord)).Methods(http.MethodDelete)

	// Users (admin)
	api.Handle("/users", r.guard(access.Users, access.OpCreate, r.authHandler.CreateUser)).Methods(http.MethodPost)

	// Audit logs (admin)
	api.Handle("/audit-logs", r.guard(access.AuditLogs, access.OpList, r.auditLogHandler.GetAllAuditLogs)).Methods(http.MethodGet)
	api.Handle("/audit-logs/{id}", r.guard(access.AuditLogs, access.OpGet, r.auditLogHandler.GetAuditLog)).Methods(http.MethodGet)

	r.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		response.NotFound(w, "Route not found")
	})

	var h http.Handler = r.router
	if r.corsMiddleware != nil {
		h = r.corsMiddleware.Handle(h)
	}
	if r.loggingMiddleware != nil {
		h = r.loggingMiddleware.Handle(h)
	}
	return h
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	if r.health != nil {
		if err := r.health(req.Context()); err != nil {
			response.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	response.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

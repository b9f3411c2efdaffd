package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"hospital-management-api/config"
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/mocks"
	"hospital-management-api/pkg/apperror"
	"hospital-management-api/pkg/jwt"
	"hospital-management-api/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type authFixture struct {
	*fixture
	tokens *mocks.TokenStore
	jwt    *jwt.JWTService
	uc     AuthUsecase
}

func newAuthFixture(t *testing.T) *authFixture {
	f := newFixture(t)
	tokens := mocks.NewTokenStore()
	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 24 * time.Hour,
	})
	uc := NewAuthUsecase(f.txm, f.log, f.matrix, f.store.Users(), f.store.Doctors(), f.store.Patients(), f.audit, jwtService, tokens, password.NewHasher(bcrypt.MinCost))
	return &authFixture{fixture: f, tokens: tokens, jwt: jwtService, uc: uc}
}

func (f *authFixture) register(t *testing.T, req dto.RegisterRequest) *dto.UserResponse {
	t.Helper()
	user, err := f.uc.Register(context.Background(), &req)
	require.NoError(t, err)
	return user
}

func TestRegisterDefaultsToPatientRole(t *testing.T) {
	f := newAuthFixture(t)

	user := f.register(t, dto.RegisterRequest{Username: " alice ", Password: "secret123"})
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "patient", user.Role)

	stored, err := f.store.Users().FindByUsername(context.Background(), nil, "alice")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", stored.Password)
	assert.True(t, password.NewHasher(bcrypt.MinCost).Check(stored.Password, "secret123"))

	logs := f.store.AuditLogs()
	require.Len(t, logs, 1)
	assert.Equal(t, entity.AuditActionUserRegister, logs[0].Action)
	assert.Equal(t, user.ID, *logs[0].UserID)
}

func TestCreateUserLinksProfiles(t *testing.T) {
	f := newAuthFixture(t)
	doctor := f.seedDoctor(t, "Dr. House", nil)
	patient := f.seedPatient(t, "Jane", "0811111111")

	doctorUser, err := f.uc.CreateUser(context.Background(), adminActor(), &dto.RegisterRequest{Username: "house", Password: "secret123", Role: "Doctor", DoctorID: &doctor.ID})
	require.NoError(t, err)
	assert.Equal(t, "doctor", doctorUser.Role)
	assert.Equal(t, doctor.ID, *doctorUser.DoctorID)

	patientUser, err := f.uc.CreateUser(context.Background(), adminActor(), &dto.RegisterRequest{Username: "jane", Password: "secret123", PatientID: &patient.ID})
	require.NoError(t, err)
	assert.Equal(t, patient.ID, *patientUser.PatientID)

	_, err = f.uc.CreateUser(context.Background(), adminActor(), &dto.RegisterRequest{Username: "jane2", Password: "secret123", PatientID: &patient.ID})
	requireKind(t, err, apperror.KindConflict)

	logs := f.store.AuditLogs()
	require.Len(t, logs, 2)
	assert.Equal(t, entity.AuditActionUserCreate, logs[0].Action)
	assert.Equal(t, adminActor().UserID, *logs[0].UserID)
}

func TestCreateUserIsAdminOnly(t *testing.T) {
	f := newAuthFixture(t)
	doctor := f.seedDoctor(t, "Dr. House", nil)

	_, err := f.uc.CreateUser(context.Background(), managerActor(), &dto.RegisterRequest{Username: "house", Password: "secret123", Role: "doctor", DoctorID: &doctor.ID})
	requireKind(t, err, apperror.KindForbidden)
	_, err = f.uc.CreateUser(context.Background(), doctorActor(doctor.ID), &dto.RegisterRequest{Username: "root", Password: "secret123", Role: "admin"})
	requireKind(t, err, apperror.KindForbidden)
	assert.Equal(t, 0, f.store.Counts()["users"])
}

func TestRegisterOnlyCreatesUnlinkedPatients(t *testing.T) {
	f := newAuthFixture(t)
	doctor := f.seedDoctor(t, "Dr. House", nil)
	patient := f.seedPatient(t, "Jane", "0811111111")

	tests := []struct {
		name string
		req  dto.RegisterRequest
	}{
		{"admin role", dto.RegisterRequest{Username: "mallory", Password: "secret123", Role: "admin"}},
		{"manager role", dto.RegisterRequest{Username: "mallory", Password: "secret123", Role: "department_manager"}},
		{"doctor link", dto.RegisterRequest{Username: "mallory", Password: "secret123", Role: "doctor", DoctorID: &doctor.ID}},
		{"patient link", dto.RegisterRequest{Username: "mallory", Password: "secret123", PatientID: &patient.ID}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.Register(context.Background(), &tt.req)
			requireKind(t, err, apperror.KindForbidden)
		})
	}
	assert.Equal(t, 0, f.store.Counts()["users"])
	assert.Empty(t, f.store.AuditLogs())
}

func TestRegisterRejectsMultiBytePasswordOverLimit(t *testing.T) {
	f := newAuthFixture(t)

	_, err := f.uc.Register(context.Background(), &dto.RegisterRequest{Username: "alice", Password: strings.Repeat("é", 40)})
	appErr := requireKind(t, err, apperror.KindValidation)
	assert.Equal(t, "password", appErr.Field)
	assert.Equal(t, 0, f.store.Counts()["users"])
}

func TestRegisterErrors(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, dto.RegisterRequest{Username: "alice", Password: "secret123"})

	_, err := f.uc.Register(context.Background(), &dto.RegisterRequest{Username: "alice", Password: "secret123"})
	requireKind(t, err, apperror.KindConflict)

	_, err = f.uc.Register(context.Background(), &dto.RegisterRequest{Username: "bob", Password: "secret123"})
	appErr := requireKind(t, err, apperror.KindValidation)
	assert.Equal(t, "username", appErr.Field)

	_, err = f.uc.Register(context.Background(), &dto.RegisterRequest{Username: "carol", Password: "secret123", Role: "nurse"})
	appErr = requireKind(t, err, apperror.KindValidation)
	assert.Equal(t, "role", appErr.Field)

	_, err = f.uc.CreateUser(context.Background(), adminActor(), &dto.RegisterRequest{Username: "carol", Password: "secret123", Role: "doctor", DoctorID: ptr(uint(404))})
	assert.ErrorIs(t, err, ErrDoctorNotFound)

	_, err = f.uc.CreateUser(context.Background(), adminActor(), &dto.RegisterRequest{Username: "carol", Password: "secret123", Role: "doctor", PatientID: ptr(uint(1))})
	appErr = requireKind(t, err, apperror.KindValidation)
	assert.Equal(t, "patient_id", appErr.Field)

	assert.Equal(t, 1, f.store.Counts()["users"])
}

func TestLogin(t *testing.T) {
	f := newAuthFixture(t)
	user, err := f.uc.CreateUser(context.Background(), adminActor(), &dto.RegisterRequest{Username: "alice", Password: "secret123", Role: "admin"})
	require.NoError(t, err)

	resp, err := f.uc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer", resp.TokenType)
	assert.EqualValues(t, 900, resp.ExpiresIn)
	require.NotNil(t, resp.User)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, "admin", resp.User.Role)
	assert.Equal(t, 2, f.tokens.Len())

	claims, err := f.jwt.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, jwt.AccessToken, claims.TokenType)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, user.ID, claims.UserID)
}

func TestLoginInvalidCredentials(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, dto.RegisterRequest{Username: "alice", Password: "secret123"})

	_, err := f.uc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.uc.Login(context.Background(), &dto.LoginRequest{Username: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	requireKind(t, err, apperror.KindUnauthenticated)
	assert.Equal(t, 0, f.tokens.Len())
}

func TestRefreshTokenRotates(t *testing.T) {
	f := newAuthFixture(t)
	f.register(t, dto.RegisterRequest{Username: "alice", Password: "secret123"})
	login, err := f.uc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	refreshed, err := f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)

	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)

	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.AccessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "not-a-token"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesTokens(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, dto.RegisterRequest{Username: "alice", Password: "secret123"})
	login, err := f.uc.Login(context.Background(), &dto.LoginRequest{Username: "alice", Password: "secret123"})
	require.NoError(t, err)

	claims, err := f.jwt.ValidateToken(login.AccessToken)
	require.NoError(t, err)

	require.NoError(t, f.uc.Logout(context.Background(), user.ID, claims.TokenID, login.RefreshToken))
	assert.Equal(t, 0, f.tokens.Len())

	_, err = f.uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: login.RefreshToken})
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestGetCurrentUser(t *testing.T) {
	f := newAuthFixture(t)
	user := f.register(t, dto.RegisterRequest{Username: "alice", Password: "secret123"})

	resp, err := f.uc.GetCurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)

	_, err = f.uc.GetCurrentUser(context.Background(), 404)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

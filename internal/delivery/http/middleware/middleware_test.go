package middleware_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hospital-management-api/config"
	"hospital-management-api/internal/delivery/http/middleware"
	"hospital-management-api/internal/domain/access"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/mocks"
	"hospital-management-api/pkg/jwt"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func newJWT() *jwt.JWTService {
	return jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: time.Hour,
	})
}

func TestAuthenticateSetsActor(t *testing.T) {
	jwtService := newJWT()
	tokens := mocks.NewTokenStore()
	doctorID := uint(7)
	token, tokenID, err := jwtService.GenerateAccessToken(jwt.Identity{
		UserID:   3,
		Username: "drgrey",
		Role:     string(entity.RoleDoctor),
		DoctorID: &doctorID,
	})
	require.NoError(t, err)
	require.NoError(t, tokens.Store(context.Background(), 3, jwt.AccessToken, tokenID, time.Hour))

	var got access.Actor
	var gotTokenID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = middleware.GetActorFromContext(r.Context())
		gotTokenID, _ = middleware.GetTokenIDFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer "+token)
	rec := httptest.NewRecorder()
	middleware.NewAuthMiddleware(jwtService, tokens, quietLogger()).Authenticate(next).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(3), got.UserID)
	assert.Equal(t, entity.RoleDoctor, got.Role)
	require.NotNil(t, got.DoctorID)
	assert.Equal(t, doctorID, *got.DoctorID)
	assert.Equal(t, tokenID, gotTokenID)
}

func TestAuthenticateRejects(t *testing.T) {
	jwtService := newJWT()
	tokens := mocks.NewTokenStore()
	auth := middleware.NewAuthMiddleware(jwtService, tokens, quietLogger())

	live, liveID, err := jwtService.GenerateAccessToken(jwt.Identity{UserID: 1, Role: string(entity.RoleAdmin)})
	require.NoError(t, err)
	require.NoError(t, tokens.Store(context.Background(), 1, jwt.AccessToken, liveID, time.Hour))

	cases := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc"},
		{"too many parts", "Bearer a b"},
		{"garbage token", "Bearer abc"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			auth.Authenticate(okHandler()).ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}

	t.Run("store failure", func(t *testing.T) {
		tokens.FailWith = errors.New("redis down")
		defer func() { tokens.FailWith = nil }()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+live)
		rec := httptest.NewRecorder()
		auth.Authenticate(okHandler()).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

func TestAuthorize(t *testing.T) {
	matrix := access.DefaultMatrix()
	gate := middleware.Authorize(matrix, access.Departments, access.OpDelete)

	serve := func(ctx context.Context) int {
		req := httptest.NewRequest(http.MethodDelete, "/departments/1", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		gate(okHandler()).ServeHTTP(rec, req)
		return rec.Code
	}

	admin := access.Actor{UserID: 1, Role: entity.RoleAdmin}
	manager := access.Actor{UserID: 2, Role: entity.RoleDepartmentManager}

	assert.Equal(t, http.StatusUnauthorized, serve(context.Background()))
	assert.Equal(t, http.StatusOK, serve(context.WithValue(context.Background(), middleware.ActorKey, admin)))
	assert.Equal(t, http.StatusForbidden, serve(context.WithValue(context.Background(), middleware.ActorKey, manager)))
}

func TestLoggingRecoversPanics(t *testing.T) {
	panicky := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	middleware.NewLoggingMiddleware(quietLogger()).Handle(panicky).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestCORSPreflight(t *testing.T) {
	cors := middleware.NewCORSMiddleware(config.CORSConfig{AllowedOrigins: []string{"https://ward.example.com"}})

	req := httptest.NewRequest(http.MethodOptions, "/patients", nil)
	req.Header.Set("Origin", "https://ward.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	rec := httptest.NewRecorder()
	cors.Handle(okHandler()).ServeHTTP(rec, req)

	assert.Equal(t, "https://ward.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
}

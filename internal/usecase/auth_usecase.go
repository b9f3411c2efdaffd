package usecase

import (
	"context"
	"strings"

	"hospital-management-api/internal/converter"
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/access"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/repository"
	"hospital-management-api/internal/domain/rules"
	"hospital-management-api/internal/service"
	"hospital-management-api/pkg/apperror"
	"hospital-management-api/pkg/jwt"
	"hospital-management-api/pkg/password"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	CreateUser(ctx context.Context, actor access.Actor, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	Logout(ctx context.Context, userID uint, accessTokenID, refreshToken string) error
	RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error)
	GetCurrentUser(ctx context.Context, userID uint) (*dto.UserResponse, error)
}

type authUsecase struct {
	txm          repository.Transactor
	log          *logrus.Logger
	matrix       *access.Matrix
	userRepo     repository.UserRepository
	doctorRepo   repository.DoctorRepository
	patientRepo  repository.PatientRepository
	auditService service.AuditService
	jwtService   *jwt.JWTService
	tokenStore   service.TokenStore
	hasher       *password.Hasher
}

func NewAuthUsecase(
	txm repository.Transactor,
	log *logrus.Logger,
	matrix *access.Matrix,
	userRepo repository.UserRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
	jwtService *jwt.JWTService,
	tokenStore service.TokenStore,
	hasher *password.Hasher,
) AuthUsecase {
	return &authUsecase{
		txm:          txm,
		log:          log,
		matrix:       matrix,
		userRepo:     userRepo,
		doctorRepo:   doctorRepo,
		patientRepo:  patientRepo,
		auditService: auditService,
		jwtService:   jwtService,
		tokenStore:   tokenStore,
		hasher:       hasher,
	}
}

// Register is the anonymous sign-up path. It only creates unlinked patient
// accounts; other roles and profile links go through CreateUser.
func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	return u.createUser(ctx, nil, req)
}

// CreateUser lets an admin create an account of any role, optionally linked
// to a doctor or patient profile.
func (u *authUsecase) CreateUser(ctx context.Context, actor access.Actor, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if err := u.matrix.Authorize(actor, access.Users, access.OpCreate); err != nil {
		return nil, err
	}
	return u.createUser(ctx, &actor, req)
}

func (u *authUsecase) createUser(ctx context.Context, actor *access.Actor, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	username, err := rules.Username(req.Username)
	if err != nil {
		return nil, err
	}
	role := entity.RolePatient
	if strings.TrimSpace(req.Role) != "" {
		if role, err = rules.Role(req.Role); err != nil {
			return nil, err
		}
	}
	if actor == nil && (role != entity.RolePatient || req.DoctorID != nil || req.PatientID != nil) {
		return nil, apperror.Forbidden("self-registration only creates unlinked patient accounts")
	}
	if req.DoctorID != nil && role != entity.RoleDoctor {
		return nil, apperror.Validation("doctor_id", "only doctor accounts can be linked to a doctor")
	}
	if req.PatientID != nil && role != entity.RolePatient {
		return nil, apperror.Validation("patient_id", "only patient accounts can be linked to a patient")
	}

	hashedPassword, err := u.hasher.Hash(req.Password)
	if err != nil {
		if !apperror.IsValidation(err) {
			u.log.Warnf("Failed to hash password: %+v", err)
		}
		return nil, err
	}

	user := &entity.User{
		Username:  username,
		Password:  hashedPassword,
		Role:      role,
		DoctorID:  req.DoctorID,
		PatientID: req.PatientID,
	}

	var resp *dto.UserResponse
	err = u.txm.WithinTransaction(ctx, func(tx *gorm.DB) error {
		if req.DoctorID != nil {
			doctor, err := u.doctorRepo.FindByID(ctx, tx, *req.DoctorID)
			if err != nil {
				u.log.Warnf("Failed to find doctor: %+v", err)
				return err
			}
			if doctor == nil {
				return ErrDoctorNotFound
			}
		}
		if req.PatientID != nil {
			patient, err := u.patientRepo.FindByID(ctx, tx, *req.PatientID)
			if err != nil {
				u.log.Warnf("Failed to find patient: %+v", err)
				return err
			}
			if patient == nil {
				return ErrPatientNotFound
			}
		}

		if err := u.userRepo.Create(ctx, tx, user); err != nil {
			u.log.Warnf("Failed to create user: %+v", err)
			return err
		}
		resp = converter.UserToResponse(user)

		if actor != nil {
			return u.auditService.LogCreate(ctx, tx, &actor.UserID, entity.AuditActionUserCreate, "user", user.ID, resp)
		}
		return u.auditService.LogCreate(ctx, tx, &user.ID, entity.AuditActionUserRegister, "user", user.ID, resp)
	})
	if err != nil {
		return nil, err
	}

	return resp, nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := u.userRepo.FindByUsername(ctx, u.txm.Conn(ctx), strings.TrimSpace(req.Username))
	if err != nil {
		u.log.Warnf("Failed to find user by username: %+v", err)
		return nil, err
	}
	if user == nil || !u.hasher.Check(user.Password, req.Password) {
		return nil, ErrInvalidCredentials
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) Logout(ctx context.Context, userID uint, accessTokenID, refreshToken string) error {
	if err := u.tokenStore.Revoke(ctx, userID, jwt.AccessToken, accessTokenID); err != nil {
		u.log.Warnf("Failed to revoke access token: %+v", err)
		return err
	}

	if refreshToken == "" {
		return nil
	}
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil || claims.TokenType != jwt.RefreshToken || claims.UserID != userID {
		return ErrInvalidToken
	}
	if err := u.tokenStore.Revoke(ctx, userID, jwt.RefreshToken, claims.TokenID); err != nil {
		u.log.Warnf("Failed to revoke refresh token: %+v", err)
		return err
	}

	return nil
}

func (u *authUsecase) RefreshToken(ctx context.Context, req *dto.RefreshTokenRequest) (*dto.TokenResponse, error) {
	claims, err := u.jwtService.ValidateToken(req.RefreshToken)
	if err != nil {
		return nil, ErrInvalidToken
	}
	if claims.TokenType != jwt.RefreshToken {
		return nil, ErrInvalidToken
	}

	exists, err := u.tokenStore.Exists(ctx, claims.UserID, jwt.RefreshToken, claims.TokenID)
	if err != nil {
		u.log.Warnf("Failed to check refresh token: %+v", err)
		return nil, err
	}
	if !exists {
		return nil, ErrTokenRevoked
	}

	// Rotate: the old refresh token is single-use.
	if err := u.tokenStore.Revoke(ctx, claims.UserID, jwt.RefreshToken, claims.TokenID); err != nil {
		u.log.Warnf("Failed to delete old refresh token: %+v", err)
		return nil, err
	}

	user, err := u.userRepo.FindByID(ctx, u.txm.Conn(ctx), claims.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidToken
	}

	return u.issueTokens(ctx, user)
}

func (u *authUsecase) GetCurrentUser(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, u.txm.Conn(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) issueTokens(ctx context.Context, user *entity.User) (*dto.TokenResponse, error) {
	identity := jwt.Identity{
		UserID:    user.ID,
		Username:  user.Username,
		Role:      user.Role.String(),
		DoctorID:  user.DoctorID,
		PatientID: user.PatientID,
	}

	accessToken, accessTokenID, err := u.jwtService.GenerateAccessToken(identity)
	if err != nil {
		u.log.Warnf("Failed to generate access token: %+v", err)
		return nil, err
	}
	refreshToken, refreshTokenID, err := u.jwtService.GenerateRefreshToken(identity)
	if err != nil {
		u.log.Warnf("Failed to generate refresh token: %+v", err)
		return nil, err
	}

	if err := u.tokenStore.Store(ctx, user.ID, jwt.AccessToken, accessTokenID, u.jwtService.GetAccessExpiry()); err != nil {
		u.log.Warnf("Failed to store access token: %+v", err)
		return nil, err
	}
	if err := u.tokenStore.Store(ctx, user.ID, jwt.RefreshToken, refreshTokenID, u.jwtService.GetRefreshExpiry()); err != nil {
		u.log.Warnf("Failed to store refresh token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(u.jwtService.GetAccessExpiry().Seconds()),
		User:         converter.UserToResponse(user),
	}, nil
}

package usecase

import (
	"context"

	"hospital-management-api/internal/converter"
	"hospital-management-api/internal/delivery/dto"
	"hospital-management-api/internal/domain/access"
	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type AuditLogUsecase interface {
	GetAllAuditLogs(ctx context.Context, actor access.Actor, filter entity.AuditLogFilter) ([]dto.AuditLogResponse, error)
	GetAuditLog(ctx context.Context, actor access.Actor, id uint) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	txm          repository.Transactor
	log          *logrus.Logger
	matrix       *access.Matrix
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(
	txm repository.Transactor,
	log *logrus.Logger,
	matrix *access.Matrix,
	auditLogRepo repository.AuditLogRepository,
) AuditLogUsecase {
	return &auditLogUsecase{
		txm:          txm,
		log:          log,
		matrix:       matrix,
		auditLogRepo: auditLogRepo,
	}
}

func (u *auditLogUsecase) GetAllAuditLogs(ctx context.Context, actor access.Actor, filter entity.AuditLogFilter) ([]dto.AuditLogResponse, error) {
	if err := u.matrix.Authorize(actor, access.AuditLogs, access.OpList); err != nil {
		return nil, err
	}

	logs, err := u.auditLogRepo.FindAll(ctx, u.txm.Conn(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to find all audit logs: %+v", err)
		return nil, err
	}

	return converter.AuditLogsToResponses(logs), nil
}

func (u *auditLogUsecase) GetAuditLog(ctx context.Context, actor access.Actor, id uint) (*dto.AuditLogResponse, error) {
	if err := u.matrix.Authorize(actor, access.AuditLogs, access.OpGet); err != nil {
		return nil, err
	}

	auditLog, err := u.auditLogRepo.FindByID(ctx, u.txm.Conn(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find audit log: %+v", err)
		return nil, err
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}

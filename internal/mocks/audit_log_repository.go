package mocks

import (
	"context"
	"time"

	"hospital-management-api/internal/domain/entity"
	"hospital-management-api/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct{ s *Store }

func (s *Store) AuditLogRepository() repository.AuditLogRepository {
	return &auditLogRepository{s: s}
}

func (r *auditLogRepository) Create(ctx context.Context, db *gorm.DB, log *entity.AuditLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return err
	}

	log.ID = r.s.id()
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	r.s.data.auditLogs[log.ID] = *log
	return nil
}

func (r *auditLogRepository) FindAll(ctx context.Context, db *gorm.DB, filter entity.AuditLogFilter) ([]entity.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}

	keys := sortedKeys(r.s.data.auditLogs)
	out := []entity.AuditLog{}
	for i := len(keys) - 1; i >= 0; i-- {
		l := r.s.data.auditLogs[keys[i]]
		if filter.Action != "" && l.Action != filter.Action {
			continue
		}
		if filter.UserID != nil && !eqPtr(l.UserID, filter.UserID) {
			continue
		}
		out = append(out, l)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (r *auditLogRepository) FindByID(ctx context.Context, db *gorm.DB, id uint) (*entity.AuditLog, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.fail(); err != nil {
		return nil, err
	}

	l, ok := r.s.data.auditLogs[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

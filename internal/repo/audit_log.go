package repo

import (
	"context"
	"planify-backend/internal/models"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type AuditLogRepo struct {
	db *gorm.DB
}

type AuditLogRepoInterface interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
	GetEntityLogs(ctx context.Context, orgID string, entityID uuid.UUID, entityType models.EntityType, limit int) ([]models.AuditLog, error)
	GetOrgLogs(ctx context.Context, orgID string, page, pageSize int) ([]models.AuditLog, int64, error)
}

func NewAuditLogRepository(db *gorm.DB) AuditLogRepoInterface {
	return &AuditLogRepo{db: db}
}

func (r *AuditLogRepo) CreateAuditLog(ctx context.Context, log *models.AuditLog) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return errors.Wrap(err, "create audit log")
	}
	return nil
}

// GetEntityLogs returns the latest records for one entity, newest first.
func (r *AuditLogRepo) GetEntityLogs(ctx context.Context, orgID string, entityID uuid.UUID, entityType models.EntityType, limit int) ([]models.AuditLog, error) {
	if limit <= 0 {
		limit = 3
	}
	var logs []models.AuditLog
	err := r.db.WithContext(ctx).
		Where("org_id = ? AND entity_id = ? AND entity_type = ?", orgID, entityID, entityType).
		Order("created_at desc").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, errors.Wrap(err, "get entity logs")
	}
	return logs, nil
}

// GetOrgLogs returns one page of the tenant's activity, newest first, and the
// total number of records. Pages start at 1.
func (r *AuditLogRepo) GetOrgLogs(ctx context.Context, orgID string, page, pageSize int) ([]models.AuditLog, int64, error) {
	var logs []models.AuditLog
	var total int64

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	base := r.db.WithContext(ctx).Model(&models.AuditLog{}).Where("org_id = ?", orgID).Session(&gorm.Session{})
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "count org logs")
	}

	err := base.Order("created_at desc").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&logs).Error
	if err != nil {
		return nil, 0, errors.Wrap(err, "get org logs")
	}
	return logs, total, nil
}

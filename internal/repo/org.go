package repo

import (
	"context"
	"planify-backend/internal/models"
	"time"

	"github.com/go-faster/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrgLimitRepo struct {
	db *gorm.DB
}

type OrgLimitRepoInterface interface {
	GetOrgLimit(ctx context.Context, orgID string) (*models.OrgLimit, error)
	IncrementOrgLimit(ctx context.Context, orgID string) error
	DecrementOrgLimit(ctx context.Context, orgID string) error
}

func NewOrgLimitRepository(db *gorm.DB) OrgLimitRepoInterface {
	return &OrgLimitRepo{db: db}
}

func (r *OrgLimitRepo) GetOrgLimit(ctx context.Context, orgID string) (*models.OrgLimit, error) {
	var limit models.OrgLimit
	if err := r.db.WithContext(ctx).Where("org_id = ?", orgID).First(&limit).Error; err != nil {
		return nil, notFound(err, "get org limit")
	}
	return &limit, nil
}

// IncrementOrgLimit creates the counter at 1 or bumps it in a single statement.
func (r *OrgLimitRepo) IncrementOrgLimit(ctx context.Context, orgID string) error {
	now := time.Now()
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "org_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"count":      gorm.Expr("org_limits.count + 1"),
			"updated_at": now,
		}),
	}).Create(&models.OrgLimit{OrgID: orgID, Count: 1, CreatedAt: now, UpdatedAt: now}).Error
	if err != nil {
		return errors.Wrap(err, "increment org limit")
	}
	return nil
}

// DecrementOrgLimit lowers the counter, never below zero. A missing counter stays missing.
func (r *OrgLimitRepo) DecrementOrgLimit(ctx context.Context, orgID string) error {
	err := r.db.WithContext(ctx).Model(&models.OrgLimit{}).
		Where("org_id = ?", orgID).
		Update("count", gorm.Expr("CASE WHEN count > 0 THEN count - 1 ELSE 0 END")).Error
	if err != nil {
		return errors.Wrap(err, "decrement org limit")
	}
	return nil
}

type SubscriptionRepo struct {
	db *gorm.DB
}

type SubscriptionRepoInterface interface {
	GetSubscription(ctx context.Context, orgID string) (*models.OrgSubscription, error)
	UpsertSubscription(ctx context.Context, sub *models.OrgSubscription) error
}

func NewSubscriptionRepository(db *gorm.DB) SubscriptionRepoInterface {
	return &SubscriptionRepo{db: db}
}

func (r *SubscriptionRepo) GetSubscription(ctx context.Context, orgID string) (*models.OrgSubscription, error) {
	var sub models.OrgSubscription
	if err := r.db.WithContext(ctx).Where("org_id = ?", orgID).First(&sub).Error; err != nil {
		return nil, notFound(err, "get subscription")
	}
	return &sub, nil
}

func (r *SubscriptionRepo) UpsertSubscription(ctx context.Context, sub *models.OrgSubscription) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "org_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"stripe_customer_id", "stripe_subscription_id", "stripe_price_id", "stripe_current_period_end", "updated_at",
		}),
	}).Create(sub).Error
	if err != nil {
		return errors.Wrap(err, "upsert subscription")
	}
	return nil
}

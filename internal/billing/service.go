// Package billing answers whether an organization's board quota is lifted by
// a paid subscription. Checkout and webhooks stay with the payment provider.
package billing

import (
	"context"
	"time"

	"planify-backend/internal/models"
	"planify-backend/internal/repo"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Service struct {
	repo  repo.SubscriptionRepoInterface
	grace time.Duration
	now   func() time.Time
}

func NewService(r repo.SubscriptionRepoInterface, grace time.Duration) *Service {
	return &Service{repo: r, grace: grace, now: time.Now}
}

// IsUnrestricted is true while the current period, plus the grace window, has not ended.
func (s *Service) IsUnrestricted(ctx context.Context, orgID string) (bool, error) {
	sub, err := s.repo.GetSubscription(ctx, orgID)
	if errors.Is(err, repo.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return s.valid(sub), nil
}

func (s *Service) valid(sub *models.OrgSubscription) bool {
	if sub.StripePriceID == "" || sub.StripeCurrentPeriodEnd == nil {
		return false
	}
	return sub.StripeCurrentPeriodEnd.Add(s.grace).After(s.now())
}

type Period struct {
	OrgID          string    `json:"orgId" validate:"required"`
	CustomerID     string    `json:"customerId" validate:"required"`
	SubscriptionID string    `json:"subscriptionId" validate:"required"`
	PriceID        string    `json:"priceId" validate:"required"`
	PeriodEnd      time.Time `json:"periodEnd" validate:"required"`
}

// Upsert records the provider's latest billing period for an organization.
func (s *Service) Upsert(ctx context.Context, p Period) error {
	if err := validate.Struct(p); err != nil {
		return errors.Wrap(err, "invalid billing period")
	}
	end := p.PeriodEnd
	return s.repo.UpsertSubscription(ctx, &models.OrgSubscription{
		OrgID:                  p.OrgID,
		StripeCustomerID:       p.CustomerID,
		StripeSubscriptionID:   p.SubscriptionID,
		StripePriceID:          p.PriceID,
		StripeCurrentPeriodEnd: &end,
	})
}

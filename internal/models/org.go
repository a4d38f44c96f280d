package models

import "time"

// OrgLimit counts the boards an organization holds on the free tier.
type OrgLimit struct {
	OrgID     string    `gorm:"primarykey" json:"org_id"`
	Count     int       `gorm:"not null;default:0" json:"count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrgSubscription struct {
	OrgID                  string     `gorm:"primarykey" json:"org_id"`
	StripeCustomerID       string     `gorm:"index" json:"stripe_customer_id"`
	StripeSubscriptionID   string     `gorm:"index" json:"stripe_subscription_id"`
	StripePriceID          string     `json:"stripe_price_id"`
	StripeCurrentPeriodEnd *time.Time `json:"stripe_current_period_end"`
	CreatedAt              time.Time  `json:"created_at"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

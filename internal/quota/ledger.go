// Package quota tracks how many boards each organization holds on the free tier.
package quota

import (
	"context"

	"planify-backend/internal/repo"

	"github.com/go-faster/errors"
)

type Ledger struct {
	repo repo.OrgLimitRepoInterface
	max  int
}

func NewLedger(r repo.OrgLimitRepoInterface, maxFree int) *Ledger {
	return &Ledger{repo: r, max: maxFree}
}

func (l *Ledger) Increment(ctx context.Context, orgID string) error {
	return l.repo.IncrementOrgLimit(ctx, orgID)
}

// Decrement clamps at zero.
func (l *Ledger) Decrement(ctx context.Context, orgID string) error {
	return l.repo.DecrementOrgLimit(ctx, orgID)
}

// CurrentCount is 0 for an organization that never created a board.
func (l *Ledger) CurrentCount(ctx context.Context, orgID string) (int, error) {
	limit, err := l.repo.GetOrgLimit(ctx, orgID)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return limit.Count, nil
}

func (l *Ledger) HasAvailable(ctx context.Context, orgID string) (bool, error) {
	limit, err := l.repo.GetOrgLimit(ctx, orgID)
	if errors.Is(err, repo.ErrNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return limit.Count < l.max, nil
}

type Status struct {
	Count     int  `json:"count"`
	Max       int  `json:"max"`
	Remaining int  `json:"remaining"`
	Unlimited bool `json:"unlimited"`
}

// Standing reports the counter relative to the free-tier maximum.
func (l *Ledger) Standing(ctx context.Context, orgID string, unlimited bool) (Status, error) {
	count, err := l.CurrentCount(ctx, orgID)
	if err != nil {
		return Status{}, err
	}
	s := Status{Count: count, Max: l.max, Unlimited: unlimited}
	if !unlimited && count < l.max {
		s.Remaining = l.max - count
	}
	return s, nil
}

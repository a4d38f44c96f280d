// Package actions holds the validated commands behind the HTTP surface. A
// command checks the caller, validates its input, performs its writes and
// then records audit entries and invalidates cached reads. Failures come back
// as a Result, never as a panic or a bare error.
package actions

import (
	"context"
	"fmt"
	"time"

	"planify-backend/internal/audit"
	"planify-backend/internal/auth"
	"planify-backend/internal/cache"
	"planify-backend/internal/metrics"
	"planify-backend/internal/quota"
	"planify-backend/internal/repo"

	"github.com/go-faster/errors"
	log "github.com/sirupsen/logrus"
)

// BillingStatus reports whether a paid subscription lifts the board quota.
type BillingStatus interface {
	IsUnrestricted(ctx context.Context, orgID string) (bool, error)
}

type Service struct {
	Boards  repo.BoardRepoInterface
	Lists   repo.ListRepoInterface
	Cards   repo.CardRepoInterface
	Logs    repo.AuditLogRepoInterface
	Quota   *quota.Ledger
	Billing BillingStatus
	Audit   audit.Recorder
	Cache   cache.Invalidator
}

func (s *Service) invalidate(ctx context.Context, paths ...string) {
	if s.Cache == nil {
		return
	}
	for _, p := range paths {
		s.Cache.Invalidate(ctx, p)
	}
}

func (s *Service) record(ctx context.Context, actor auth.Principal, e audit.Entry) {
	if s.Audit != nil {
		s.Audit.Record(ctx, actor, e)
	}
}

// run is the boundary every command goes through: caller check, struct
// validation, then fn. It also counts the outcome and turns panics into a
// persistence failure.
func run[In any, Out any](ctx context.Context, action string, in *In, fn func(context.Context, auth.Principal, *In) Result[Out]) (res Result[Out]) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			log.WithField("action", action).WithField("panic", fmt.Sprint(r)).Error("command panicked")
			res = fail[Out](KindPersistence, "Something went wrong")
		}
		outcome := "ok"
		if !res.OK() {
			outcome = string(res.Kind)
		}
		metrics.Observe(action, outcome, time.Since(start))
	}()

	actor := auth.FromContext(ctx)
	if !actor.Valid() {
		return fail[Out](KindUnauthorized, "Unauthorized")
	}
	if in == nil {
		in = new(In)
	}
	if fields := fieldErrors(in); fields != nil {
		return invalid[Out](fields)
	}
	return fn(ctx, actor, in)
}

// persistence maps a repository error to the user-facing result. Not-found
// keeps its own message; anything else is logged and hidden behind generic.
func persistence[T any](action string, err error, notFoundMsg, generic string) Result[T] {
	if errors.Is(err, repo.ErrNotFound) {
		return fail[T](KindNotFound, notFoundMsg)
	}
	log.WithError(err).WithField("action", action).Error("command failed")
	return fail[T](KindPersistence, generic)
}

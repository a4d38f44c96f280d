// Package audit appends best-effort activity records for create, update and
// delete commands. A failed append is logged and dropped; the command that
// triggered it has already succeeded.
package audit

import (
	"context"
	"fmt"
	"strings"

	"planify-backend/internal/auth"
	"planify-backend/internal/models"
	"planify-backend/internal/repo"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

type Entry struct {
	EntityID    uuid.UUID
	EntityType  models.EntityType
	EntityTitle string
	Action      models.Action
}

type Recorder interface {
	Record(ctx context.Context, actor auth.Principal, e Entry)
}

type DBRecorder struct {
	repo repo.AuditLogRepoInterface
}

func NewRecorder(r repo.AuditLogRepoInterface) *DBRecorder {
	return &DBRecorder{repo: r}
}

func (r *DBRecorder) Record(ctx context.Context, actor auth.Principal, e Entry) {
	if err := r.record(ctx, actor, e); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"entity_id":   e.EntityID,
			"entity_type": e.EntityType,
			"action":      e.Action,
		}).Warn("[AUDIT_LOG_ERROR]")
	}
}

func (r *DBRecorder) record(ctx context.Context, actor auth.Principal, e Entry) error {
	if !actor.Valid() {
		return errors.New("user not found")
	}
	return r.repo.CreateAuditLog(ctx, &models.AuditLog{
		OrgID:       actor.OrgID,
		EntityID:    e.EntityID,
		EntityType:  e.EntityType,
		EntityTitle: e.EntityTitle,
		Action:      e.Action,
		UserID:      actor.UserID,
		UserName:    actor.UserName,
		UserImage:   actor.UserImage,
	})
}

// Message renders a record the way the activity feed shows it.
func Message(l models.AuditLog) string {
	entity := strings.ToLower(string(l.EntityType))
	switch l.Action {
	case models.ActionCreate:
		return fmt.Sprintf("created %s %q", entity, l.EntityTitle)
	case models.ActionUpdate:
		return fmt.Sprintf("updated %s %q", entity, l.EntityTitle)
	case models.ActionDelete:
		return fmt.Sprintf("deleted %s %q", entity, l.EntityTitle)
	default:
		return fmt.Sprintf("unknown action %s %q", entity, l.EntityTitle)
	}
}

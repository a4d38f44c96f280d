package audit

import (
	"bytes"
	"context"
	"testing"

	"planify-backend/internal/auth"
	"planify-backend/internal/models"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepo struct {
	created []models.AuditLog
	err     error
}

func (s *stubRepo) CreateAuditLog(_ context.Context, l *models.AuditLog) error {
	if s.err != nil {
		return s.err
	}
	s.created = append(s.created, *l)
	return nil
}

func (s *stubRepo) GetEntityLogs(context.Context, string, uuid.UUID, models.EntityType, int) ([]models.AuditLog, error) {
	return nil, errors.New("unexpected GetEntityLogs call")
}

func (s *stubRepo) GetOrgLogs(context.Context, string, int, int) ([]models.AuditLog, int64, error) {
	return nil, 0, errors.New("unexpected GetOrgLogs call")
}

var actor = auth.Principal{OrgID: "org_1", UserID: "user_1", UserName: "Ada", UserImage: "img"}

func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.StandardLogger().Out
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(prev) })
	return &buf
}

func TestRecordWritesActorFields(t *testing.T) {
	r := &stubRepo{}
	id := uuid.New()

	NewRecorder(r).Record(context.Background(), actor, Entry{
		EntityID: id, EntityType: models.EntityList, EntityTitle: "Todo", Action: models.ActionCreate,
	})

	require.Len(t, r.created, 1)
	got := r.created[0]
	assert.Equal(t, "org_1", got.OrgID)
	assert.Equal(t, id, got.EntityID)
	assert.Equal(t, "user_1", got.UserID)
	assert.Equal(t, "Ada", got.UserName)
	assert.Equal(t, "img", got.UserImage)
}

func TestRecordSwallowsFailures(t *testing.T) {
	buf := captureLogs(t)
	r := &stubRepo{err: errors.New("db down")}

	assert.NotPanics(t, func() {
		NewRecorder(r).Record(context.Background(), actor, Entry{EntityID: uuid.New(), Action: models.ActionDelete})
	})
	assert.Contains(t, buf.String(), "AUDIT_LOG_ERROR")
	assert.Contains(t, buf.String(), "db down")
}

func TestRecordWithoutActor(t *testing.T) {
	captureLogs(t)
	r := &stubRepo{}

	NewRecorder(r).Record(context.Background(), auth.Principal{}, Entry{EntityID: uuid.New()})
	assert.Empty(t, r.created)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, `created card "Write docs"`, Message(models.AuditLog{Action: models.ActionCreate, EntityType: models.EntityCard, EntityTitle: "Write docs"}))
	assert.Equal(t, `updated list "Todo"`, Message(models.AuditLog{Action: models.ActionUpdate, EntityType: models.EntityList, EntityTitle: "Todo"}))
	assert.Equal(t, `deleted board "Q3"`, Message(models.AuditLog{Action: models.ActionDelete, EntityType: models.EntityBoard, EntityTitle: "Q3"}))
	assert.Equal(t, `unknown action board "Q3"`, Message(models.AuditLog{Action: "ARCHIVE", EntityType: models.EntityBoard, EntityTitle: "Q3"}))
}

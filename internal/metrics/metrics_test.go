package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserve(t *testing.T) {
	before := testutil.ToFloat64(actionsTotal.WithLabelValues("create_card", "ok"))

	Observe("create_card", "ok", 3*time.Millisecond)
	Observe("create_card", "validation", time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(actionsTotal.WithLabelValues("create_card", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(actionsTotal.WithLabelValues("create_card", "validation")))
	assert.GreaterOrEqual(t, testutil.CollectAndCount(actionDuration, "kanban_action_duration_seconds"), 1)
}

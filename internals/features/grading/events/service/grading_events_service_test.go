package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tutly_backend/internals/configs"
	eventModel "tutly_backend/internals/features/grading/events/model"
	"tutly_backend/internals/store/memstore"
)

func TestRecordEvaluated(t *testing.T) {
	st := memstore.New()
	svc := New(st)
	fixed := time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return fixed }

	sub := uuid.New()
	err := svc.RecordEvaluated(context.Background(), sub, "mentor1", nil, EvaluatedData{
		Categories: []string{"STYLING", "OTHER"},
		Total:      12,
	})
	require.NoError(t, err)

	events := st.GradingEvents()
	require.Len(t, events, 1)
	assert.Equal(t, eventModel.EventAssignmentEvaluated, events[0].GradingEventType)
	assert.Equal(t, sub, events[0].GradingEventSubmissionID)
	assert.Equal(t, "mentor1", events[0].GradingEventActorUsername)
	assert.True(t, fixed.Equal(events[0].GradingEventCreatedAt))
	assert.JSONEq(t, `{"categories":["STYLING","OTHER"],"total":12}`, string(events[0].GradingEventData))
}

func TestPurge(t *testing.T) {
	st := memstore.New()
	svc := New(st)
	now := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	svc.Now = func() time.Time { return now }
	ctx := context.Background()

	for _, age := range []int{1, 10, 200} {
		require.NoError(t, st.CreateGradingEvent(ctx, &eventModel.GradingEventModel{
			GradingEventType:      eventModel.EventAssignmentEvaluated,
			GradingEventCreatedAt: now.AddDate(0, 0, -age),
		}))
	}

	n, err := svc.Purge(ctx, 180)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.Len(t, st.GradingEvents(), 2)

	n, err = svc.Purge(ctx, 0)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStartRetentionCron(t *testing.T) {
	st := memstore.New()

	c, err := StartRetentionCron(st, configs.Config{EventRetentionCron: "30 3 * * *", EventRetentionDays: 30})
	require.NoError(t, err)
	assert.Len(t, c.Entries(), 1)
	c.Stop()

	_, err = StartRetentionCron(st, configs.Config{EventRetentionCron: "not a cron", EventRetentionDays: 30})
	assert.Error(t, err)
}

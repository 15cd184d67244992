package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/nexcommerce/catalogd/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memSyncLogs struct {
	rows []domain.SyncLog
}

func (m *memSyncLogs) Create(ctx context.Context, log *domain.SyncLog) error {
	m.rows = append(m.rows, *log)
	return nil
}

func TestTriggerManualPropagatesSourceFailure(t *testing.T) {
	logs := &memSyncLogs{}
	src := &fakeSource{err: fmt.Errorf("dial tcp: %w", ErrSourceUnavailable)}
	sched := NewSyncScheduler(newTestEngine(src, newMemRepo()), logs)

	_, err := sched.TriggerManual(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSourceUnavailable)

	require.Len(t, logs.rows, 1)
	assert.Equal(t, TriggerManual, logs.rows[0].Trigger)
	assert.Equal(t, "failed", logs.rows[0].Status)
	assert.NotEmpty(t, logs.rows[0].Message)
}

func TestTriggerManualRecordsOutcome(t *testing.T) {
	logs := &memSyncLogs{}
	src := &fakeSource{entries: []Entry{
		validEntry("e1", "SKU-1"),
		validEntry("e2", "SKU-2"),
	}}
	sched := NewSyncScheduler(newTestEngine(src, newMemRepo()), logs)

	out, err := sched.TriggerManual(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SyncOutcome{Created: 2}, out)

	require.Len(t, logs.rows, 1)
	row := logs.rows[0]
	assert.Equal(t, TriggerManual, row.Trigger)
	assert.Equal(t, "success", row.Status)
	assert.Equal(t, 2, row.Created)
	assert.Equal(t, 0, row.Updated)
	assert.Equal(t, 0, row.Errors)
	assert.False(t, row.FinishedAt.Before(row.StartedAt))
}

func TestOnScheduleSwallowsSourceFailure(t *testing.T) {
	logs := &memSyncLogs{}
	src := &fakeSource{err: fmt.Errorf("dial tcp: %w", ErrSourceUnavailable)}
	sched := NewSyncScheduler(newTestEngine(src, newMemRepo()), logs)

	assert.NotPanics(t, func() { sched.OnSchedule() })

	require.Len(t, logs.rows, 1)
	assert.Equal(t, TriggerSchedule, logs.rows[0].Trigger)
	assert.Equal(t, "failed", logs.rows[0].Status)
}

func TestOnScheduleRecordsSuccess(t *testing.T) {
	logs := &memSyncLogs{}
	src := &fakeSource{entries: []Entry{validEntry("e1", "SKU-1")}}
	sched := NewSyncScheduler(newTestEngine(src, newMemRepo()), logs)

	sched.OnSchedule()

	require.Len(t, logs.rows, 1)
	assert.Equal(t, TriggerSchedule, logs.rows[0].Trigger)
	assert.Equal(t, "success", logs.rows[0].Status)
	assert.Equal(t, 1, logs.rows[0].Created)
}

func TestSchedulerWithoutLogRepo(t *testing.T) {
	src := &fakeSource{entries: []Entry{validEntry("e1", "SKU-1")}}
	sched := NewSyncScheduler(newTestEngine(src, newMemRepo()), nil)

	out, err := sched.TriggerManual(context.Background())
	require.NoError(t, err)
	assert.Equal(t, SyncOutcome{Created: 1}, out)
}

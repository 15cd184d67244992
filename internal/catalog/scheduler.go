package catalog

import (
	"context"
	"time"

	"github.com/nexcommerce/catalogd/internal/domain"
	"github.com/nexcommerce/catalogd/pkg/common"
	"go.uber.org/zap"
)

const (
	TriggerSchedule = "schedule"
	TriggerManual   = "manual"
)

// SyncScheduler wraps the engine with the two trigger contracts: the
// scheduled tick logs and swallows failures so a broken source can never
// take the host process down with it, while the manual trigger hands the
// error back to its caller. Both paths share one run implementation.
type SyncScheduler struct {
	engine *ReconciliationEngine
	logs   SyncLogRepository
}

func NewSyncScheduler(engine *ReconciliationEngine, logs SyncLogRepository) *SyncScheduler {
	return &SyncScheduler{engine: engine, logs: logs}
}

// OnSchedule is registered on the cron. It must return normally no matter
// what the run does.
func (s *SyncScheduler) OnSchedule() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error("scheduled catalog sync panic: ", err)
		}
	}()

	outcome, err := s.run(context.Background(), TriggerSchedule)
	if err != nil {
		zap.L().Error("scheduled catalog sync failed", zap.Error(err))
		return
	}
	zap.L().Info("scheduled catalog sync finished",
		zap.Int("created", outcome.Created),
		zap.Int("updated", outcome.Updated),
		zap.Int("errors", outcome.Errors),
	)
}

// TriggerManual runs a sync on demand and propagates the run-level error;
// the interactive caller needs to know the source was unreachable.
func (s *SyncScheduler) TriggerManual(ctx context.Context) (SyncOutcome, error) {
	return s.run(ctx, TriggerManual)
}

func (s *SyncScheduler) run(ctx context.Context, trigger string) (SyncOutcome, error) {
	started := time.Now()
	outcome, err := s.engine.Run(ctx)
	s.record(ctx, trigger, started, outcome, err)
	return outcome, err
}

func (s *SyncScheduler) record(ctx context.Context, trigger string, started time.Time, outcome SyncOutcome, runErr error) {
	if s.logs == nil {
		return
	}
	log := &domain.SyncLog{
		ID:         common.UUIDint64(),
		Trigger:    trigger,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Created:    outcome.Created,
		Updated:    outcome.Updated,
		Errors:     outcome.Errors,
		Status:     "success",
	}
	if runErr != nil {
		log.Status = "failed"
		log.Message = runErr.Error()
	}
	if err := s.logs.Create(ctx, log); err != nil {
		zap.L().Warn("failed to record sync run", zap.Error(err))
	}
}

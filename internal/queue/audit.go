package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/OFFIS-RIT/greenlens/internal/jobs"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"
)

// ProcessAuditMessage executes the run described by msg and publishes its
// terminal status. A failed pipeline is recorded on the run and is not a
// processing error; only malformed messages and store failures are.
func ProcessAuditMessage(
	ctx context.Context,
	store jobs.Store,
	newPipeline jobs.PipelineFactory,
	ch Publisher,
	msg []byte,
) error {
	var data AuditMessage
	if err := json.Unmarshal(msg, &data); err != nil {
		return fmt.Errorf("decode audit message: %w", err)
	}
	if data.RunID == "" {
		return fmt.Errorf("audit message without run_id")
	}

	run, err := store.Get(ctx, data.RunID)
	if err != nil {
		return fmt.Errorf("load run %s: %w", data.RunID, err)
	}
	if run.Status.Terminal() {
		logger.Info("[Queue] Skipping finished run", "run", run.ID, "status", run.Status)
		return nil
	}

	final, err := jobs.Execute(ctx, store, newPipeline, run)
	if err != nil {
		return err
	}

	event, err := json.Marshal(StatusEvent{
		RunID:       final.ID,
		CompanyName: final.CompanyName,
		Status:      string(final.Status),
		Error:       final.Error,
	})
	if err != nil {
		return err
	}
	if err := PublishTopic(context.WithoutCancel(ctx), ch, "audit."+string(final.Status), event); err != nil {
		logger.Warn("[Queue] Failed to publish status event", "run", final.ID, "err", err)
	}
	return nil
}

// StaleRunFailer is implemented by run stores that can find abandoned runs.
type StaleRunFailer interface {
	FailStaleRuns(ctx context.Context, before time.Time, message string) (int64, error)
}

// RecoverStaleRuns marks runs without progress for olderThan as failed.
// Runs are never restarted. Only one worker recovers at a time when guard
// is set.
func RecoverStaleRuns(ctx context.Context, store jobs.Store, olderThan time.Duration, guard Guard) error {
	failer, ok := store.(StaleRunFailer)
	if !ok {
		logger.Debug("[Queue] Run store cannot recover stale runs")
		return nil
	}
	if guard == nil {
		guard = runDirect
	}
	return guard(ctx, "recover_stale_runs", func(ctx context.Context) error {
		n, err := failer.FailStaleRuns(ctx, time.Now().UTC().Add(-olderThan), "run abandoned by worker")
		if err != nil {
			return fmt.Errorf("failed to recover stale runs: %w", err)
		}
		if n > 0 {
			logger.Info("[Queue] Marked stale runs as failed", "count", n)
		}
		return nil
	})
}

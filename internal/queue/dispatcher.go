package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/OFFIS-RIT/greenlens/internal/jobs"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"
)

// Dispatcher launches runs by publishing them to the audit queue. The run
// record is stored before publishing so a poll never misses a run.
type Dispatcher struct {
	ch    Publisher
	store jobs.Store
}

func NewDispatcher(ch Publisher, store jobs.Store) *Dispatcher {
	return &Dispatcher{ch: ch, store: store}
}

func (d *Dispatcher) Launch(ctx context.Context, companyName string) (string, error) {
	run, err := jobs.NewRun(companyName)
	if err != nil {
		return "", err
	}
	if err := d.store.Put(ctx, run); err != nil {
		return "", err
	}

	data, err := json.Marshal(AuditMessage{RunID: run.ID, CompanyName: run.CompanyName})
	if err != nil {
		return "", err
	}
	if err := PublishFIFO(ctx, d.ch, AuditQueue, data); err != nil {
		run.Status = jobs.StatusFailed
		run.Error = fmt.Sprintf("failed to enqueue run: %v", err)
		run.UpdatedAt = time.Now().UTC()
		if perr := d.store.Put(ctx, run); perr != nil {
			logger.Error("[Queue] Failed to mark run as failed", "run", run.ID, "err", perr)
		}
		return "", err
	}

	logger.Info("[Queue] Enqueued audit run", "run", run.ID, "company", run.CompanyName)
	return run.ID, nil
}

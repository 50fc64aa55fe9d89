package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/OFFIS-RIT/greenlens/pkg/audit"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"

	"github.com/google/uuid"
)

// NewRun validates companyName and returns a fresh running record.
func NewRun(companyName string) (Run, error) {
	companyName = strings.TrimSpace(companyName)
	if companyName == "" {
		return Run{}, audit.ErrEmptyCompanyName
	}
	now := time.Now().UTC()
	return Run{
		ID:          uuid.NewString(),
		CompanyName: companyName,
		Status:      StatusRunning,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Execute runs the pipeline for run and stores the terminal record. Stage
// progress is written while the run is going. Errors and panics turn into a
// failed record carrying the message; Execute itself never panics.
//
// The terminal record is written even when ctx was cancelled mid-run. The
// returned error is non-nil only when that write failed, in which case the
// stored record may still say running.
func Execute(ctx context.Context, store Store, newPipeline PipelineFactory, run Run) (Run, error) {
	final := func(state *audit.State, err error) (Run, error) {
		run.UpdatedAt = time.Now().UTC()
		if err != nil {
			run.Status = StatusFailed
			run.Error = err.Error()
		} else {
			run.Status = StatusCompleted
			run.Stage = ""
			run.Result = state
		}
		if perr := store.Put(context.WithoutCancel(ctx), run); perr != nil {
			logger.Error("[Jobs] Failed to store run result", "run", run.ID, "err", perr)
			return run, fmt.Errorf("store result of run %s: %w", run.ID, perr)
		}
		return run, nil
	}

	var (
		state audit.State
		err   error
	)
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
				logger.Error("[Jobs] Run panicked", "run", run.ID, "panic", r)
			}
		}()

		pipeline := newPipeline().Observe(func(ctx context.Context, r audit.StageReport) {
			progress := run
			progress.Stage = r.Stage
			progress.UpdatedAt = time.Now().UTC()
			if perr := store.Put(ctx, progress); perr != nil {
				logger.Warn("[Jobs] Failed to store run progress", "run", run.ID, "err", perr)
			}
		})
		state, err = pipeline.Run(ctx, run.CompanyName)
	}()

	if err != nil {
		logger.Error("[Jobs] Run failed", "run", run.ID, "company", run.CompanyName, "err", err)
		return final(nil, err)
	}
	logger.Info("[Jobs] Run completed", "run", run.ID, "company", run.CompanyName)
	return final(&state, nil)
}

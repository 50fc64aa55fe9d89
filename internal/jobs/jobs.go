package jobs

import (
	"context"
	"errors"
	"time"

	"github.com/OFFIS-RIT/greenlens/pkg/audit"
)

type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Terminal reports whether the run has finished.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

var ErrRunNotFound = errors.New("run not found")

// Run is the record a poller sees for one audit invocation. Result holds the
// pipeline state once the run completed.
type Run struct {
	ID          string       `json:"task_id"`
	CompanyName string       `json:"company_name"`
	Status      Status       `json:"status"`
	Stage       string       `json:"stage,omitempty"`
	Error       string       `json:"error,omitempty"`
	Result      *audit.State `json:"result,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Store keeps run records keyed by run ID. Implementations must be safe for
// concurrent use with distinct keys.
type Store interface {
	Put(ctx context.Context, run Run) error
	Get(ctx context.Context, id string) (Run, error)
}

// Launcher starts a run without waiting for it and returns its ID.
type Launcher interface {
	Launch(ctx context.Context, companyName string) (string, error)
}

// PipelineFactory returns a pipeline for a single run.
type PipelineFactory func() *audit.Pipeline

package jobs

import (
	"context"
	"sync"

	"github.com/OFFIS-RIT/greenlens/pkg/logger"
)

// LocalLauncher runs every audit on its own goroutine in this process.
type LocalLauncher struct {
	store       Store
	newPipeline PipelineFactory
	wg          sync.WaitGroup
}

func NewLocalLauncher(store Store, newPipeline PipelineFactory) *LocalLauncher {
	return &LocalLauncher{store: store, newPipeline: newPipeline}
}

// Launch stores a running record and starts the pipeline. The run is not
// bound to ctx cancellation; it always reaches a terminal state.
func (l *LocalLauncher) Launch(ctx context.Context, companyName string) (string, error) {
	run, err := NewRun(companyName)
	if err != nil {
		return "", err
	}
	if err := l.store.Put(ctx, run); err != nil {
		return "", err
	}

	logger.Info("[Jobs] Launching run", "run", run.ID, "company", run.CompanyName)

	runCtx := context.WithoutCancel(ctx)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		_, _ = Execute(runCtx, l.store, l.newPipeline, run)
	}()
	return run.ID, nil
}

// Wait blocks until all launched runs finished.
func (l *LocalLauncher) Wait() {
	l.wg.Wait()
}

package jobs

import (
	"context"
	"time"

	"github.com/OFFIS-RIT/greenlens/pkg/logger"

	"github.com/jellydator/ttlcache/v3"
)

// MemoryStore keeps runs in process memory. With a positive ttl finished
// runs expire ttl after their last update; running records never expire.
type MemoryStore struct {
	runs *ttlcache.Cache[string, Run]
	ttl  time.Duration
}

func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithTTL(0)
}

func NewMemoryStoreWithTTL(ttl time.Duration) *MemoryStore {
	runs := ttlcache.New[string, Run](
		ttlcache.WithDisableTouchOnHit[string, Run](),
	)
	runs.OnEviction(func(ctx context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, Run]) {
		if reason == ttlcache.EvictionReasonExpired {
			logger.Debug("[Jobs] Expired finished run", "run", item.Key())
		}
	})
	return &MemoryStore{runs: runs, ttl: ttl}
}

func (s *MemoryStore) Put(ctx context.Context, run Run) error {
	ttl := ttlcache.NoTTL
	if s.ttl > 0 && run.Status.Terminal() {
		ttl = s.ttl
	}
	s.runs.Set(run.ID, run, ttl)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (Run, error) {
	item := s.runs.Get(id)
	if item == nil {
		return Run{}, ErrRunNotFound
	}
	return item.Value(), nil
}

// Start runs the expiry loop until ctx is done. Expired runs are invisible
// to Get even without it; the loop frees their memory.
func (s *MemoryStore) Start(ctx context.Context) {
	go s.runs.Start()
	go func() {
		<-ctx.Done()
		s.runs.Stop()
	}()
}

package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/OFFIS-RIT/greenlens/internal/jobs"
	"github.com/OFFIS-RIT/greenlens/internal/queue"
	"github.com/OFFIS-RIT/greenlens/internal/timing"
	"github.com/OFFIS-RIT/greenlens/internal/util"
	"github.com/OFFIS-RIT/greenlens/pkg/ai"
	"github.com/OFFIS-RIT/greenlens/pkg/audit"
	"github.com/OFFIS-RIT/greenlens/pkg/leaselock"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"
	"github.com/OFFIS-RIT/greenlens/pkg/search"
	"github.com/OFFIS-RIT/greenlens/pkg/search/duckduckgo"
	"github.com/OFFIS-RIT/greenlens/pkg/store"
	"github.com/OFFIS-RIT/greenlens/pkg/store/memory"
	pgstore "github.com/OFFIS-RIT/greenlens/pkg/store/pgx"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pgxvec "github.com/pgvector/pgvector-go/pgx"
	"github.com/redis/go-redis/v9"
)

// Services bundles the collaborators shared by the binaries.
type Services struct {
	AI     ai.Client
	Pool   *pgxpool.Pool
	Docs   store.DocumentStore
	Search search.Client
	Runs   jobs.Store
	Redis  *redis.Client
}

// NewPool connects to DATABASE_URL with the pgvector types registered on
// every connection.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		return pgxvec.RegisterTypes(ctx, conn)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func NewSearchClient() search.Client {
	return duckduckgo.New(duckduckgo.Params{
		BaseURL:           util.GetEnv("SEARCH_URL"),
		MaxResults:        int(util.GetEnvNumeric("SEARCH_MAX_RESULTS", duckduckgo.DefaultMaxResults)),
		RequestsPerSecond: util.GetEnvNumeric("SEARCH_RPS", 1),
	})
}

// NewServices builds every collaborator from the environment. Without
// DATABASE_URL the document store lives in memory and is empty until
// reports are ingested in the same process.
func NewServices(ctx context.Context) (*Services, error) {
	llm, err := NewAIClient()
	if err != nil {
		return nil, err
	}
	s := &Services{AI: llm, Search: NewSearchClient()}

	if url := util.GetEnv("DATABASE_URL"); url != "" {
		s.Pool, err = NewPool(ctx, url)
		if err != nil {
			return nil, err
		}
		s.Docs, err = pgstore.NewDocumentDBStoreWithConnection(s.Pool, llm,
			pgstore.WithCollection(util.GetEnvString("VECTOR_COLLECTION", store.DefaultCollection)))
		if err != nil {
			s.Close()
			return nil, err
		}
	} else {
		logger.Warn("DATABASE_URL not set, using in-memory document store")
		s.Docs = memory.New(llm)
	}

	s.Runs, err = s.newRunStore(ctx)
	if err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

func (s *Services) newRunStore(ctx context.Context) (jobs.Store, error) {
	ttl := time.Duration(util.GetEnvNumeric("RUN_TTL_HOURS", 0)) * time.Hour

	switch kind := util.GetEnvString("RUN_STORE", "memory"); kind {
	case "memory":
		runs := jobs.NewMemoryStoreWithTTL(ttl)
		if ttl > 0 {
			runs.Start(ctx)
		}
		return runs, nil
	case "postgres":
		if s.Pool == nil {
			return nil, fmt.Errorf("RUN_STORE=postgres requires DATABASE_URL")
		}
		return jobs.NewPgxStore(s.Pool), nil
	case "redis":
		opts, err := redis.ParseURL(util.GetEnvString("REDIS_URL", "redis://localhost:6379/0"))
		if err != nil {
			return nil, fmt.Errorf("parse REDIS_URL: %w", err)
		}
		s.Redis = redis.NewClient(opts)
		if err := s.Redis.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("connect to redis: %w", err)
		}
		return jobs.NewRedisStore(s.Redis, ttl), nil
	default:
		return nil, fmt.Errorf("unknown RUN_STORE %q", kind)
	}
}

// PipelineFactory returns a factory building audit pipelines on s.
func (s *Services) PipelineFactory() (jobs.PipelineFactory, error) {
	auditor, err := audit.NewAuditor(s.AI, s.Docs, s.Search,
		audit.WithTopicK(int(util.GetEnvNumeric("AUDIT_TOPIC_K", 5))),
		audit.WithMatchEvidenceByID(util.GetEnvBool("AUDIT_MATCH_BY_ID", false)),
	)
	if err != nil {
		return nil, err
	}
	if s.Pool == nil {
		return auditor.Pipeline, nil
	}
	observer := timing.Observer(s.Pool)
	return func() *audit.Pipeline {
		return auditor.Pipeline().Observe(observer)
	}, nil
}

// Guard returns a lease guard on the database, or nil without one.
func (s *Services) Guard() queue.Guard {
	if s.Pool == nil {
		return nil
	}
	ttl := time.Duration(util.GetEnvNumeric("LEASE_TTL_MINUTES", 5)) * time.Minute
	return queue.LeaseGuard(leaselock.New(s.Pool), ttl)
}

func (s *Services) Close() {
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			logger.Warn("Failed to close redis client", "err", err)
		}
	}
	if s.Pool != nil {
		s.Pool.Close()
	}
}

package timing

import (
	"context"
	"time"

	"github.com/OFFIS-RIT/greenlens/pkg/audit"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// sampleSize bounds how many recent samples per stage feed a prediction.
const sampleSize = 50

type dbConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const addStageTimeSQL = `
INSERT INTO stage_timings (stage, duration_ms)
VALUES ($1, $2)`

const predictRunDurationSQL = `
SELECT COALESCE(SUM(avg_ms), 0)::bigint
FROM (
	SELECT AVG(duration_ms) AS avg_ms
	FROM (
		SELECT stage, duration_ms,
			row_number() OVER (PARTITION BY stage ORDER BY created_at DESC) AS rn
		FROM stage_timings
	) recent
	WHERE rn <= $1
	GROUP BY stage
) per_stage`

func AddStageTime(ctx context.Context, conn dbConn, stage string, duration time.Duration) error {
	_, err := conn.Exec(ctx, addStageTimeSQL, stage, duration.Milliseconds())
	return err
}

// PredictRunDuration sums the recent average duration of every stage. It
// returns 0 while no samples exist.
func PredictRunDuration(ctx context.Context, conn dbConn) (time.Duration, error) {
	var ms int64
	if err := conn.QueryRow(ctx, predictRunDurationSQL, sampleSize).Scan(&ms); err != nil {
		return 0, err
	}
	return time.Duration(ms) * time.Millisecond, nil
}

// Observer records the duration of every finished stage. Failures are
// logged and never affect the run.
func Observer(conn dbConn) audit.Observer {
	return func(ctx context.Context, r audit.StageReport) {
		if err := AddStageTime(context.WithoutCancel(ctx), conn, r.Stage, r.Duration); err != nil {
			logger.Warn("[Timing] Failed to record stage time", "stage", r.Stage, "err", err)
		}
	}
}

package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/OFFIS-RIT/greenlens/pkg/ingest"
	"github.com/OFFIS-RIT/greenlens/pkg/loader"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"
)

// FileResolver lists the reports found at source.
type FileResolver func(ctx context.Context, source string) ([]loader.ReportFile, error)

// ProcessIngestMessage ingests every report at the message's source. The
// work runs under guard keyed by source so two workers never ingest the same
// source at once; a nil guard runs it directly.
func ProcessIngestMessage(ctx context.Context, ing *ingest.Ingester, resolve FileResolver, guard Guard, msg []byte) error {
	var data IngestMessage
	if err := json.Unmarshal(msg, &data); err != nil {
		return fmt.Errorf("decode ingest message: %w", err)
	}
	source := strings.TrimSpace(data.Source)
	if source == "" {
		return fmt.Errorf("ingest message without source")
	}

	if guard == nil {
		guard = runDirect
	}
	return guard(ctx, "ingest:"+source, func(ctx context.Context) error {
		return ingestSource(ctx, ing, resolve, source)
	})
}

func ingestSource(ctx context.Context, ing *ingest.Ingester, resolve FileResolver, source string) error {
	files, err := resolve(ctx, source)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", source, err)
	}
	if len(files) == 0 {
		logger.Warn("[Queue] No reports found", "source", source)
		return nil
	}

	stats, err := ing.Ingest(ctx, files)
	if err != nil && stats.Failed == stats.Files {
		return err
	}
	if err != nil {
		logger.Warn("[Queue] Some reports failed to ingest", "source", source, "failed", stats.Failed, "err", err)
	}
	return nil
}

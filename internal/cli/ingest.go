package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/OFFIS-RIT/greenlens/internal/queue"
	"github.com/OFFIS-RIT/greenlens/internal/setup"

	"github.com/spf13/cobra"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <dir | s3://bucket/prefix>",
	Short: "Load PDF reports, split them into chunks and add them to the document store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		source := args[0]

		enqueue, _ := cmd.Flags().GetBool("enqueue")
		if enqueue {
			return enqueueIngest(ctx, source)
		}

		services, err := setup.NewServices(ctx)
		if err != nil {
			return err
		}
		defer services.Close()

		files, err := setup.ReportFiles(ctx, source)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No PDF reports found in %s\n", source)
			return nil
		}

		stats, err := setup.NewIngester(services.Docs).Ingest(ctx, files)
		fmt.Fprintf(cmd.OutOrStdout(), "Ingested %d chunks from %d reports (%d failed)\n",
			stats.Chunks, stats.Files-stats.Failed, stats.Failed)
		return err
	},
}

func enqueueIngest(ctx context.Context, source string) error {
	conn := queue.Init()
	defer conn.Close()
	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()
	if err := queue.SetupQueues(ch, queue.Queues); err != nil {
		return err
	}

	data, err := json.Marshal(queue.IngestMessage{Source: source})
	if err != nil {
		return err
	}
	return queue.PublishFIFO(ctx, ch, queue.IngestQueue, data)
}

func init() {
	ingestCmd.Flags().Bool("enqueue", false, "Publish an ingest job to the worker instead of ingesting locally")
}

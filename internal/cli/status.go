package cli

import (
	"context"

	"github.com/OFFIS-RIT/greenlens/internal/server/util"
	"github.com/OFFIS-RIT/greenlens/internal/setup"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status <task id>",
	Short: "Show a run from the configured run store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		services, err := setup.NewServices(ctx)
		if err != nil {
			return err
		}
		defer services.Close()

		run, err := services.Runs.Get(ctx, args[0])
		if err != nil {
			return err
		}
		res, err := util.RunResponse(run)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("output")
		return writeOutput(cmd.OutOrStdout(), format, res)
	},
}

func init() {
	statusCmd.Flags().StringP("output", "o", "json", "Output format: json or yaml")
}

package cli

import (
	"context"
	"strings"

	"github.com/OFFIS-RIT/greenlens/internal/setup"
	"github.com/OFFIS-RIT/greenlens/pkg/audit"

	"github.com/spf13/cobra"
)

var auditCmd = &cobra.Command{
	Use:   "audit <company name>",
	Short: "Run the audit pipeline for a company and print the result",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		company := strings.TrimSpace(strings.Join(args, " "))
		if company == "" {
			return audit.ErrEmptyCompanyName
		}
		format, _ := cmd.Flags().GetString("output")
		if format != "json" && format != "yaml" {
			return writeOutput(cmd.OutOrStdout(), format, nil)
		}

		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}

		services, err := setup.NewServices(ctx)
		if err != nil {
			return err
		}
		defer services.Close()

		newPipeline, err := services.PipelineFactory()
		if err != nil {
			return err
		}

		state, err := newPipeline().Run(ctx, company)
		if err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), format, state)
	},
}

func init() {
	auditCmd.Flags().StringP("output", "o", "json", "Output format: json or yaml")
}

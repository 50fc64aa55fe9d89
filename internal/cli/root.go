package cli

import (
	"github.com/OFFIS-RIT/greenlens/internal/util"
	"github.com/OFFIS-RIT/greenlens/pkg/logger"
	"github.com/OFFIS-RIT/greenlens/pkg/logger/console"

	"github.com/spf13/cobra"
)

var version = "dev"

func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "esgctl",
	Short: "esgctl audits sustainability reports for greenwashing",
	Long: `esgctl runs the greenwashing audit pipeline from the command line,
ingests sustainability reports into the document store and applies the
database migrations.

Configuration is read from the environment and an optional .env file.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		util.LoadEnv()
		debug, _ := cmd.Flags().GetBool("debug")
		logger.Init(console.NewConsoleLogger(console.ConsoleLoggerParams{
			Debug: debug || util.GetEnvBool("DEBUG", false),
		}))
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(ingestCmd)
	rootCmd.AddCommand(migrateCmd)
}

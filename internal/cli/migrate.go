package cli

import (
	"errors"
	"fmt"

	"github.com/OFFIS-RIT/greenlens/internal/db"
	"github.com/OFFIS-RIT/greenlens/internal/util"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		url := util.GetEnv("DATABASE_URL")
		if url == "" {
			return errors.New("DATABASE_URL is not set")
		}
		path, _ := cmd.Flags().GetString("path")
		if path == "" {
			path = util.GetEnv("MIGRATIONS_PATH")
		}
		if err := db.Migrate(url, path); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
		return nil
	},
}

func init() {
	migrateCmd.Flags().String("path", "", "Read migrations from this directory instead of the embedded set")
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/axellelanca/surl/cmd"
	"github.com/axellelanca/surl/internal/repository"
)

// MigrateCmd represents the 'migrate' command
// This command creates or updates the local history schema
var MigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Executes database migrations for the local history.",
	Long: `This command connects to the configured SQLite database and executes GORM
automatic migrations to create the 'links' table used by the local history.`,
	Args: cobra.NoArgs,
	RunE: func(c *cobra.Command, args []string) error {
		// OpenDatabase runs the migrations before returning
		db, err := repository.OpenDatabase(cmd.Cfg.Database.Name)
		if err != nil {
			return err
		}
		defer repository.Close(db)

		fmt.Fprintln(c.OutOrStdout(), "Database migrations executed successfully.")
		return nil
	},
}

func init() {
	cmd.RootCmd.AddCommand(MigrateCmd)
}

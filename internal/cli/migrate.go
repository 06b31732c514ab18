package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yatube-project/yatube/internal/models"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDB(rootOpts)
			if err != nil {
				return err
			}
			defer db.CloseDB()

			if err := models.AutoMigrate(db.SQL); err != nil {
				return fmt.Errorf("auto migrate: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied.")
			return nil
		},
	}
}

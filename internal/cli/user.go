package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yatube-project/yatube/internal/services"
)

// NewUserCommand creates the user command.
func NewUserCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage users",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "delete <username>",
		Short: "Delete a user with their posts, comments and follows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := openDB(rootOpts)
			if err != nil {
				return err
			}
			defer db.CloseDB()

			if err := services.NewAccounts(db.SQL).DeleteUser(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete user %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted user %s\n", args[0])
			return nil
		},
	})
	return cmd
}

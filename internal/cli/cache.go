package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewCacheCommand creates the cache command.
func NewCacheCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the page cache",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every cached page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDB(rootOpts)
			if err != nil {
				return err
			}
			defer db.CloseDB()

			if cfg.CacheBackend != "mongo" {
				fmt.Fprintln(cmd.OutOrStdout(), "The memory cache lives inside the server process; restart the server to clear it.")
				return nil
			}
			store, err := cacheStore(cmd.Context(), cfg, db)
			if err != nil {
				return err
			}
			if err := store.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear page cache: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Page cache cleared.")
			return nil
		},
	})
	return cmd
}

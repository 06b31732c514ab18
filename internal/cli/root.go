// Package cli implements the yatube command line: the web server and the
// administrative commands that run against the same database.
package cli

import (
	"github.com/spf13/cobra"
	"github.com/yatube-project/yatube/pkg/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigPath string
}

// NewRootCommand creates the root command for the yatube CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:          "yatube",
		Short:        "Yatube - a small blogging platform",
		Long:         "Yatube serves a blog where users publish posts, comment on them and follow authors.",
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "path to a YAML config file")

	// Add subcommands
	cmd.AddCommand(NewServeCommand(opts))
	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewGroupCommand(opts))
	cmd.AddCommand(NewUserCommand(opts))
	cmd.AddCommand(NewCacheCommand(opts))

	return cmd
}

// openDB loads the configuration and connects to the databases it names.
// The caller closes the returned DB.
func openDB(opts *RootOptions) (*config.Config, *config.DB, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, db, nil
}

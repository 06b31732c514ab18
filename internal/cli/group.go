package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/yatube-project/yatube/internal/models"
	"github.com/yatube-project/yatube/internal/services"
	"github.com/yatube-project/yatube/internal/validators"
)

// NewGroupCommand creates the group command. Groups have no web form and
// are managed from here.
func NewGroupCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Manage groups",
	}
	cmd.AddCommand(newGroupCreateCommand(rootOpts))
	cmd.AddCommand(newGroupListCommand(rootOpts))
	cmd.AddCommand(newGroupDeleteCommand(rootOpts))
	return cmd
}

func newGroupCreateCommand(rootOpts *RootOptions) *cobra.Command {
	var form models.GroupForm
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validators.NewValidator().Validate(&form); err != nil {
				for field, msg := range validators.FieldErrors(err) {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", field, msg)
				}
				return errors.New("invalid group")
			}

			cfg, db, err := openDB(rootOpts)
			if err != nil {
				return err
			}
			defer db.CloseDB()

			group, err := services.NewBlog(db.SQL, cfg.PostsPerPage).CreateGroup(cmd.Context(), form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created group %q (/group/%s/)\n", group.Title, group.Slug)
			return nil
		},
	}
	cmd.Flags().StringVar(&form.Title, "title", "", "group title")
	cmd.Flags().StringVar(&form.Slug, "slug", "", "URL slug, letters, digits, hyphens and underscores")
	cmd.Flags().StringVar(&form.Description, "description", "", "group description")
	return cmd
}

func newGroupListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDB(rootOpts)
			if err != nil {
				return err
			}
			defer db.CloseDB()

			groups, err := services.NewBlog(db.SQL, cfg.PostsPerPage).ListGroups(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "SLUG\tTITLE")
			for _, g := range groups {
				fmt.Fprintf(w, "%s\t%s\n", g.Slug, g.Title)
			}
			return w.Flush()
		},
	}
}

func newGroupDeleteCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <slug>",
		Short: "Delete a group. Its posts are kept without a group",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := openDB(rootOpts)
			if err != nil {
				return err
			}
			defer db.CloseDB()

			if err := services.NewBlog(db.SQL, cfg.PostsPerPage).DeleteGroup(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("delete group %s: %w", args[0], err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted group %s\n", args[0])
			return nil
		},
	}
}

package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	qherrors "github.com/randalmurphal/quickhooks/internal/errors"
	"github.com/randalmurphal/quickhooks/templates"
)

// newTemplatesCmd creates the templates command with subcommands.
func newTemplatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "templates",
		Aliases: []string{"template"},
		Short:   "Inspect the bundled template files",
	}
	cmd.AddCommand(newTemplatesListCmd())
	cmd.AddCommand(newTemplatesShowCmd())
	return cmd
}

func newTemplatesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bundled templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := templates.Names()
			if jsonOut {
				return printJSON(cmd.OutOrStdout(), names)
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newTemplatesShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a bundled template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			if !slices.Contains(templates.Names(), name) {
				return qherrors.ErrTemplateNotFound(name)
			}
			data, err := templates.Read(name)
			if err != nil {
				return qherrors.ErrTemplateNotFound(name).WithCause(err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}

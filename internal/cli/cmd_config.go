package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/randalmurphal/quickhooks/internal/config"
)

// newConfigCmd creates the config command with subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "View configuration",
		Long: `View quickhooks configuration.

Configuration is merged from these sources, later ones winning:
  1. Built-in defaults
  2. User: ~/.config/quickhooks/config.yaml
  3. Project: .quickhooks.yaml in the target directory
  4. --config file
  5. Environment variables (QUICKHOOKS_*)`,
	}
	cmd.AddCommand(newConfigShowCmd())
	return cmd
}

// newConfigShowCmd creates the 'config show' subcommand.
func newConfigShowCmd() *cobra.Command {
	var showSource bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show merged configuration",
		Long: `Show the merged configuration as YAML. Use --source to list the sources
that contributed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(out, loaded.Config)
			}
			if showSource {
				printSources(out, loaded.Sources)
			}
			return printConfigAsYAML(out, loaded.Config)
		},
	}

	cmd.Flags().BoolVar(&showSource, "source", false, "list the sources that were merged")

	return cmd
}

func printSources(w io.Writer, sources []config.TrackedSource) {
	fmt.Fprintln(w, "# Sources:")
	for _, s := range sources {
		fmt.Fprintf(w, "#   %s\n", s)
	}
}

func printConfigAsYAML(w io.Writer, cfg *config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	_, err = w.Write(data)
	return err
}

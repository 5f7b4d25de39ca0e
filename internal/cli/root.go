// Package cli implements the quickhooks command-line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/quickhooks/internal/config"
	"github.com/randalmurphal/quickhooks/internal/logging"
)

var (
	cfgFile   string
	targetDir string
	verbose   bool
	quiet     bool
	noColor   bool
	jsonOut   bool
)

// newRootCmd builds the command tree. Flag variables are reset to their
// defaults each time.
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "quickhooks",
		Short: "Set up and verify git pre-commit hooks",
		Long: `quickhooks drops a ready-made pre-commit configuration into a repository,
installs the git hook scripts and reports which linters are missing.

Quick start:
  quickhooks setup            Write config files and install hooks
  quickhooks check            Report what is present and what is missing
  quickhooks run hooks        Run every hook against all files`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(logging.Options{
				Verbose: verbose,
				Quiet:   quiet,
				NoColor: noColor,
				Output:  cmd.ErrOrStderr(),
			})
			configureColor(cmd.OutOrStdout())
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .quickhooks.yaml in the target directory)")
	rootCmd.PersistentFlags().StringVarP(&targetDir, "dir", "C", ".", "target repository directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "output as JSON")

	rootCmd.AddCommand(newSetupCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newTemplatesCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the CLI with os.Args.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// loadConfig loads configuration for the target directory.
func loadConfig() (*config.Loaded, error) {
	return config.Load(config.LoadOptions{
		ProjectDir: targetDir,
		File:       cfgFile,
	})
}

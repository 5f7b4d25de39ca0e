package cli

import (
	"errors"

	"github.com/spf13/cobra"

	qherrors "github.com/randalmurphal/quickhooks/internal/errors"
	"github.com/randalmurphal/quickhooks/internal/git"
	"github.com/randalmurphal/quickhooks/internal/util"
)

// newRunCmd creates the run command
func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run tools through the hook framework",
	}
	cmd.AddCommand(newRunHooksCmd())
	return cmd
}

// newRunHooksCmd creates the 'run hooks' subcommand.
func newRunHooksCmd() *cobra.Command {
	var opts git.RunOptions

	cmd := &cobra.Command{
		Use:   "hooks",
		Short: "Run every configured hook against all files",
		Long: `Run 'pre-commit run --all-files' in the target directory, streaming its
output. The exit status is the same as pre-commit's.

Examples:
  quickhooks run hooks
  quickhooks run hooks --hook black
  quickhooks run hooks --stage pre-push`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig()
			if err != nil {
				return err
			}

			if !util.DirExists(targetDir) {
				return qherrors.ErrFileSystem("read", targetDir, errors.New("not a directory"))
			}

			client := git.NewHookClient(loaded.Config.PreCommit)
			client.Stdout = cmd.OutOrStdout()
			client.Stderr = cmd.ErrOrStderr()

			code, err := client.RunAll(cmd.Context(), targetDir, opts)
			if err != nil {
				return err
			}
			if code != 0 {
				return &qherrors.ExitError{Code: code}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.HookID, "hook", "", "run only the hook with this id")
	cmd.Flags().StringVar(&opts.Stage, "stage", "", "hook stage to run (e.g. pre-push, manual)")

	return cmd
}

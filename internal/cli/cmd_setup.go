package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/quickhooks/internal/bootstrap"
	"github.com/randalmurphal/quickhooks/internal/detect"
	"github.com/randalmurphal/quickhooks/internal/git"
	"github.com/randalmurphal/quickhooks/internal/probe"
)

// newSetupCmd creates the setup command
func newSetupCmd() *cobra.Command {
	var (
		overwrite   bool
		skipInstall bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Write hook configuration and install git hooks",
		Long: `Copy the bundled pre-commit configuration, hooks guide and lint config into
the target repository, then run 'pre-commit install' for each configured hook
type.

Existing files are kept unless --overwrite is given, or --interactive is given
and you confirm each one. Missing tools are reported with install commands.

Examples:
  quickhooks setup
  quickhooks setup --overwrite
  quickhooks setup --dir ../service --skip-install`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadConfig()
			if err != nil {
				return err
			}
			cfg := loaded.Config

			opts := bootstrap.Options{
				Dir:         targetDir,
				Overwrite:   overwrite,
				SkipInstall: skipInstall || cfg.SkipInstall,
				Hooks:       git.NewHookClient(cfg.PreCommit),
				HookTypes:   cfg.HookTypes,
				ExtraTools:  cfg.Tools.Extra,
			}
			if interactive && !overwrite {
				if canPrompt() {
					opts.ConfirmOverwrite = confirmOverwrite
				} else {
					slog.Warn("--interactive ignored: not a terminal")
				}
			}

			result, setupErr := bootstrap.Setup(cmd.Context(), opts)
			if result != nil {
				out := cmd.OutOrStdout()
				if jsonOut {
					if err := printJSON(out, newSetupReport(result, setupErr)); err != nil {
						return err
					}
				} else {
					printSetupResult(out, result)
				}
			}
			return setupErr
		},
	}

	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "replace existing files with the bundled templates")
	cmd.Flags().BoolVar(&skipInstall, "skip-install", false, "do not run 'pre-commit install'")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "ask before replacing each existing file")

	return cmd
}

type fileReport struct {
	Name      string           `json:"name"`
	Path      string           `json:"path"`
	Action    bootstrap.Action `json:"action"`
	CoveredBy []string         `json:"covered_by,omitempty"`
	Error     string           `json:"error,omitempty"`
}

type hookReport struct {
	HookType string `json:"hook_type"`
	OK       bool   `json:"ok"`
	Error    string `json:"error,omitempty"`
}

type setupReport struct {
	Dir              string         `json:"dir"`
	Project          string         `json:"project"`
	Files            []fileReport   `json:"files"`
	InstallAttempted bool           `json:"install_attempted"`
	Hooks            []hookReport   `json:"hooks,omitempty"`
	Tools            []probe.Status `json:"tools,omitempty"`
	Warnings         []string       `json:"warnings,omitempty"`
	Error            string         `json:"error,omitempty"`
	DurationMS       int64          `json:"duration_ms"`
}

func newSetupReport(r *bootstrap.SetupResult, err error) setupReport {
	rep := setupReport{
		Dir:              r.Dir,
		Project:          detect.DescribeProject(r.Detection),
		InstallAttempted: r.InstallAttempted,
		Tools:            r.Tools,
		Error:            errString(err),
		DurationMS:       r.Duration.Milliseconds(),
	}
	for _, f := range r.Files {
		rep.Files = append(rep.Files, fileReport{
			Name:      f.Target.Name,
			Path:      f.Target.Path,
			Action:    f.Action,
			CoveredBy: f.Target.CoveredBy,
			Error:     errString(f.Err),
		})
	}
	for _, h := range r.Hooks {
		rep.Hooks = append(rep.Hooks, hookReport{HookType: h.HookType, OK: h.OK(), Error: errString(h.Err)})
	}
	for _, w := range r.Warnings {
		rep.Warnings = append(rep.Warnings, w.Error())
	}
	return rep
}

func printSetupResult(w io.Writer, r *bootstrap.SetupResult) {
	fmt.Fprintf(w, "%s %s (%s)\n", titleStyle.Render("Setting up hooks in"), r.Dir, detect.DescribeProject(r.Detection))

	for _, f := range r.Files {
		switch f.Action {
		case bootstrap.ActionWritten, bootstrap.ActionOverwritten:
			fmt.Fprintf(w, "  %s %-26s %s\n", okMark(), f.Target.Name, f.Action)
		case bootstrap.ActionSkipped:
			reason := "skipped (exists, use --overwrite to replace)"
			if f.Target.Covered() {
				reason = "skipped (configured by " + strings.Join(f.Target.CoveredBy, ", ") + ")"
			}
			fmt.Fprintf(w, "  %s %-26s %s\n", skipMark(), f.Target.Name, dimStyle.Render(reason))
		case bootstrap.ActionFailed:
			fmt.Fprintf(w, "  %s %-26s %s\n", failMark(), f.Target.Name, failStyle.Render("failed"))
		}
	}

	if len(r.Hooks) > 0 {
		fmt.Fprintf(w, "\n%s\n", titleStyle.Render("Hooks:"))
		for _, h := range r.Hooks {
			if h.OK() {
				fmt.Fprintf(w, "  %s %s\n", okMark(), h.HookType)
			} else {
				fmt.Fprintf(w, "  %s %s\n", failMark(), h.HookType)
			}
		}
	}

	if len(r.Warnings) > 0 {
		fmt.Fprintf(w, "\n%s\n", titleStyle.Render("Warnings:"))
		for _, warn := range r.Warnings {
			fmt.Fprintf(w, "  %s %v\n", warnMark(), warn)
		}
	}

	if quiet {
		return
	}

	printMissingTools(w, r.Tools)

	fmt.Fprintf(w, "\nDone in %v. Next steps:\n", r.Duration.Round(time.Millisecond))
	fmt.Fprintf(w, "  quickhooks check        # verify the setup\n")
	fmt.Fprintf(w, "  quickhooks run hooks    # run every hook against all files\n")
}

// printMissingTools lists tools that were not found with their install
// commands.
func printMissingTools(w io.Writer, statuses []probe.Status) {
	missing := probe.Missing(statuses)
	if len(missing) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s\n", titleStyle.Render("Missing tools:"))
	for _, s := range missing {
		line := fmt.Sprintf("  %s %-12s", failMark(), s.Requirement.Name)
		if s.Requirement.Install != "" {
			line += " " + dimStyle.Render(s.Requirement.Install)
		}
		fmt.Fprintln(w, line)
	}
}

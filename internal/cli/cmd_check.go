package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/quickhooks/internal/bootstrap"
	"github.com/randalmurphal/quickhooks/internal/config"
	"github.com/randalmurphal/quickhooks/internal/git"
)

// newCheckCmd creates the check command
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report hook configuration and tool availability",
		Long: `Report which configuration files exist, which tools are on PATH and whether
the git hook scripts were generated by pre-commit. Nothing is modified.

The command exits 0 even when things are missing or the configuration is
invalid (defaults are used and the problem is reported); it only fails when
the target directory cannot be read.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			var configErr error
			if loaded, err := loadConfig(); err != nil {
				slog.Warn("invalid configuration, using defaults", "error", err)
				configErr = err
			} else {
				cfg = loaded.Config
			}

			result, err := bootstrap.Check(cmd.Context(), bootstrap.CheckOptions{
				Dir:        targetDir,
				Runner:     git.NewExecRunner(),
				HookTypes:  cfg.HookTypes,
				ExtraTools: cfg.Tools.Extra,
			})
			if err != nil {
				return err
			}
			if configErr != nil {
				result.ConfigError = configErr.Error()
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return printJSON(out, result)
			}
			printCheckResult(out, result)
			return nil
		},
	}
}

func printCheckResult(w io.Writer, r *bootstrap.CheckResult) {
	fmt.Fprintf(w, "%s %s (%s)\n", titleStyle.Render("Checking"), r.Dir, r.Project)

	if r.ConfigError != "" {
		fmt.Fprintf(w, "\n%s\n", titleStyle.Render("Configuration:"))
		fmt.Fprintf(w, "  %s %s %s\n", warnMark(), r.ConfigError, dimStyle.Render("(using defaults)"))
	}

	fmt.Fprintf(w, "\n%s\n", titleStyle.Render("Files:"))
	for _, f := range r.Files {
		switch {
		case f.Exists:
			fmt.Fprintf(w, "  %s %s\n", okMark(), f.Name)
		case len(f.CoveredBy) > 0:
			fmt.Fprintf(w, "  %s %s %s\n", okMark(), f.Name, dimStyle.Render("not needed, configured by "+strings.Join(f.CoveredBy, ", ")))
		default:
			fmt.Fprintf(w, "  %s %s %s\n", failMark(), f.Name, dimStyle.Render("missing"))
		}
	}

	fmt.Fprintf(w, "\n%s\n", titleStyle.Render("Tools:"))
	for _, s := range r.Tools {
		if s.Found {
			fmt.Fprintf(w, "  %s %-12s %s\n", okMark(), s.Requirement.Name, dimStyle.Render(s.Path))
		} else {
			fmt.Fprintf(w, "  %s %-12s %s\n", failMark(), s.Requirement.Name, dimStyle.Render(s.Requirement.Install))
		}
	}

	fmt.Fprintf(w, "\n%s\n", titleStyle.Render("Git hooks:"))
	if !r.GitRepo {
		fmt.Fprintf(w, "  %s not a git repository\n", warnMark())
	}
	for _, h := range r.Hooks {
		switch h.State {
		case git.HookManaged:
			fmt.Fprintf(w, "  %s %s\n", okMark(), h.HookType)
		case git.HookForeign:
			fmt.Fprintf(w, "  %s %s %s\n", warnMark(), h.HookType, dimStyle.Render("not installed by pre-commit"))
		default:
			fmt.Fprintf(w, "  %s %s %s\n", failMark(), h.HookType, dimStyle.Render("not installed"))
		}
	}

	if len(r.LintConfigs) > 0 {
		fmt.Fprintf(w, "\n%s\n", titleStyle.Render("Lint configs:"))
		for _, lc := range r.LintConfigs {
			mark := okMark()
			files := strings.Join(lc.Files, ", ")
			if len(lc.Files) == 0 {
				mark = failMark()
				files = "no config file"
			}
			declared := "not in package.json"
			if lc.Declared {
				declared = "declared in package.json"
			}
			fmt.Fprintf(w, "  %s %-9s %s %s\n", mark, lc.Kind, files, dimStyle.Render("("+declared+")"))
		}
	}

	if quiet {
		return
	}
	if r.Ready() {
		fmt.Fprintf(w, "\n%s Everything is in place.\n", okMark())
	} else {
		fmt.Fprintf(w, "\nRun 'quickhooks setup' to add missing files and install hooks.\n")
	}
}

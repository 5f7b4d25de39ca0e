package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/randalmurphal/quickhooks/internal/bootstrap"
)

// canPrompt reports whether stdin and stdout are both terminals.
func canPrompt() bool {
	return isTerminal(os.Stdin) && isTerminal(os.Stdout)
}

// confirmOverwrite asks whether an existing target should be replaced.
// Any prompt failure, including Ctrl-C, keeps the file.
func confirmOverwrite(t bootstrap.TargetFile) bool {
	overwrite := false
	err := huh.NewConfirm().
		Title(fmt.Sprintf("%s already exists", t.Name)).
		Description("Replace it with the bundled template?").
		Affirmative("Overwrite").
		Negative("Keep").
		Value(&overwrite).
		Run()
	if err != nil {
		slog.Debug("overwrite prompt aborted", "file", t.Name, "error", err)
		return false
	}
	return overwrite
}

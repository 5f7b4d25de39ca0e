package git

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultHookTypes are the git hook stages pre-commit is installed for.
var DefaultHookTypes = []string{"pre-commit", "commit-msg", "pre-push"}

// Markers present in every hook script pre-commit generates.
var preCommitMarkers = []string{
	"pre-commit",
	"File generated by pre-commit:",
	"INSTALL_PYTHON",
}

// HookState describes the script installed for one hook type.
type HookState string

const (
	HookManaged HookState = "managed" // installed by pre-commit
	HookForeign HookState = "foreign" // some other script
	HookMissing HookState = "missing"
)

// InspectHook reports the state of hooksDir/hookType.
func InspectHook(hooksDir, hookType string) HookState {
	path := filepath.Join(hooksDir, hookType)
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return HookMissing
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return HookForeign
	}
	text := string(content)
	for _, marker := range preCommitMarkers {
		if !strings.Contains(text, marker) {
			return HookForeign
		}
	}
	return HookManaged
}

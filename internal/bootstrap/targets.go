package bootstrap

import (
	"os"
	"path/filepath"

	"github.com/randalmurphal/quickhooks/internal/detect"
	"github.com/randalmurphal/quickhooks/templates"
)

// Destination file names inside the target repository.
const (
	HookConfigFile      = ".pre-commit-config.yaml"
	GuideFile           = "GIT_HOOKS_GUIDE.md"
	LintConfigFile      = ".eslintrc.json"
	FormatterConfigFile = ".prettierrc"
)

// TargetFile is one file setup may place in the target repository.
type TargetFile struct {
	Name     string `json:"name"`
	Path     string `json:"path"`
	Template string `json:"template"`
	Exists   bool   `json:"exists"`
	JSOnly   bool   `json:"js_only,omitempty"`

	// CoveredBy lists other config files of the same tool already in a JS
	// project. A covered target that does not exist is never created.
	CoveredBy []string `json:"covered_by,omitempty"`
}

// Covered reports whether t is absent and another config file of the same
// tool takes its place.
func (t TargetFile) Covered() bool {
	return !t.Exists && len(t.CoveredBy) > 0
}

type targetSpec struct {
	name     string
	template string
	jsOnly   bool
	kind     detect.ConfigKind
}

// targetSpecs is ordered; setup writes in this order.
var targetSpecs = []targetSpec{
	{name: HookConfigFile, template: templates.HookConfig},
	{name: GuideFile, template: templates.Guide},
	{name: LintConfigFile, template: templates.LintConfig, kind: detect.ConfigESLint},
	{name: FormatterConfigFile, template: templates.FormatterConfig, jsOnly: true, kind: detect.ConfigPrettier},
}

// Targets evaluates the target set for dir. JS-only targets are included
// when d describes a project with a package.json. In such a project a lint
// or formatter target is covered when the repository already has another
// config file for that tool.
func Targets(dir string, d *detect.Detection) []TargetFile {
	out := make([]TargetFile, 0, len(targetSpecs))
	for _, s := range targetSpecs {
		if s.jsOnly && !d.IsJS() {
			continue
		}
		path := filepath.Join(dir, s.name)
		t := TargetFile{
			Name:     s.name,
			Path:     path,
			Template: s.template,
			Exists:   pathExists(path),
			JSOnly:   s.jsOnly,
		}
		if s.kind != "" && d.IsJS() && !t.Exists {
			t.CoveredBy = d.LintConfigs[s.kind]
		}
		out = append(out, t)
	}
	return out
}

// pathExists treats anything at path, including a directory or a dangling
// symlink, as an existing destination.
func pathExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// Package detect inspects a target repository to decide which tooling applies
// to it.
package detect

import (
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/tidwall/gjson"

	"github.com/randalmurphal/quickhooks/internal/util"
)

// ProjectType represents a detected language.
type ProjectType string

const (
	ProjectTypePython     ProjectType = "python"
	ProjectTypeTypeScript ProjectType = "typescript"
	ProjectTypeJavaScript ProjectType = "javascript"
)

// BuildTool represents a detected package manager.
type BuildTool string

const (
	BuildToolNPM    BuildTool = "npm"
	BuildToolYarn   BuildTool = "yarn"
	BuildToolPnpm   BuildTool = "pnpm"
	BuildToolBun    BuildTool = "bun"
	BuildToolPoetry BuildTool = "poetry"
	BuildToolPip    BuildTool = "pip"
)

// ConfigKind identifies a family of lint/format config files.
type ConfigKind string

const (
	ConfigESLint   ConfigKind = "eslint"
	ConfigPrettier ConfigKind = "prettier"
)

// PackageJSON is the marker file for JS/TS projects.
const PackageJSON = "package.json"

// configPatterns lists every file name variant each tool accepts.
var configPatterns = map[ConfigKind][]string{
	ConfigESLint: {
		".eslintrc*",
		"eslint.config.{js,mjs,cjs,ts,mts,cts}",
	},
	ConfigPrettier: {
		".prettierrc*",
		"prettier.config.{js,mjs,cjs,ts}",
	},
}

// jsToolPackages are the package.json entries reported as declared tools.
var jsToolPackages = map[string]bool{
	"eslint":                           true,
	"prettier":                         true,
	"typescript":                       true,
	"@typescript-eslint/parser":        true,
	"@typescript-eslint/eslint-plugin": true,
}

// Detection contains the results of project detection.
type Detection struct {
	Languages      []ProjectType `yaml:"languages" json:"languages"`
	HasPackageJSON bool          `yaml:"has_package_json" json:"has_package_json"`
	BuildTools     []BuildTool   `yaml:"build_tools,omitempty" json:"build_tools,omitempty"`

	// DeclaredTools are lint/format packages listed in package.json
	// dependencies or devDependencies.
	DeclaredTools []string `yaml:"declared_tools,omitempty" json:"declared_tools,omitempty"`

	// LintConfigs maps each config kind to the matching files, relative to
	// the project root.
	LintConfigs map[ConfigKind][]string `yaml:"lint_configs,omitempty" json:"lint_configs,omitempty"`
}

// Detect analyzes the project at the given path. It only reads.
func Detect(path string) (*Detection, error) {
	if _, err := os.ReadDir(path); err != nil {
		return nil, err
	}

	d := &Detection{
		LintConfigs: make(map[ConfigKind][]string),
	}

	if hasPython(path) {
		d.Languages = append(d.Languages, ProjectTypePython)
	}

	d.HasPackageJSON = util.FileExists(filepath.Join(path, PackageJSON))
	if d.HasPackageJSON {
		if util.FileExists(filepath.Join(path, "tsconfig.json")) {
			d.Languages = append(d.Languages, ProjectTypeTypeScript)
		} else {
			d.Languages = append(d.Languages, ProjectTypeJavaScript)
		}
		d.DeclaredTools = declaredTools(path)
	}

	d.BuildTools = detectBuildTools(path)

	fsys := os.DirFS(path)
	for kind, patterns := range configPatterns {
		for _, pattern := range patterns {
			matches, err := doublestar.Glob(fsys, pattern)
			if err != nil {
				slog.Debug("glob failed", "pattern", pattern, "error", err)
				continue
			}
			d.LintConfigs[kind] = append(d.LintConfigs[kind], matches...)
		}
		sort.Strings(d.LintConfigs[kind])
	}

	return d, nil
}

// IsJS reports whether JS/TS tooling applies.
func (d *Detection) IsJS() bool {
	return d != nil && d.HasPackageJSON
}

// HasConfig reports whether any config file of the given kind exists.
func (d *Detection) HasConfig(kind ConfigKind) bool {
	return d != nil && len(d.LintConfigs[kind]) > 0
}

// Declares reports whether package.json lists pkg.
func (d *Detection) Declares(pkg string) bool {
	if d == nil {
		return false
	}
	for _, t := range d.DeclaredTools {
		if t == pkg {
			return true
		}
	}
	return false
}

func hasPython(path string) bool {
	for _, marker := range []string{"pyproject.toml", "setup.py", "setup.cfg", "Pipfile"} {
		if util.FileExists(filepath.Join(path, marker)) {
			return true
		}
	}
	matches, _ := doublestar.Glob(os.DirFS(path), "requirements*.txt")
	return len(matches) > 0
}

func detectBuildTools(path string) []BuildTool {
	var tools []BuildTool

	if util.FileExists(filepath.Join(path, PackageJSON)) {
		if util.FileExists(filepath.Join(path, "bun.lockb")) || util.FileExists(filepath.Join(path, "bun.lock")) {
			tools = append(tools, BuildToolBun)
		} else if util.FileExists(filepath.Join(path, "pnpm-lock.yaml")) {
			tools = append(tools, BuildToolPnpm)
		} else if util.FileExists(filepath.Join(path, "yarn.lock")) {
			tools = append(tools, BuildToolYarn)
		} else {
			tools = append(tools, BuildToolNPM)
		}
	}

	if util.FileExists(filepath.Join(path, "poetry.lock")) {
		tools = append(tools, BuildToolPoetry)
	} else if util.FileExists(filepath.Join(path, "requirements.txt")) {
		tools = append(tools, BuildToolPip)
	}

	return tools
}

// declaredTools returns the known lint/format packages that package.json
// lists, sorted. A malformed package.json yields nothing.
func declaredTools(path string) []string {
	data, err := os.ReadFile(filepath.Join(path, PackageJSON))
	if err != nil || !gjson.ValidBytes(data) {
		return nil
	}

	seen := make(map[string]bool)
	for _, section := range []string{"dependencies", "devDependencies"} {
		gjson.GetBytes(data, section).ForEach(func(key, _ gjson.Result) bool {
			if jsToolPackages[key.String()] {
				seen[key.String()] = true
			}
			return true
		})
	}

	tools := make([]string, 0, len(seen))
	for name := range seen {
		tools = append(tools, name)
	}
	sort.Strings(tools)
	return tools
}

// DescribeProject generates a human-readable project description.
func DescribeProject(d *Detection) string {
	if d == nil || len(d.Languages) == 0 {
		return "Unknown project type"
	}

	langs := make([]string, len(d.Languages))
	for i, l := range d.Languages {
		langs[i] = string(l)
	}
	desc := strings.Join(langs, " + ") + " project"

	if len(d.BuildTools) > 0 {
		tools := make([]string, len(d.BuildTools))
		for i, t := range d.BuildTools {
			tools[i] = string(t)
		}
		desc += " (" + strings.Join(tools, ", ") + ")"
	}
	return desc
}

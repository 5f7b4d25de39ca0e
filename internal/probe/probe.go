// Package probe checks which external executables are available on PATH.
package probe

import (
	"os/exec"

	"github.com/randalmurphal/quickhooks/internal/detect"
)

// Purpose tags what a tool is used for.
type Purpose string

const (
	PurposeHookFramework Purpose = "hook-framework"
	PurposePythonLint    Purpose = "python-lint"
	PurposeJSLint        Purpose = "js-lint"
	PurposeCommitMsg     Purpose = "commit-msg"
)

// Requirement is an external executable whose presence is checked, never
// installed.
type Requirement struct {
	Name    string  `yaml:"name" json:"name" mapstructure:"name"`
	Command string  `yaml:"command" json:"command" mapstructure:"command"`
	Purpose Purpose `yaml:"purpose" json:"purpose" mapstructure:"purpose"`
	Install string  `yaml:"install,omitempty" json:"install,omitempty" mapstructure:"install"`
}

// Status is the probe outcome for one requirement.
type Status struct {
	Requirement Requirement `json:"requirement"`
	Found       bool        `json:"found"`
	Path        string      `json:"path,omitempty"`
}

// HookFramework is the requirement for the hook-management framework itself.
var HookFramework = Requirement{
	Name:    "pre-commit",
	Command: "pre-commit",
	Purpose: PurposeHookFramework,
	Install: "pip install pre-commit",
}

// PythonTools are probed for every project.
var PythonTools = []Requirement{
	{Name: "black", Command: "black", Purpose: PurposePythonLint, Install: "pip install black"},
	{Name: "flake8", Command: "flake8", Purpose: PurposePythonLint, Install: "pip install flake8"},
	{Name: "isort", Command: "isort", Purpose: PurposePythonLint, Install: "pip install isort"},
	{Name: "commitizen", Command: "cz", Purpose: PurposeCommitMsg, Install: "pip install commitizen"},
}

// JSTools are probed only when the project has a package.json.
var JSTools = []Requirement{
	{Name: "prettier", Command: "prettier", Purpose: PurposeJSLint, Install: "npm install -g prettier"},
	{
		Name:    "eslint",
		Command: "eslint",
		Purpose: PurposeJSLint,
		Install: "npm install -g eslint @typescript-eslint/parser @typescript-eslint/eslint-plugin",
	},
}

// FindTool reports whether command resolves on PATH. Any lookup failure,
// including permission errors, yields false.
func FindTool(command string) bool {
	_, ok := Lookup(command)
	return ok
}

// Lookup resolves command on PATH.
func Lookup(command string) (string, bool) {
	if command == "" {
		return "", false
	}
	path, err := exec.LookPath(command)
	if err != nil {
		return "", false
	}
	return path, true
}

// Requirements returns the requirement set for a project: the hook
// framework, the Python tools, the JS tools when d is a JS project, then
// extra. Entries in extra with a name already present replace the builtin.
func Requirements(d *detect.Detection, extra []Requirement) []Requirement {
	reqs := []Requirement{HookFramework}
	reqs = append(reqs, PythonTools...)
	if d.IsJS() {
		reqs = append(reqs, JSTools...)
	}

	for _, e := range extra {
		replaced := false
		for i := range reqs {
			if reqs[i].Name == e.Name {
				reqs[i] = e
				replaced = true
				break
			}
		}
		if !replaced {
			reqs = append(reqs, e)
		}
	}
	return reqs
}

// Prober evaluates requirements. The zero value uses PATH lookup.
type Prober struct {
	// LookupFunc overrides PATH resolution, mainly for tests.
	LookupFunc func(command string) (string, bool)
}

// Probe evaluates each requirement in order.
func (p *Prober) Probe(reqs []Requirement) []Status {
	lookup := Lookup
	if p != nil && p.LookupFunc != nil {
		lookup = p.LookupFunc
	}

	out := make([]Status, 0, len(reqs))
	for _, r := range reqs {
		path, ok := lookup(r.Command)
		out = append(out, Status{Requirement: r, Found: ok, Path: path})
	}
	return out
}

// Missing returns the statuses whose tool was not found.
func Missing(statuses []Status) []Status {
	var out []Status
	for _, s := range statuses {
		if !s.Found {
			out = append(out, s)
		}
	}
	return out
}

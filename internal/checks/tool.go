// Package checks turns check settings into the command lines of the PHP
// quality tools.
package checks

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"

	"cqt/internal/config"
	"cqt/internal/discovery"
	"cqt/internal/execution"
)

// FileCheck is a tool that is run once per matching file
type FileCheck interface {
	// Name is the settings key of the check
	Name() string
	// Files selects the files the check applies to, keeping their order
	Files(all []string) []string
	// Command builds the invocation for one file
	Command(file string) execution.Command
	// Preflight reports a tool that is not installed
	Preflight() error
}

// tool holds what every PHP tool invocation shares
type tool struct {
	name    string
	trigger string
	binary  string
	dir     string
	pattern *regexp.Regexp
}

func newTool(name string, s, defaults config.Settings, dir string) (tool, error) {
	t := tool{
		name:    name,
		trigger: s.String("triggered_by", defaults.String("triggered_by", config.DefaultTrigger)),
		binary:  s.String("binary", defaults.String("binary", "")),
		dir:     dir,
	}
	expr := s.String("pattern", defaults.String("pattern", ""))
	if expr != "" {
		re, err := regexp.Compile(expr)
		if err != nil {
			return tool{}, fmt.Errorf("%s: invalid pattern %q: %w", name, expr, err)
		}
		t.pattern = re
	}
	return t, nil
}

func (t tool) Name() string { return t.name }

func (t tool) Files(all []string) []string {
	return discovery.Match(all, t.pattern)
}

// args prefixes the trigger and the tool script to args
func (t tool) args(args ...string) []string {
	out := []string{t.trigger}
	if t.binary != "" {
		out = append(out, t.binary)
	}
	return append(out, args...)
}

func (t tool) command(target string, args ...string) execution.Command {
	return execution.Command{
		Args:   t.args(args...),
		Dir:    t.dir,
		Target: target,
	}
}

func (t tool) Preflight() error {
	if err := lookTool(t.dir, t.trigger); err != nil {
		return err
	}
	if t.binary == "" {
		return nil
	}
	return statTool(t.dir, t.binary)
}

// lookTool finds an executable on PATH, or relative to dir when name is a path
func lookTool(dir, name string) error {
	if strings.ContainsRune(name, os.PathSeparator) || strings.ContainsRune(name, '/') {
		return statTool(dir, name)
	}
	if _, err := exec.LookPath(name); err != nil {
		return &execution.ToolError{Tool: name, Err: err}
	}
	return nil
}

func statTool(dir, name string) error {
	path := name
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	if _, err := os.Stat(path); err != nil {
		return &execution.ToolError{Tool: name, Err: err}
	}
	return nil
}

// Package hooks installs the git pre-commit hook that runs the quality checks.
package hooks

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"cqt/internal/config"
)

//go:embed pre-commit.sh
var hookScript []byte

// ErrNoHooksDir is returned outside a git working tree
var ErrNoHooksDir = errors.New("the .git/hooks directory does not exist, execute git init")

// Result tells what Install changed
type Result struct {
	ScriptCreated bool // The hook script did not exist and was written
	Linked        bool // The git hook was replaced by a link to the script
}

// Installer links .git/hooks/pre-commit to the project's hook script
type Installer struct {
	hooksDir   string
	hookPath   string
	scriptPath string
}

// NewInstaller creates an Installer for the project described by cfg
func NewInstaller(cfg *config.Config) *Installer {
	return &Installer{
		hooksDir:   cfg.GetHooksDir(),
		hookPath:   cfg.GetHookPath(),
		scriptPath: cfg.GetHookScriptPath(),
	}
}

// Install writes the hook script if it is missing and points the git hook at it.
// A hook whose content already equals the script is left alone.
func (i *Installer) Install() (Result, error) {
	var result Result
	info, err := os.Stat(i.hooksDir)
	if err != nil || !info.IsDir() {
		return result, ErrNoHooksDir
	}

	created, err := i.ensureScript()
	if err != nil {
		return result, err
	}
	result.ScriptCreated = created

	script, err := os.ReadFile(i.scriptPath)
	if err != nil {
		return result, fmt.Errorf("read hook script: %w", err)
	}
	hook, err := os.ReadFile(i.hookPath)
	if err == nil && bytes.Equal(hook, script) {
		return result, nil
	}

	if err := os.RemoveAll(i.hookPath); err != nil {
		return result, fmt.Errorf("remove existing hook: %w", err)
	}
	if err := os.Symlink(i.scriptPath, i.hookPath); err != nil {
		return result, fmt.Errorf("error occurred when trying to create a symlink: %w", err)
	}
	result.Linked = true
	return result, nil
}

// HookPath returns the path of the git hook
func (i *Installer) HookPath() string { return i.hookPath }

// ScriptPath returns the path of the hook script the git hook links to
func (i *Installer) ScriptPath() string { return i.scriptPath }

func (i *Installer) ensureScript() (bool, error) {
	_, err := os.Stat(i.scriptPath)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("stat hook script: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(i.scriptPath), 0755); err != nil {
		return false, fmt.Errorf("create hook script directory: %w", err)
	}
	if err := os.WriteFile(i.scriptPath, hookScript, 0755); err != nil {
		return false, fmt.Errorf("write hook script: %w", err)
	}
	return true, nil
}

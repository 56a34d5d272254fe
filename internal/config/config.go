package config

import (
	"path/filepath"
)

// Config holds all configuration for the application
type Config struct {
	// Project settings
	ProjectPath string
	ConfigFile  string

	// Hook settings
	HookScript string

	// Paths to ignore when checking a directory tree
	PathsToIgnore []string

	// Command flags
	Flags Flags
}

// Flags holds command-line flags
type Flags struct {
	Path         string
	Skip         []string
	FailFast     bool
	AllSuites    bool
	OpenFailures bool
	Verbose      bool
	NameFilter   string
	Suites       []string
}

// New creates a new Config with defaults
func New() *Config {
	cfg := &Config{
		ProjectPath: DefaultProjectPath,
		ConfigFile:  DefaultConfigFile,
		HookScript:  DefaultHookScript,
	}
	// Copy default paths to ignore
	cfg.PathsToIgnore = make([]string, len(DefaultPathsToIgnore))
	copy(cfg.PathsToIgnore, DefaultPathsToIgnore)
	return cfg
}

// Load creates a config and applies flags
func Load(flags Flags) *Config {
	cfg := New()
	cfg.Flags = flags
	return cfg
}

// resolve makes p relative to the project path unless it is absolute
func (c *Config) resolve(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectPath, p)
}

// GetConfigPath returns the path of the settings file
func (c *Config) GetConfigPath() string {
	return c.resolve(c.ConfigFile)
}

// GetCheckPath returns the directory to check instead of the staged files, or "" for staged mode
func (c *Config) GetCheckPath() string {
	if c.Flags.Path == "" {
		return ""
	}
	return c.resolve(c.Flags.Path)
}

// GetHooksDir returns the git hooks directory of the project
func (c *Config) GetHooksDir() string {
	return filepath.Join(c.ProjectPath, ".git", "hooks")
}

// GetHookPath returns the path of the installed pre-commit hook
func (c *Config) GetHookPath() string {
	return filepath.Join(c.GetHooksDir(), "pre-commit")
}

// GetHookScriptPath returns the absolute path of the bundled hook script.
// Symlink targets must not depend on the directory git runs the hook from.
func (c *Config) GetHookScriptPath() string {
	p := c.resolve(c.HookScript)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

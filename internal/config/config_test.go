package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_GetConfigPath(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
	}{
		{
			name:     "default path",
			config:   &Config{ProjectPath: ".", ConfigFile: "quality.yml"},
			expected: "quality.yml",
		},
		{
			name:     "project relative",
			config:   &Config{ProjectPath: "/project", ConfigFile: "quality.yml"},
			expected: "/project/quality.yml",
		},
		{
			name:     "absolute config file",
			config:   &Config{ProjectPath: "/project", ConfigFile: "/etc/quality.yml"},
			expected: "/etc/quality.yml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.config.GetConfigPath())
		})
	}
}

func TestConfig_GetCheckPath(t *testing.T) {
	cfg := &Config{ProjectPath: "/project"}
	assert.Empty(t, cfg.GetCheckPath(), "no --path means staged mode")

	cfg.Flags.Path = "src"
	assert.Equal(t, "/project/src", cfg.GetCheckPath())
}

func TestConfig_HookPaths(t *testing.T) {
	cfg := &Config{ProjectPath: "/project", HookScript: "bin/pre-commit"}

	assert.Equal(t, "/project/.git/hooks/pre-commit", cfg.GetHookPath())
	assert.Equal(t, "/project/bin/pre-commit", cfg.GetHookScriptPath())
}

func TestNew(t *testing.T) {
	cfg := New()

	assert.Equal(t, DefaultProjectPath, cfg.ProjectPath)
	assert.Equal(t, DefaultConfigFile, cfg.ConfigFile)
	assert.Equal(t, DefaultPathsToIgnore, cfg.PathsToIgnore)

	cfg.PathsToIgnore[0] = "changed"
	assert.NotEqual(t, "changed", DefaultPathsToIgnore[0], "New must copy the default ignore list")
}

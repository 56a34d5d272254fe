package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cqt/internal/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quality.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestStore_GetMissingFile(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "quality.yml"))
	defaults := Settings{"triggered_by": "php"}

	require.NoError(t, store.Load())
	assert.Equal(t, defaults, store.Get("x", defaults))
}

func TestStore_GetMissingKey(t *testing.T) {
	store := NewStore(writeConfig(t, "phpmd:\n  ruleset: [cleancode]\n"))
	defaults := Settings{"triggered_by": "php"}

	assert.Equal(t, defaults, store.Get("x", defaults))
}

func TestStore_GetStoredSection(t *testing.T) {
	store := NewStore(writeConfig(t, `
phpmd:
  triggered_by: php7
  ruleset: [cleancode, codesize]
`))

	got := store.Get("phpmd", DefaultMessDetectorSettings())
	assert.Equal(t, "php7", got.String("triggered_by", DefaultTrigger))
	assert.Equal(t, []string{"cleancode", "codesize"}, got.Strings("ruleset", nil))
	// The stored mapping replaces the defaults; missing fields fall back per accessor.
	assert.Equal(t, "bin/phpmd", got.String("binary", "bin/phpmd"))
	_, hasPattern := got["pattern"]
	assert.False(t, hasPattern)
}

func TestStore_GetNullSection(t *testing.T) {
	store := NewStore(writeConfig(t, "phplint:\n"))
	defaults := DefaultLintSettings()

	assert.Equal(t, defaults, store.Get("phplint", defaults))
}

func TestStore_Malformed(t *testing.T) {
	store := NewStore(writeConfig(t, "phpmd: [unclosed\n"))
	defaults := Settings{"a": "b"}

	assert.Error(t, store.Load())
	assert.Equal(t, defaults, store.Get("phpmd", defaults))
}

func TestStore_NotAMapping(t *testing.T) {
	store := NewStore(writeConfig(t, "- phpmd\n- phpcs\n"))

	assert.Error(t, store.Load())
	assert.Equal(t, Settings{}, store.Get("phpmd", Settings{}))
}

func TestStore_LoadedOnce(t *testing.T) {
	path := writeConfig(t, "phpcs:\n  standard: PSR12\n")
	store := NewStore(path)

	first := store.Get("phpcs", DefaultCodeSnifferSettings())
	require.NoError(t, os.WriteFile(path, []byte("phpcs:\n  standard: Zend\n"), 0644))
	second := store.Get("phpcs", DefaultCodeSnifferSettings())

	assert.Equal(t, "PSR12", first.String("standard", ""))
	assert.Equal(t, first, second)
}

func TestStore_Suites(t *testing.T) {
	store := NewStore(writeConfig(t, `
test:
  timeout: 30m
  suites:
    unit:
      config_file: .atoum.php
      directories: [tests/Unit]
    integration:
      triggered_by: php8
      bootstrap_file: tests/bootstrap.php
      env_file: .env.testing
`))

	suites, err := store.Suites()
	require.NoError(t, err)
	assert.Equal(t, []domain.TestSuite{
		{Name: "unit", ConfigFile: ".atoum.php", Directories: []string{"tests/Unit"}},
		{Name: "integration", TriggeredBy: "php8", BootstrapFile: "tests/bootstrap.php", EnvFile: ".env.testing"},
	}, suites)

	assert.Equal(t, 30*time.Minute, store.Get(CheckTest, DefaultTestSettings()).Duration("timeout", DefaultTestTimeout))
}

func TestStore_SuitesSequence(t *testing.T) {
	store := NewStore(writeConfig(t, `
test:
  suites:
    - name: unit
    - directories: [tests]
`))

	suites, err := store.Suites()
	require.NoError(t, err)
	require.Len(t, suites, 2)
	assert.Equal(t, "unit", suites[0].Name)
	assert.Equal(t, "suite-2", suites[1].Name)
}

func TestStore_SuitesDefaults(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		suites, err := NewStore(filepath.Join(t.TempDir(), "quality.yml")).Suites()
		require.NoError(t, err)
		assert.Empty(t, suites)
	})

	t.Run("empty suites", func(t *testing.T) {
		suites, err := NewStore(writeConfig(t, "test:\n  suites: ~\n")).Suites()
		require.NoError(t, err)
		assert.Empty(t, suites)
	})

	t.Run("invalid suites", func(t *testing.T) {
		_, err := NewStore(writeConfig(t, "test:\n  suites: unit\n")).Suites()
		assert.Error(t, err)
	})
}

func TestSettings_Accessors(t *testing.T) {
	s := Settings{
		"name":    "phpcs",
		"empty":   "",
		"number":  7,
		"list":    []any{"a", " b ", 3},
		"csv":     "a, b,,c",
		"timeout": "90s",
		"seconds": 120,
	}

	assert.Equal(t, "phpcs", s.String("name", "x"))
	assert.Equal(t, "x", s.String("empty", "x"))
	assert.Equal(t, "x", s.String("missing", "x"))
	assert.Equal(t, "7", s.String("number", "x"))

	assert.Equal(t, []string{"a", "b", "3"}, s.Strings("list", nil))
	assert.Equal(t, []string{"a", "b", "c"}, s.Strings("csv", nil))
	assert.Equal(t, []string{"d"}, s.Strings("missing", []string{"d"}))

	assert.Equal(t, 90*time.Second, s.Duration("timeout", time.Hour))
	assert.Equal(t, 2*time.Minute, s.Duration("seconds", time.Hour))
	assert.Equal(t, time.Hour, s.Duration("name", time.Hour))
}

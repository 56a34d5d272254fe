package config

import "time"

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultConfigFile is the name of the optional settings file in the project root
	DefaultConfigFile = "quality.yml"
	// DefaultHookScript is the bundled hook script the git hook links to
	DefaultHookScript = "bin/pre-commit"
	// DefaultTrigger is the interpreter used to launch every PHP tool
	DefaultTrigger = "php"
	// DefaultTestTimeout bounds a single test suite run
	DefaultTestTimeout = time.Hour
)

// Check names, used as keys in the settings file.
const (
	CheckLint         = "phplint"
	CheckCSFixer      = "phpcsfixer"
	CheckCodeSniffer  = "phpcs"
	CheckMessDetector = "phpmd"
	CheckTest         = "test"
	CheckFiles        = "files"
)

const (
	// DefaultPHPFilesPattern selects files the syntax checker understands
	DefaultPHPFilesPattern = `(\.php)|(\.inc)$`
	// DefaultSourcePattern selects tracked source files for style and mess checks
	DefaultSourcePattern = `^src/(.*)(\.php)$`
)

// DefaultPathsToIgnore are the directories skipped when checking a directory tree
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"bin",
	"var",
	"cache",
}

// DefaultFixers is the php-cs-fixer rule list used when none is configured
var DefaultFixers = []string{
	"-psr0",
	"eof_ending",
	"indentation",
	"linefeed",
	"lowercase_keywords",
	"trailing_spaces",
	"short_tag",
	"php_closing_tag",
	"extra_empty_lines",
	"elseif",
	"function_declaration",
}

// DefaultLintSettings returns the phplint defaults.
func DefaultLintSettings() Settings {
	return Settings{
		"triggered_by": DefaultTrigger,
		"pattern":      DefaultPHPFilesPattern,
	}
}

// DefaultCSFixerSettings returns the php-cs-fixer defaults.
func DefaultCSFixerSettings() Settings {
	fixers := make([]any, len(DefaultFixers))
	for i, f := range DefaultFixers {
		fixers[i] = f
	}
	return Settings{
		"triggered_by": DefaultTrigger,
		"binary":       "bin/php-cs-fixer",
		"pattern":      DefaultSourcePattern,
		"fixers":       fixers,
	}
}

// DefaultCodeSnifferSettings returns the phpcs defaults.
func DefaultCodeSnifferSettings() Settings {
	return Settings{
		"triggered_by": DefaultTrigger,
		"binary":       "bin/phpcs",
		"pattern":      DefaultSourcePattern,
		"standard":     "PSR2",
	}
}

// DefaultMessDetectorSettings returns the phpmd defaults.
func DefaultMessDetectorSettings() Settings {
	return Settings{
		"triggered_by": DefaultTrigger,
		"binary":       "bin/phpmd",
		"pattern":      DefaultSourcePattern,
		"ruleset":      []any{"controversial"},
	}
}

// DefaultTestSettings returns the test defaults: no suites.
func DefaultTestSettings() Settings {
	return Settings{
		"suites": map[string]any{},
	}
}

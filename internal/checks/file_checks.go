package checks

import (
	"strings"

	"cqt/internal/config"
	"cqt/internal/execution"
)

// Lint runs the PHP syntax check: php -l <file>
type Lint struct{ tool }

// NewLint creates the syntax check from its settings
func NewLint(s config.Settings, dir string) (*Lint, error) {
	t, err := newTool(config.CheckLint, s, config.DefaultLintSettings(), dir)
	if err != nil {
		return nil, err
	}
	return &Lint{t}, nil
}

// Command builds the lint invocation for file
func (l *Lint) Command(file string) execution.Command {
	return l.command(file, "-l", file)
}

// CSFixer runs php-cs-fixer with a fixer list
type CSFixer struct {
	tool
	fixers []string
}

// NewCSFixer creates the style fixer check from its settings
func NewCSFixer(s config.Settings, dir string) (*CSFixer, error) {
	t, err := newTool(config.CheckCSFixer, s, config.DefaultCSFixerSettings(), dir)
	if err != nil {
		return nil, err
	}
	return &CSFixer{tool: t, fixers: s.Strings("fixers", config.DefaultFixers)}, nil
}

// Command builds the verify-only invocation: violations are reported, files are left untouched
func (c *CSFixer) Command(file string) execution.Command {
	return c.command(file, "--dry-run", "--verbose", "fix", file, c.fixersFlag())
}

// FixCommand builds the invocation that rewrites file in place
func (c *CSFixer) FixCommand(file string) execution.Command {
	return c.command(file, "--verbose", "fix", file, c.fixersFlag())
}

func (c *CSFixer) fixersFlag() string {
	return "--fixers=" + strings.Join(c.fixers, ",")
}

// CodeSniffer runs phpcs against a coding standard
type CodeSniffer struct {
	tool
	standard string
}

// NewCodeSniffer creates the standard-conformance check from its settings
func NewCodeSniffer(s config.Settings, dir string) (*CodeSniffer, error) {
	defaults := config.DefaultCodeSnifferSettings()
	t, err := newTool(config.CheckCodeSniffer, s, defaults, dir)
	if err != nil {
		return nil, err
	}
	return &CodeSniffer{tool: t, standard: s.String("standard", defaults.String("standard", "PSR2"))}, nil
}

// Command builds the phpcs invocation for file
func (c *CodeSniffer) Command(file string) execution.Command {
	return c.command(file, "--standard="+c.standard, file)
}

// MessDetector runs phpmd with a rule set
type MessDetector struct {
	tool
	ruleset []string
}

// NewMessDetector creates the mess detector check from its settings
func NewMessDetector(s config.Settings, dir string) (*MessDetector, error) {
	defaults := config.DefaultMessDetectorSettings()
	t, err := newTool(config.CheckMessDetector, s, defaults, dir)
	if err != nil {
		return nil, err
	}
	return &MessDetector{tool: t, ruleset: s.Strings("ruleset", defaults.Strings("ruleset", nil))}, nil
}

// Command builds the phpmd invocation for file
func (m *MessDetector) Command(file string) execution.Command {
	return m.command(file, file, "text", strings.Join(m.ruleset, ","))
}

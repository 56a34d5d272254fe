package pipeline

import (
	"fmt"
	"sort"
	"strings"

	"cqt/internal/checks"
	"cqt/internal/config"
)

// Stage names double as the settings keys of their checks
const (
	StageSyntax   = config.CheckLint
	StageStyle    = config.CheckCSFixer
	StageStandard = config.CheckCodeSniffer
	StageMess     = config.CheckMessDetector
	StageTests    = config.CheckTest
)

var categories = map[string]string{
	StageSyntax:   "syntax errors",
	StageStyle:    "style violations",
	StageStandard: "coding standard violations",
	StageMess:     "mess-detector violations",
	StageTests:    "test failures",
}

// fileStage is a stage that runs one check per matching file
type fileStage struct {
	name  string
	title string
	label string
	check checks.FileCheck
}

// fileStages lists the per-file stages in execution order, cheapest first
func fileStages(set *checks.Set) []fileStage {
	return []fileStage{
		{name: StageSyntax, title: "Running PHPLint", label: "PHPLint", check: set.Lint},
		{name: StageStyle, title: "Checking code style", label: "PHP-CS-Fixer", check: set.CSFixer},
		{name: StageStandard, title: "Checking code style with PHPCS", label: "PHPCS", check: set.CodeSniffer},
		{name: StageMess, title: "Checking code mess with PHPMD", label: "PHPMD", check: set.MessDetector},
	}
}

// Stages returns the names of the skippable stages in execution order
func Stages() []string {
	return []string{StageSyntax, StageStyle, StageStandard, StageMess, StageTests}
}

// ParseSkip validates stage names given on the command line
func ParseSkip(names []string) (map[string]bool, error) {
	skip := make(map[string]bool, len(names))
	var unknown []string
	for _, name := range names {
		name = strings.TrimSpace(name)
		if _, ok := categories[name]; !ok {
			unknown = append(unknown, name)
			continue
		}
		skip[name] = true
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown stage(s) %s, expected one of %s",
			strings.Join(unknown, ", "), strings.Join(Stages(), ", "))
	}
	return skip, nil
}

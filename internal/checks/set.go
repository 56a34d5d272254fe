package checks

import (
	"fmt"

	"cqt/internal/config"
)

// Set holds every configured check of a pipeline run
type Set struct {
	Lint         *Lint
	CSFixer      *CSFixer
	CodeSniffer  *CodeSniffer
	MessDetector *MessDetector
	Tests        *TestSuites
}

// Load builds the checks from the settings store. Tools run inside dir.
func Load(store *config.Store, dir string) (*Set, error) {
	lint, err := NewLint(store.Get(config.CheckLint, config.DefaultLintSettings()), dir)
	if err != nil {
		return nil, err
	}
	fixer, err := NewCSFixer(store.Get(config.CheckCSFixer, config.DefaultCSFixerSettings()), dir)
	if err != nil {
		return nil, err
	}
	sniffer, err := NewCodeSniffer(store.Get(config.CheckCodeSniffer, config.DefaultCodeSnifferSettings()), dir)
	if err != nil {
		return nil, err
	}
	mess, err := NewMessDetector(store.Get(config.CheckMessDetector, config.DefaultMessDetectorSettings()), dir)
	if err != nil {
		return nil, err
	}
	suites, err := store.Suites()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", store.Path(), err)
	}
	tests := NewTestSuites(store.Get(config.CheckTest, config.DefaultTestSettings()), suites, dir)

	return &Set{
		Lint:         lint,
		CSFixer:      fixer,
		CodeSniffer:  sniffer,
		MessDetector: mess,
		Tests:        tests,
	}, nil
}

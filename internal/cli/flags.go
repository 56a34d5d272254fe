package cli

import "cqt/internal/config"

// Flags holds command-line flags
type Flags struct {
	ConfigFile   string
	Dir          string
	Verbose      bool
	Path         string
	Skip         []string
	FailFast     bool
	AllSuites    bool
	OpenFailures bool
	NameFilter   string
	HookScript   string
}

// ToConfigFlags converts CLI flags to config flags
func (f *Flags) ToConfigFlags() config.Flags {
	return config.Flags{
		Path:         f.Path,
		Skip:         f.Skip,
		FailFast:     f.FailFast,
		AllSuites:    f.AllSuites,
		OpenFailures: f.OpenFailures,
		Verbose:      f.Verbose,
		NameFilter:   f.NameFilter,
	}
}

// Apply copies the parsed flags into cfg. Empty values keep the defaults.
func (f *Flags) Apply(cfg *config.Config) {
	cfg.Flags = f.ToConfigFlags()
	if f.Dir != "" {
		cfg.ProjectPath = f.Dir
	}
	if f.ConfigFile != "" {
		cfg.ConfigFile = f.ConfigFile
	}
	if f.HookScript != "" {
		cfg.HookScript = f.HookScript
	}
}

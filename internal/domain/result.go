package domain

import "time"

// CheckResult represents the outcome of one external tool invocation
type CheckResult struct {
	Path     string        // File the tool was run against, or the suite name
	Success  bool          // Whether the tool exited with status zero
	Stdout   string        // Captured standard output
	Stderr   string        // Captured standard error
	Err      error         // Exit or timeout error, nil on success
	Duration time.Duration // Time taken to execute
}

// Output returns stdout and stderr joined, trimmed of surrounding blank lines
func (r CheckResult) Output() string {
	switch {
	case r.Stdout == "":
		return trim(r.Stderr)
	case r.Stderr == "":
		return trim(r.Stdout)
	default:
		return trim(r.Stdout) + "\n" + trim(r.Stderr)
	}
}

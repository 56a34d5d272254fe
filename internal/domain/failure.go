package domain

import "strings"

// Failure is a failed check kept for the failure viewer
type Failure struct {
	Stage  string      // Stage that reported the failure
	Target string      // File path or suite name
	Result CheckResult // Raw tool result
}

func trim(s string) string {
	return strings.Trim(s, "\r\n\t ")
}

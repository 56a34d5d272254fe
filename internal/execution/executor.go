package execution

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"cqt/internal/domain"
)

// ErrToolMissing marks a tool that could not be started at all
var ErrToolMissing = errors.New("tool cannot be launched")

// Command describes one external tool invocation
type Command struct {
	Args    []string      // Program name followed by its arguments
	Dir     string        // Working directory, empty for the current one
	Env     []string      // Extra KEY=VALUE entries appended to the environment
	Timeout time.Duration // Zero means no timeout
	Stream  io.Writer     // Receives output as it arrives, may be nil
	Target  string        // File or directory the command checks, copied into the result
}

// Executor runs external commands
type Executor interface {
	Run(ctx context.Context, cmd Command) (domain.CheckResult, error)
}

// ToolError reports a tool that could not be launched
type ToolError struct {
	Tool string
	Err  error
}

func (e *ToolError) Error() string {
	return fmt.Sprintf("cannot run %s: %v (is it installed?)", e.Tool, e.Err)
}

// Unwrap makes errors.Is match both ErrToolMissing and the cause
func (e *ToolError) Unwrap() []error {
	return []error{ErrToolMissing, e.Err}
}

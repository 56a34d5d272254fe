package execution

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"cqt/internal/domain"
	"cqt/internal/logger"
)

// waitDelay bounds how long Wait keeps copying output after the process is killed
const waitDelay = 5 * time.Second

// Runner executes a single external tool
type Runner struct{}

// NewRunner creates a new Runner
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes the command and blocks until it exits or times out.
// A non-zero exit is reported as a failed result, not an error. The error is
// reserved for tools that cannot be launched and for cancellation.
func (r *Runner) Run(ctx context.Context, c Command) (domain.CheckResult, error) {
	if len(c.Args) == 0 {
		return domain.CheckResult{}, errors.New("empty command")
	}

	if err := ctx.Err(); err != nil {
		return domain.CheckResult{Path: c.Target}, err
	}

	runCtx := ctx
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, c.Args[0], c.Args[1:]...)
	cmd.Dir = c.Dir
	cmd.WaitDelay = waitDelay
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if c.Stream != nil {
		w := &lockedWriter{w: c.Stream}
		cmd.Stdout = io.MultiWriter(&stdout, w)
		cmd.Stderr = io.MultiWriter(&stderr, w)
	}

	logger.Debug(ctx, "running", slog.String("cmd", strings.Join(c.Args, " ")), slog.String("dir", c.Dir))

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return domain.CheckResult{Path: c.Target}, &ToolError{Tool: c.Args[0], Err: err}
	}
	err := cmd.Wait()

	result := domain.CheckResult{
		Path:     c.Target,
		Success:  err == nil,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Duration: time.Since(start),
	}

	if err != nil {
		switch {
		case ctx.Err() != nil:
			return result, ctx.Err()
		case errors.Is(runCtx.Err(), context.DeadlineExceeded):
			result.Err = fmt.Errorf("timed out after %s", c.Timeout)
		default:
			result.Err = err
		}
	}

	logger.Debug(ctx, "finished",
		slog.String("tool", c.Args[0]),
		slog.Bool("success", result.Success),
		slog.Duration("duration", result.Duration))

	return result, nil
}

// lockedWriter serializes writes coming from the stdout and stderr copy loops
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Write(p []byte) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.w.Write(p)
}

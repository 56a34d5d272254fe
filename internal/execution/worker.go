package execution

import (
	"context"
	"time"

	"cqt/internal/domain"
)

// Progress receives per-file progress updates
type Progress interface {
	Update(successCount, failCount int)
	Finish()
}

// Batch runs one command per file, one after another
type Batch struct {
	executor Executor
	progress Progress
}

// NewBatch creates a new Batch
func NewBatch(executor Executor) *Batch {
	return &Batch{executor: executor}
}

// SetProgress sets the progress reporter for the next run
func (b *Batch) SetProgress(progress Progress) {
	b.progress = progress
}

// Execute runs build(file) for every file (no fail-fast).
func (b *Batch) Execute(ctx context.Context, files []string, build func(file string) Command) ([]domain.CheckResult, time.Duration, error) {
	return b.ExecuteWithOptions(ctx, files, build, false)
}

// ExecuteWithOptions runs build(file) for every file, stopping after the first
// failure when failFast is set. Results are returned in file order. A tool that
// cannot be launched aborts the batch with its error.
func (b *Batch) ExecuteWithOptions(ctx context.Context, files []string, build func(file string) Command, failFast bool) ([]domain.CheckResult, time.Duration, error) {
	if len(files) == 0 {
		return nil, 0, nil
	}

	progress := b.progress
	b.progress = nil
	if progress != nil {
		defer progress.Finish()
	}

	startTime := time.Now()
	results := make([]domain.CheckResult, 0, len(files))
	var passed, failed int
	for _, file := range files {
		cmd := build(file)
		if cmd.Target == "" {
			cmd.Target = file
		}
		result, err := b.executor.Run(ctx, cmd)
		if err != nil {
			return results, time.Since(startTime), err
		}
		results = append(results, result)

		if result.Success {
			passed++
		} else {
			failed++
		}
		if progress != nil {
			progress.Update(passed, failed)
		}
		if failFast && !result.Success {
			break
		}
	}
	return results, time.Since(startTime), nil
}

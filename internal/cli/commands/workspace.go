package commands

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"cqt/internal/checks"
	"cqt/internal/config"
	"cqt/internal/discovery"
	"cqt/internal/logger"
	"cqt/internal/pipeline"
)

// workspace resolves what a command needs from the parsed configuration
type workspace struct {
	config  *config.Config
	scanner *discovery.Scanner
}

func newWorkspace(cfg *config.Config, scanner *discovery.Scanner) *workspace {
	return &workspace{config: cfg, scanner: scanner}
}

// files returns the staged files, or every file below --path when it is set.
// The directory returned is the one the file paths are relative to, where tools run.
func (w *workspace) files(ctx context.Context) (discovery.Source, string, error) {
	root := w.config.GetCheckPath()
	if root == "" {
		changed := discovery.NewChangedFiles(w.config.ProjectPath)
		dir := changed.Root(ctx)
		logger.Debug(ctx, "working tree root", slog.String("dir", dir))
		return changed, dir, nil
	}

	base, err := filepath.Abs(w.config.ProjectPath)
	if err != nil {
		return nil, "", err
	}
	if root, err = filepath.Abs(root); err != nil {
		return nil, "", err
	}
	files, err := w.scanner.Scan(base, root)
	if err != nil {
		return nil, "", err
	}
	logger.Debug(ctx, "scanned check path", slog.String("path", root), slog.Int("files", len(files)))
	return discovery.Files(files), w.config.ProjectPath, nil
}

// checks loads the settings file and builds the configured checks, run inside dir
func (w *workspace) checks(ctx context.Context, dir string) (*checks.Set, error) {
	store := config.NewStore(w.config.GetConfigPath())
	if err := store.Load(); err != nil {
		return nil, fmt.Errorf("invalid settings file: %w", err)
	}
	logger.Debug(ctx, "loaded settings", slog.String("path", store.Path()))
	return checks.Load(store, dir)
}

func (w *workspace) policy() (pipeline.Policy, error) {
	skip, err := pipeline.ParseSkip(w.config.Flags.Skip)
	if err != nil {
		return pipeline.Policy{}, err
	}
	return pipeline.Policy{
		FailFast:  w.config.Flags.FailFast,
		AllSuites: w.config.Flags.AllSuites,
		Skip:      skip,
		Suites:    w.config.Flags.Suites,
	}, nil
}

// pipeline wires a Pipeline for the current flags
func (w *workspace) pipeline(ctx context.Context, deps runDeps) (*pipeline.Pipeline, error) {
	policy, err := w.policy()
	if err != nil {
		return nil, err
	}
	files, dir, err := w.files(ctx)
	if err != nil {
		return nil, err
	}
	set, err := w.checks(ctx, dir)
	if err != nil {
		return nil, err
	}
	p := pipeline.New(files, set, deps.executor, deps.printer, policy)
	if deps.progress != nil {
		p.SetProgress(deps.progress)
	}
	return p, nil
}

package discovery

import (
	"bytes"
	"context"
	"log/slog"
	"os/exec"
	"regexp"
	"slices"
	"strings"
	"sync"

	"cqt/internal/logger"
)

// EmptyTreeHash is the hash of git's empty tree, the diff baseline before the first commit
const EmptyTreeHash = "4b825dc642cb6eb9a060e54bf8d69288fbee4904"

// Source lists the files a pipeline run looks at
type Source interface {
	All(ctx context.Context) []string
}

// Files is a fixed list of files
type Files []string

// All returns the files
func (f Files) All(context.Context) []string { return f }

// GitFunc runs git with args inside dir and returns its standard output
type GitFunc func(ctx context.Context, dir string, args ...string) ([]byte, error)

// ChangedFiles lists the files added or modified in the git index.
// The list is computed on first use and reused afterwards.
type ChangedFiles struct {
	dir string
	git GitFunc

	once  sync.Once
	files []string

	rootOnce sync.Once
	root     string
}

// NewChangedFiles creates a ChangedFiles for the repository at dir
func NewChangedFiles(dir string) *ChangedFiles {
	return NewChangedFilesWithGit(dir, runGit)
}

// NewChangedFilesWithGit creates a ChangedFiles that queries git through fn
func NewChangedFilesWithGit(dir string, fn GitFunc) *ChangedFiles {
	return &ChangedFiles{dir: dir, git: fn}
}

// All returns the staged paths in index order. A failing git query yields an empty list.
func (c *ChangedFiles) All(ctx context.Context) []string {
	c.once.Do(func() { c.files = c.extract(ctx) })
	return slices.Clone(c.files)
}

// Match returns the staged paths matching re, in index order
func (c *ChangedFiles) Match(ctx context.Context, re *regexp.Regexp) []string {
	return Match(c.All(ctx), re)
}

// Root returns the top level of the working tree. Staged paths are relative to it,
// so tools checking them must run there. It falls back to the configured directory
// when git cannot tell.
func (c *ChangedFiles) Root(ctx context.Context) string {
	c.rootOnce.Do(func() {
		c.root = c.dir
		out, err := c.git(ctx, c.dir, "rev-parse", "--show-toplevel")
		if err != nil {
			logger.Debug(ctx, "resolving working tree root failed", slog.Any("err", err))
			return
		}
		if root := strings.TrimSpace(string(out)); root != "" {
			c.root = root
		}
	})
	return c.root
}

func (c *ChangedFiles) extract(ctx context.Context) []string {
	against := EmptyTreeHash
	if _, err := c.git(ctx, c.dir, "rev-parse", "--verify", "--quiet", "HEAD"); err == nil {
		against = "HEAD"
	}

	out, err := c.git(ctx, c.dir, "diff-index", "--cached", "--name-status", "-z", against)
	if err != nil {
		logger.Debug(ctx, "listing staged files failed", slog.String("against", against), slog.Any("err", err))
		return nil
	}

	files := parseNameStatus(out)
	logger.Debug(ctx, "staged files", slog.String("against", against), slog.Int("count", len(files)))
	return files
}

// parseNameStatus reads "git diff-index --name-status -z" output and keeps added and modified paths
func parseNameStatus(out []byte) []string {
	fields := strings.Split(strings.TrimRight(string(out), "\x00"), "\x00")
	files := make([]string, 0, len(fields)/2)
	for i := 0; i < len(fields); i++ {
		status := fields[i]
		if status == "" {
			continue
		}
		paths := 1
		// Renames and copies carry a source and a destination path
		if status[0] == 'R' || status[0] == 'C' {
			paths = 2
		}
		if i+paths >= len(fields) {
			break
		}
		if status[0] == 'A' || status[0] == 'M' {
			files = append(files, fields[i+1])
		}
		i += paths
	}
	return files
}

// Match returns the files matching re, preserving order. A nil re matches everything.
func Match(files []string, re *regexp.Regexp) []string {
	matched := make([]string, 0, len(files))
	for _, file := range files {
		if re == nil || re.MatchString(file) {
			matched = append(matched, file)
		}
	}
	return matched
}

func runGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	var stdout bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return nil, err
	}
	return stdout.Bytes(), nil
}

package discovery

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGit struct {
	root  string
	head  bool
	out   string
	err   error
	calls [][]string
}

func (f *fakeGit) run(_ context.Context, _ string, args ...string) ([]byte, error) {
	f.calls = append(f.calls, args)
	switch args[0] {
	case "rev-parse":
		if args[1] == "--show-toplevel" {
			if f.root == "" {
				return nil, errors.New("fatal: not a git repository")
			}
			return []byte(f.root + "\n"), nil
		}
		if f.head {
			return []byte("0123abcd\n"), nil
		}
		return nil, errors.New("exit status 1")
	case "diff-index":
		return []byte(f.out), f.err
	}
	return nil, errors.New("unexpected git call")
}

func TestChangedFiles_All(t *testing.T) {
	git := &fakeGit{
		head: true,
		out:  "M\x00src/Foo.php\x00A\x00composer.json\x00D\x00src/Gone.php\x00T\x00link\x00A\x00src/dir with space/Bar.php\x00",
	}
	files := NewChangedFilesWithGit(".", git.run)

	got := files.All(context.Background())
	assert.Equal(t, []string{"src/Foo.php", "composer.json", "src/dir with space/Bar.php"}, got)
	assert.Equal(t, []string{"diff-index", "--cached", "--name-status", "-z", "HEAD"}, git.calls[1])
}

func TestChangedFiles_EmptyTreeBaseline(t *testing.T) {
	git := &fakeGit{out: "A\x00README.md\x00"}
	files := NewChangedFilesWithGit(".", git.run)

	assert.Equal(t, []string{"README.md"}, files.All(context.Background()))
	assert.Equal(t, EmptyTreeHash, git.calls[1][len(git.calls[1])-1])
}

func TestChangedFiles_Memoized(t *testing.T) {
	git := &fakeGit{head: true, out: "M\x00a.php\x00M\x00b.php\x00"}
	files := NewChangedFilesWithGit(".", git.run)
	ctx := context.Background()

	first := files.All(ctx)
	git.out = "M\x00c.php\x00"
	second := files.All(ctx)

	assert.Equal(t, first, second)
	assert.Len(t, git.calls, 2, "git must be queried only once")

	// Callers cannot change the cached list
	first[0] = "changed"
	assert.Equal(t, "a.php", files.All(ctx)[0])
}

func TestChangedFiles_Root(t *testing.T) {
	git := &fakeGit{root: "/work/repo"}
	files := NewChangedFilesWithGit("/work/repo/app", git.run)
	ctx := context.Background()

	assert.Equal(t, "/work/repo", files.Root(ctx))
	assert.Equal(t, "/work/repo", files.Root(ctx))
	assert.Len(t, git.calls, 1)

	outside := NewChangedFilesWithGit("/tmp/project", (&fakeGit{}).run)
	assert.Equal(t, "/tmp/project", outside.Root(ctx))
}

func TestChangedFiles_GitFailure(t *testing.T) {
	git := &fakeGit{err: errors.New("fatal: not a git repository")}
	files := NewChangedFilesWithGit(".", git.run)

	assert.Empty(t, files.All(context.Background()))
}

func TestChangedFiles_Match(t *testing.T) {
	git := &fakeGit{head: true, out: "M\x00src/B.php\x00M\x00README.md\x00A\x00src/A.inc\x00M\x00tests/CTest.php\x00"}
	files := NewChangedFilesWithGit(".", git.run)
	ctx := context.Background()
	re := regexp.MustCompile(`(\.php)|(\.inc)$`)

	first := files.Match(ctx, re)
	assert.Equal(t, []string{"src/B.php", "src/A.inc", "tests/CTest.php"}, first)
	// Restartable: the same filter yields the same sequence again
	assert.Equal(t, first, files.Match(ctx, re))

	assert.Equal(t, []string{"src/B.php"}, files.Match(ctx, regexp.MustCompile(`^src/(.*)(\.php)$`)))
}

func TestMatch(t *testing.T) {
	files := []string{"a.php", "b.txt", "c.php"}

	assert.Equal(t, []string{"a.php", "c.php"}, Match(files, regexp.MustCompile(`\.php$`)))
	assert.Equal(t, files, Match(files, nil))
	assert.Empty(t, Match(nil, regexp.MustCompile(`.`)))
}

func TestParseNameStatus(t *testing.T) {
	tests := []struct {
		name     string
		out      string
		expected []string
	}{
		{name: "empty", out: "", expected: []string{}},
		{name: "rename is skipped", out: "R100\x00old.php\x00new.php\x00M\x00x.php\x00", expected: []string{"x.php"}},
		{name: "truncated output", out: "M\x00", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseNameStatus([]byte(tt.out)))
		})
	}
}

func TestChangedFiles_RealRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	git := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", append([]string{"-c", "user.name=cqt", "-c", "user.email=cqt@example.com", "-c", "commit.gpgsign=false"}, args...)...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, string(out))
	}
	write := func(name, content string) {
		t.Helper()
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}

	git("init", "-q")
	write("src/Foo.php", "<?php\n")
	write("src/Old.php", "<?php\n")
	git("add", ".")

	// First commit: diffed against the empty tree
	ctx := context.Background()
	assert.ElementsMatch(t, []string{"src/Foo.php", "src/Old.php"}, NewChangedFiles(dir).All(ctx))

	git("commit", "-q", "-m", "initial")
	write("src/Foo.php", "<?php\necho 1;\n")
	write("composer.json", "{}\n")
	git("rm", "-q", "src/Old.php")
	git("add", ".")

	assert.ElementsMatch(t, []string{"composer.json", "src/Foo.php"}, NewChangedFiles(dir).All(ctx))

	// From a subdirectory paths stay relative to the top level
	sub := NewChangedFiles(filepath.Join(dir, "src"))
	assert.ElementsMatch(t, []string{"composer.json", "src/Foo.php"}, sub.All(ctx))
	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(sub.Root(ctx))
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestChangedFiles_NotARepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(t.TempDir()))

	assert.Empty(t, NewChangedFiles(t.TempDir()).All(context.Background()))
}

package checks

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"time"

	"github.com/joho/godotenv"

	"cqt/internal/config"
	"cqt/internal/domain"
	"cqt/internal/execution"
)

const (
	defaultTestBinary    = "bin/atoum"
	defaultTestConfig    = ".atoum.php"
	defaultTestBootstrap = ".bootstrap.atoum.php"
)

// TestSuites runs the configured atoum suites
type TestSuites struct {
	suites  []domain.TestSuite
	trigger string
	binary  string
	timeout time.Duration
	dir     string
}

// NewTestSuites creates the test check from the test settings and the decoded suites
func NewTestSuites(s config.Settings, suites []domain.TestSuite, dir string) *TestSuites {
	return &TestSuites{
		suites:  suites,
		trigger: s.String("triggered_by", config.DefaultTrigger),
		binary:  s.String("binary", defaultTestBinary),
		timeout: s.Duration("timeout", config.DefaultTestTimeout),
		dir:     dir,
	}
}

// Suites returns the configured suites in order
func (t *TestSuites) Suites() []domain.TestSuite {
	return t.suites
}

// Select returns the suites with the given names, in configuration order.
// No names selects every suite.
func (t *TestSuites) Select(names ...string) ([]domain.TestSuite, error) {
	if len(names) == 0 {
		return t.suites, nil
	}
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}
	var selected []domain.TestSuite
	for _, suite := range t.suites {
		if wanted[suite.Name] {
			selected = append(selected, suite)
			delete(wanted, suite.Name)
		}
	}
	if len(wanted) > 0 {
		unknown := make([]string, 0, len(wanted))
		for name := range wanted {
			unknown = append(unknown, name)
		}
		sort.Strings(unknown)
		return nil, fmt.Errorf("unknown test suite(s): %v", unknown)
	}
	return selected, nil
}

// Command builds the invocation of one suite. Output is forwarded to stream as it arrives.
func (t *TestSuites) Command(suite domain.TestSuite, stream io.Writer) (execution.Command, error) {
	trigger := suite.TriggeredBy
	if trigger == "" {
		trigger = t.trigger
	}
	configFile := suite.ConfigFile
	if configFile == "" {
		configFile = defaultTestConfig
	}
	bootstrapFile := suite.BootstrapFile
	if bootstrapFile == "" {
		bootstrapFile = defaultTestBootstrap
	}

	args := []string{trigger, t.binary, "-c", configFile, "-bf", bootstrapFile}
	if len(suite.Directories) > 0 {
		args = append(args, "-d")
		args = append(args, suite.Directories...)
	}

	env, err := t.env(suite)
	if err != nil {
		return execution.Command{}, err
	}

	return execution.Command{
		Args:    args,
		Dir:     t.dir,
		Env:     env,
		Timeout: t.timeout,
		Stream:  stream,
		Target:  suite.Name,
	}, nil
}

// env reads the suite's env file into KEY=VALUE entries sorted by key
func (t *TestSuites) env(suite domain.TestSuite) ([]string, error) {
	if suite.EnvFile == "" {
		return nil, nil
	}
	path := suite.EnvFile
	if !filepath.IsAbs(path) {
		path = filepath.Join(t.dir, path)
	}
	vars, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("test suite %q: read env file: %w", suite.Name, err)
	}
	keys := make([]string, 0, len(vars))
	for k := range vars {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	env := make([]string, 0, len(keys))
	for _, k := range keys {
		env = append(env, k+"="+vars[k])
	}
	return env, nil
}

// Preflight reports a missing trigger or test runner for the given suites
func (t *TestSuites) Preflight(suites []domain.TestSuite) error {
	seen := map[string]bool{}
	for _, suite := range suites {
		trigger := suite.TriggeredBy
		if trigger == "" {
			trigger = t.trigger
		}
		if seen[trigger] {
			continue
		}
		seen[trigger] = true
		if err := lookTool(t.dir, trigger); err != nil {
			return err
		}
	}
	if len(suites) == 0 {
		return nil
	}
	return statTool(t.dir, t.binary)
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"cqt/internal/domain"
)

// Settings is the configuration of one check as read from the settings file.
type Settings map[string]any

// String returns the value for key, or fallback when it is missing or empty.
func (s Settings) String(key, fallback string) string {
	switch v := s[key].(type) {
	case nil:
		return fallback
	case string:
		if v == "" {
			return fallback
		}
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Strings returns the list for key. A scalar is split on commas.
func (s Settings) Strings(key string, fallback []string) []string {
	switch v := s[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if str := strings.TrimSpace(fmt.Sprint(item)); str != "" {
				out = append(out, str)
			}
		}
		if len(out) == 0 {
			return fallback
		}
		return out
	case []string:
		if len(v) == 0 {
			return fallback
		}
		return v
	case string:
		var out []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		if len(out) == 0 {
			return fallback
		}
		return out
	default:
		return fallback
	}
}

// Duration returns the duration for key. Integers are seconds.
func (s Settings) Duration(key string, fallback time.Duration) time.Duration {
	switch v := s[key].(type) {
	case int:
		return time.Duration(v) * time.Second
	case string:
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// Store loads the settings file once and serves per-check settings from it.
type Store struct {
	path string

	once     sync.Once
	sections map[string]*yaml.Node
	err      error
}

// NewStore returns a Store reading the settings file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the settings file path.
func (s *Store) Path() string { return s.path }

// Load parses the settings file if that has not happened yet.
// A missing file is not an error.
func (s *Store) Load() error {
	s.once.Do(s.load)
	return s.err
}

func (s *Store) load() {
	s.sections = map[string]*yaml.Node{}

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		s.err = fmt.Errorf("read %s: %w", s.path, err)
		return
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		s.err = fmt.Errorf("parse %s: %w", s.path, err)
		return
	}
	if len(doc.Content) == 0 {
		return
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		s.err = fmt.Errorf("parse %s: top level must be a mapping of check names", s.path)
		return
	}

	sections := make(map[string]*yaml.Node, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		sections[root.Content[i].Value] = root.Content[i+1]
	}
	s.sections = sections
}

// Get returns the settings stored under check, or defaults when the file is
// missing, malformed or has no such key.
func (s *Store) Get(check string, defaults Settings) Settings {
	s.Load()
	node, ok := s.sections[check]
	if !ok {
		return defaults
	}
	var out Settings
	if err := node.Decode(&out); err != nil || out == nil {
		return defaults
	}
	return out
}

// Suites returns the configured test suites in file order.
func (s *Store) Suites() ([]domain.TestSuite, error) {
	s.Load()
	node, ok := s.sections[CheckTest]
	if !ok || node.Kind != yaml.MappingNode {
		return suitesFromSettings(DefaultTestSettings())
	}

	var suites *yaml.Node
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == "suites" {
			suites = node.Content[i+1]
		}
	}
	if suites == nil {
		return nil, nil
	}

	var out []domain.TestSuite
	switch suites.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(suites.Content); i += 2 {
			var suite domain.TestSuite
			if err := suites.Content[i+1].Decode(&suite); err != nil {
				return nil, fmt.Errorf("test suite %q: %w", suites.Content[i].Value, err)
			}
			suite.Name = suites.Content[i].Value
			out = append(out, suite)
		}
	case yaml.SequenceNode:
		for i, item := range suites.Content {
			var suite domain.TestSuite
			if err := item.Decode(&suite); err != nil {
				return nil, fmt.Errorf("test suite #%d: %w", i+1, err)
			}
			if suite.Name == "" {
				suite.Name = fmt.Sprintf("suite-%d", i+1)
			}
			out = append(out, suite)
		}
	case yaml.ScalarNode:
		// "suites: ~" or an empty value means no suites
		if suites.Tag != "!!null" && suites.Value != "" {
			return nil, fmt.Errorf("test suites must be a mapping, got %q", suites.Value)
		}
	default:
		return nil, fmt.Errorf("test suites must be a mapping")
	}
	return out, nil
}

// suitesFromSettings decodes suites held in an in-memory Settings value.
// Map iteration order is random so suites are sorted by name.
func suitesFromSettings(settings Settings) ([]domain.TestSuite, error) {
	raw, ok := settings["suites"].(map[string]any)
	if !ok || len(raw) == 0 {
		return nil, nil
	}
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]domain.TestSuite, 0, len(names))
	for _, name := range names {
		data, err := yaml.Marshal(raw[name])
		if err != nil {
			return nil, fmt.Errorf("test suite %q: %w", name, err)
		}
		var suite domain.TestSuite
		if err := yaml.Unmarshal(data, &suite); err != nil {
			return nil, fmt.Errorf("test suite %q: %w", name, err)
		}
		suite.Name = name
		out = append(out, suite)
	}
	return out, nil
}

package pipeline

import (
	"errors"
	"fmt"
	"strings"
)

// ErrCheckFailed is matched by every StageError
var ErrCheckFailed = errors.New("quality check failed")

// StageError reports a stage whose checks failed. The message names the category.
type StageError struct {
	Stage    string
	Category string
	Failed   []string // Files or suites that failed
	Total    int
}

func (e *StageError) Error() string {
	if e.Stage == StageTests {
		return fmt.Sprintf("there are %s in suite(s): %s", e.Category, strings.Join(e.Failed, ", "))
	}
	return fmt.Sprintf("there are %s in %d of %d file(s)", e.Category, len(e.Failed), e.Total)
}

func (e *StageError) Unwrap() error { return ErrCheckFailed }

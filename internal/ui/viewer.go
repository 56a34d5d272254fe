package ui

import "cqt/internal/domain"

// Viewer displays the failures of a run
type Viewer interface {
	View(failures []domain.Failure) error
}

// Package lifecycle defines the long-running operations of adiftest.
// Implementations live in internal packages and receive their
// configuration at construction.
package lifecycle

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Generator writes one test file per configured style.
type Generator interface {
	// Generate reads the specification export, the entities and the
	// record plan, then writes the test files. Nothing is written for a
	// style whose pass fails or is cancelled.
	Generate(ctx context.Context) ([]Output, error)
}

// Watcher runs a Generator again whenever one of its inputs changes.
type Watcher interface {
	// Watch blocks until ctx is cancelled.
	Watch(ctx context.Context) error
}

// Output describes a written test file.
type Output struct {
	Style string
	Path  string
	// RunID is a UUID v5 of the file name, seed and specification status.
	// It is the same for every run that writes the same bytes.
	RunID    uuid.UUID
	Records  int
	Fields   int
	Untested int
	Calls    int
	Duration time.Duration
}

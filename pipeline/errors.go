package pipeline

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic checking via errors.Is().
var (
	// ErrNilBody indicates a task was registered without a body.
	ErrNilBody = errors.New("nil task body")

	// ErrUnknownTask indicates a dependency handle that was not issued by
	// this pipeline.
	ErrUnknownTask = errors.New("unknown dependency task")

	// ErrCycle indicates a task transitively depends on itself.
	ErrCycle = errors.New("dependency cycle")
)

// TaskError reports a task body failure during a run. It wraps the body's
// error for errors.Is / errors.As.
type TaskError struct {
	Name string
	Err  error
}

func (e *TaskError) Error() string { return fmt.Sprintf("task %q: %v", e.Name, e.Err) }

func (e *TaskError) Unwrap() error { return e.Err }

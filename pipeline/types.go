package pipeline

import "context"

// Body is the unit of work wrapped by a Task. A task with no dependency is
// invoked with a nil input; a dependent task receives its dependency's output.
type Body func(ctx context.Context, in any) (any, error)

// Task is a handle to one registered unit of work. A handle is only
// meaningful to the Pipeline that issued it.
type Task struct {
	name  string
	body  Body
	dep   *Task
	owner *Pipeline
}

// Name returns the name the task was registered under.
func (t *Task) Name() string { return t.name }

// Results maps every registered task handle to the output its body produced
// during one run. Each run produces a fresh mapping owned by the caller.
type Results map[*Task]any

type taskState int

const (
	pending taskState = iota
	running
	done
	failed
)

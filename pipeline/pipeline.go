// Package pipeline is a small dependency-graph task scheduler. Tasks are
// registered in any order with at most one declared dependency each; Run
// executes every task exactly once, in dependency order, feeding each task
// its dependency's output and collecting every output keyed by task handle.
package pipeline

import (
	"context"
	"fmt"

	"github.com/humblenginr/hn_wordfreq/ctxlog"
)

// Pipeline owns a set of registered tasks and the dependency edges between
// them. Registration is cheap; all execution happens in Run.
type Pipeline struct {
	tasks []*Task
}

// New returns an empty Pipeline.
func New() *Pipeline {
	return &Pipeline{}
}

// AddTask registers body under name and returns its handle. dependsOn may be
// nil, or a handle previously returned by AddTask on the same Pipeline; the
// new task will then run strictly after its dependency and receive that
// dependency's output as its input. A handle issued by a different Pipeline
// is a configuration error.
func (p *Pipeline) AddTask(name string, body Body, dependsOn *Task) (*Task, error) {
	if body == nil {
		return nil, fmt.Errorf("add task %q: %w", name, ErrNilBody)
	}
	if dependsOn != nil && dependsOn.owner != p {
		return nil, fmt.Errorf("add task %q depends on %q: %w", name, dependsOn.name, ErrUnknownTask)
	}
	t := &Task{name: name, body: body, dep: dependsOn, owner: p}
	p.tasks = append(p.tasks, t)
	return t, nil
}

// Run executes all registered tasks once, sequentially, in an order where
// every task runs after the task it depends on. It returns the complete
// mapping from task handle to output. If any body fails the run stops there:
// no mapping is returned and the remaining tasks are not attempted. Runs are
// independent; Run may be called again on the same Pipeline.
func (p *Pipeline) Run(ctx context.Context) (Results, error) {
	logger := ctxlog.FromContext(ctx)

	if err := p.detectCycles(); err != nil {
		return nil, err
	}

	state := make(map[*Task]taskState, len(p.tasks))
	for _, t := range p.tasks {
		state[t] = pending
	}

	results := make(Results, len(p.tasks))
	for {
		executable := p.ready(state)
		if len(executable) == 0 {
			break
		}
		for _, t := range executable {
			state[t] = running
			var in any
			if t.dep != nil {
				in = results[t.dep]
			}
			logger.Debug("running task", "task", t.name)

			out, err := t.body(ctx, in)
			if err != nil {
				state[t] = failed
				return nil, &TaskError{Name: t.name, Err: err}
			}
			results[t] = out
			state[t] = done
		}
	}

	return results, nil
}

// ready returns, in registration order, every pending task whose dependency
// (if any) has completed.
func (p *Pipeline) ready(state map[*Task]taskState) []*Task {
	var list []*Task
	for _, t := range p.tasks {
		if state[t] != pending {
			continue
		}
		if t.dep != nil && state[t.dep] != done {
			continue
		}
		list = append(list, t)
	}
	return list
}

// detectCycles walks every dependency chain and fails if any task is
// reachable from itself. With single-predecessor edges each chain either
// terminates at a root or loops.
func (p *Pipeline) detectCycles() error {
	permanent := make(map[*Task]bool, len(p.tasks))
	for _, t := range p.tasks {
		temporary := make(map[*Task]bool)
		for n := t; n != nil; n = n.dep {
			if permanent[n] {
				break
			}
			if temporary[n] {
				return fmt.Errorf("%w involving task %q", ErrCycle, n.name)
			}
			temporary[n] = true
		}
		for n := range temporary {
			permanent[n] = true
		}
	}
	return nil
}

package scheduler

import (
	"context"
	"time"
)

// Task is a unit of periodic work driven by the scheduler.
type Task interface {
	Name() string
	Interval() time.Duration
	Run(ctx context.Context) error
}

// Gate lets a task skip ticks while its feature is switched off.
type Gate interface {
	Enabled(ctx context.Context) bool
}

// Exclusive marks tasks that must run on a single replica at a time.
type Exclusive interface {
	Exclusive() bool
}

// Registry tracks registered tasks.
type Registry struct {
	tasks []Task
}

// NewRegistry builds a registry preloaded with the provided tasks.
func NewRegistry(tasks ...Task) *Registry {
	registry := &Registry{}
	for _, task := range tasks {
		registry.Register(task)
	}
	return registry
}

// Register adds a task to the registry.
func (r *Registry) Register(task Task) {
	if task == nil {
		return
	}
	r.tasks = append(r.tasks, task)
}

// Tasks returns the registered tasks in the order they were added.
func (r *Registry) Tasks() []Task {
	tasks := make([]Task, len(r.tasks))
	copy(tasks, r.tasks)
	return tasks
}

package scheduler

import (
	"context"
	"testing"
	"time"
)

type stubTask struct {
	name string
}

func (s *stubTask) Name() string              { return s.name }
func (s *stubTask) Interval() time.Duration   { return time.Second }
func (s *stubTask) Run(context.Context) error { return nil }

func TestRegistryStoresTasks(t *testing.T) {
	registry := NewRegistry(nil)
	taskA := &stubTask{name: "a"}
	taskB := &stubTask{name: "b"}
	registry.Register(taskA)
	registry.Register(nil)
	registry.Register(taskB)
	tasks := registry.Tasks()
	if len(tasks) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(tasks))
	}
	if tasks[0] != taskA || tasks[1] != taskB {
		t.Fatalf("tasks returned out of order")
	}
	tasks[0] = nil
	if registry.Tasks()[0] == nil {
		t.Fatalf("internal slice leaked")
	}
}

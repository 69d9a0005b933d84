package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/kitchenboard/pkg/logger"
	"github.com/angelmondragon/kitchenboard/pkg/metrics"
)

const defaultInterval = time.Minute

// ServiceParams configure the scheduler.
type ServiceParams struct {
	Logger   *logger.Logger
	Registry *Registry
	Lease    Lease
	Metrics  *metrics.TaskMetrics
}

// Service runs every registered task on its own ticker.
type Service struct {
	logg     *logger.Logger
	registry *Registry
	lease    Lease
	metrics  *metrics.TaskMetrics
}

// NewService builds a scheduler. A nil lease lets exclusive tasks run unconditionally.
func NewService(params ServiceParams) (*Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	registry := params.Registry
	if registry == nil {
		registry = NewRegistry()
	}
	return &Service{
		logg:     params.Logger,
		registry: registry,
		lease:    params.Lease,
		metrics:  params.Metrics,
	}, nil
}

// Run starts one loop per task and blocks until the context is canceled.
// Each task runs once immediately, then on every tick of its interval.
func (s *Service) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	var wg sync.WaitGroup
	for _, task := range s.registry.Tasks() {
		wg.Add(1)
		go func(task Task) {
			defer wg.Done()
			s.loop(ctx, task)
		}(task)
	}
	<-ctx.Done()
	wg.Wait()
	s.releaseLease()
	s.logg.Info(ctx, "scheduler context canceled")
	return ctx.Err()
}

func (s *Service) loop(ctx context.Context, task Task) {
	interval := task.Interval()
	if interval <= 0 {
		interval = defaultInterval
	}
	s.tick(ctx, task)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx, task)
		}
	}
}

// tick runs a task once, honoring its gate and the lease.
func (s *Service) tick(ctx context.Context, task Task) {
	taskCtx := s.logg.WithTask(ctx, task.Name())
	if gate, ok := task.(Gate); ok && !gate.Enabled(taskCtx) {
		s.metrics.IncSkip(task.Name(), metrics.SkipDisabled)
		return
	}
	if exclusive, ok := task.(Exclusive); ok && exclusive.Exclusive() {
		if reason := s.leaseSkipReason(taskCtx); reason != "" {
			s.metrics.IncSkip(task.Name(), reason)
			return
		}
	}
	s.runTask(taskCtx, task)
}

// leaseSkipReason returns "" when this replica may run exclusive tasks.
func (s *Service) leaseSkipReason(ctx context.Context) string {
	if s.lease == nil {
		return ""
	}
	held, err := s.lease.Acquire(ctx)
	if err != nil {
		s.metrics.SetLeader(false)
		s.logg.Error(ctx, "lease acquire failed", err)
		return metrics.SkipLeaseError
	}
	s.metrics.SetLeader(held)
	if !held {
		s.logg.Debug(ctx, "another instance holds the lease; skipping tick")
		return metrics.SkipStandby
	}
	return ""
}

func (s *Service) releaseLease() {
	if s.lease == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.lease.Release(ctx); err != nil {
		s.logg.Error(ctx, "failed to release scheduler lease", err)
	}
	s.metrics.SetLeader(false)
}

func (s *Service) runTask(ctx context.Context, task Task) {
	start := time.Now()
	err := task.Run(ctx)
	duration := time.Since(start)
	s.metrics.ObserveRun(task.Name(), duration, err)
	ctx = s.logg.WithField(ctx, "duration_ms", duration.Milliseconds())
	if err != nil {
		s.logg.Error(ctx, "task failed", err)
		return
	}
	s.logg.Debug(ctx, "task completed")
}

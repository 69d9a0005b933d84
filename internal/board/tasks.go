package board

import (
	"context"
	"time"

	"go.uber.org/multierr"
)

const (
	RefreshTaskName    = "board-refresh"
	AutoPrintTaskName  = "board-auto-print"
	AutoStatusTaskName = "board-auto-status"
)

// Refresher is anything reloaded alongside the working set.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// RefreshTask reloads the working set and any lookup tables.
type RefreshTask struct {
	engine   *Engine
	interval time.Duration
	extras   []Refresher
}

// NewRefreshTask builds the periodic refresh task.
func NewRefreshTask(engine *Engine, interval time.Duration, extras ...Refresher) *RefreshTask {
	return &RefreshTask{engine: engine, interval: interval, extras: extras}
}

func (t *RefreshTask) Name() string { return RefreshTaskName }

func (t *RefreshTask) Interval() time.Duration { return t.interval }

func (t *RefreshTask) Run(ctx context.Context) error {
	var errs error
	for _, extra := range t.extras {
		errs = multierr.Append(errs, extra.Refresh(ctx))
	}
	return multierr.Append(errs, t.engine.Refresh(ctx))
}

// AutoPrintTask runs the auto-print check while auto-print is on.
type AutoPrintTask struct {
	engine   *Engine
	interval time.Duration
}

// NewAutoPrintTask builds the auto-print task.
func NewAutoPrintTask(engine *Engine, interval time.Duration) *AutoPrintTask {
	return &AutoPrintTask{engine: engine, interval: interval}
}

func (t *AutoPrintTask) Name() string { return AutoPrintTaskName }

func (t *AutoPrintTask) Interval() time.Duration { return t.interval }

func (t *AutoPrintTask) Exclusive() bool { return true }

func (t *AutoPrintTask) Enabled(ctx context.Context) bool {
	return t.engine.flags.Current(ctx).AutoPrint
}

func (t *AutoPrintTask) Run(ctx context.Context) error {
	return t.engine.RunAutoPrint(ctx)
}

// AutoStatusTask runs the dwell check while auto-status is effective.
type AutoStatusTask struct {
	engine   *Engine
	interval time.Duration
}

// NewAutoStatusTask builds the auto-status task.
func NewAutoStatusTask(engine *Engine, interval time.Duration) *AutoStatusTask {
	return &AutoStatusTask{engine: engine, interval: interval}
}

func (t *AutoStatusTask) Name() string { return AutoStatusTaskName }

func (t *AutoStatusTask) Interval() time.Duration { return t.interval }

func (t *AutoStatusTask) Exclusive() bool { return true }

func (t *AutoStatusTask) Enabled(ctx context.Context) bool {
	return t.engine.flags.Current(ctx).EffectiveAutoStatus()
}

func (t *AutoStatusTask) Run(ctx context.Context) error {
	return t.engine.RunAutoStatus(ctx)
}

package tickets

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/kitchenboard/pkg/logger"
	"gorm.io/gorm"
)

const (
	RetentionTaskName = "ticket-retention"

	defaultRetention         = 72 * time.Hour
	defaultRetentionInterval = 24 * time.Hour
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type retentionRepo interface {
	DeleteOlderThan(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error)
}

// RetentionTaskParams configure the archive cleanup task.
type RetentionTaskParams struct {
	Logger     *logger.Logger
	DB         txRunner
	Repository retentionRepo
	Retention  time.Duration
	Interval   time.Duration
}

// RetentionTask deletes tickets printed before the retention cutoff.
type RetentionTask struct {
	logg      *logger.Logger
	db        txRunner
	repo      retentionRepo
	retention time.Duration
	interval  time.Duration
	now       func() time.Time
}

// NewRetentionTask validates the task dependencies.
func NewRetentionTask(params RetentionTaskParams) (*RetentionTask, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db runner required")
	}
	if params.Repository == nil {
		return nil, fmt.Errorf("tickets repository required")
	}
	retention := params.Retention
	if retention <= 0 {
		retention = defaultRetention
	}
	interval := params.Interval
	if interval <= 0 {
		interval = defaultRetentionInterval
	}
	return &RetentionTask{
		logg:      params.Logger,
		db:        params.DB,
		repo:      params.Repository,
		retention: retention,
		interval:  interval,
		now:       time.Now,
	}, nil
}

func (t *RetentionTask) Name() string { return RetentionTaskName }

func (t *RetentionTask) Interval() time.Duration { return t.interval }

func (t *RetentionTask) Exclusive() bool { return true }

func (t *RetentionTask) Run(ctx context.Context) error {
	cutoff := t.now().UTC().Add(-t.retention)
	var deleted int64
	err := t.db.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := t.repo.DeleteOlderThan(ctx, tx, cutoff)
		if err != nil {
			return err
		}
		deleted = rows
		return nil
	})
	if err != nil {
		return fmt.Errorf("ticket retention: %w", err)
	}
	logCtx := t.logg.WithFields(ctx, map[string]any{
		"cutoff":       cutoff,
		"retention":    t.retention.String(),
		"rows_deleted": deleted,
	})
	t.logg.Info(logCtx, "ticket retention complete")
	return nil
}

package settings

import (
	"context"
	"sync"

	pkgerrors "github.com/angelmondragon/kitchenboard/pkg/errors"
	"github.com/angelmondragon/kitchenboard/pkg/logger"
	"github.com/go-playground/validator/v10"
)

// ServiceParams configure the settings service.
type ServiceParams struct {
	Store    Store
	Logger   *logger.Logger
	Defaults Flags
}

// Service reads and updates the board toggles.
type Service struct {
	store    Store
	logg     *logger.Logger
	defaults Flags
	validate *validator.Validate

	mu   sync.RWMutex
	last Flags
}

// NewService builds the settings service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Store == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "settings store required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	return &Service{
		store:    params.Store,
		logg:     params.Logger,
		defaults: params.Defaults,
		validate: validator.New(),
		last:     params.Defaults,
	}, nil
}

// Get returns the persisted toggles.
func (s *Service) Get(ctx context.Context) (Flags, error) {
	flags, err := s.store.Load(ctx, s.defaults)
	if err != nil {
		return Flags{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load board settings")
	}
	s.remember(flags)
	return flags, nil
}

// Current returns the persisted toggles, or the last known ones when the store is unreachable.
func (s *Service) Current(ctx context.Context) Flags {
	flags, err := s.Get(ctx)
	if err != nil {
		s.logg.Warn(ctx, "settings store unavailable; using last known flags: "+err.Error())
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.last
	}
	return flags
}

// Update applies a partial change and persists the result.
func (s *Service) Update(ctx context.Context, input UpdateInput) (Flags, error) {
	if err := s.validate.Struct(input); err != nil {
		return Flags{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "autoPrint or autoStatus is required")
	}
	current, err := s.Get(ctx)
	if err != nil {
		return Flags{}, err
	}
	next := input.apply(current)
	if err := s.store.Save(ctx, next); err != nil {
		return Flags{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save board settings")
	}
	s.remember(next)

	ctx = s.logg.WithFields(ctx, map[string]any{
		"auto_print":  next.AutoPrint,
		"auto_status": next.AutoStatus,
	})
	s.logg.Info(ctx, "board settings updated")
	return next, nil
}

func (s *Service) remember(flags Flags) {
	s.mu.Lock()
	s.last = flags
	s.mu.Unlock()
}

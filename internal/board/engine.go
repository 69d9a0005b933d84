package board

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/angelmondragon/kitchenboard/internal/settings"
	"github.com/angelmondragon/kitchenboard/pkg/backend"
	"github.com/angelmondragon/kitchenboard/pkg/enums"
	pkgerrors "github.com/angelmondragon/kitchenboard/pkg/errors"
	"github.com/angelmondragon/kitchenboard/pkg/logger"
	"github.com/angelmondragon/kitchenboard/pkg/metrics"
	"go.uber.org/multierr"
)

// OrderBackend is the HTTP collaborator that owns orders.
type OrderBackend interface {
	ListOrders(ctx context.Context) ([]backend.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status enums.OrderStatus, changedAt time.Time) error
}

// PrintRequest asks for a kitchen ticket covering one group.
type PrintRequest struct {
	Group      Group
	Trigger    enums.Trigger
	AutoStatus bool
	PrintedAt  time.Time
}

// Printer renders and dispatches kitchen tickets, returning the ticket id.
type Printer interface {
	Print(ctx context.Context, req PrintRequest) (string, error)
}

// FlagSource supplies the current board toggles.
type FlagSource interface {
	Current(ctx context.Context) settings.Flags
}

// Names resolves display names for the board view.
type Names interface {
	RestaurantName(id string) string
	ItemName(id string) string
}

// EngineParams configure the board engine.
type EngineParams struct {
	Backend OrderBackend
	Printer Printer
	Flags   FlagSource
	Names   Names
	Logger  *logger.Logger
	Metrics *metrics.BoardMetrics
	Rules   Rules
	Now     func() time.Time
}

// Engine keeps the active working set and drives printing and status progression.
// State is guarded by mu; backend and printer calls happen outside the lock.
type Engine struct {
	backend OrderBackend
	printer Printer
	flags   FlagSource
	names   Names
	logg    *logger.Logger
	metrics *metrics.BoardMetrics
	rules   Rules
	now     func() time.Time

	mu          sync.Mutex
	orders      []Order
	tracker     *PrintTracker
	lastRefresh time.Time
	lastErr     string
}

// NewEngine builds a board engine.
func NewEngine(params EngineParams) (*Engine, error) {
	if params.Backend == nil {
		return nil, fmt.Errorf("order backend required")
	}
	if params.Printer == nil {
		return nil, fmt.Errorf("printer required")
	}
	if params.Flags == nil {
		return nil, fmt.Errorf("flag source required")
	}
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	rules := params.Rules
	if rules == (Rules{}) {
		rules = DefaultRules()
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Engine{
		backend: params.Backend,
		printer: params.Printer,
		flags:   params.Flags,
		names:   params.Names,
		logg:    params.Logger,
		metrics: params.Metrics,
		rules:   rules,
		now:     now,
		tracker: NewPrintTracker(rules.PrintCooldown),
	}, nil
}

// Rules returns the timings the engine runs with.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Refresh replaces the working set with the active orders reported by the backend.
// On failure the previous working set is kept and the error is remembered for the view.
func (e *Engine) Refresh(ctx context.Context) error {
	rows, err := e.backend.ListOrders(ctx)
	if err != nil {
		e.mu.Lock()
		e.lastErr = err.Error()
		e.mu.Unlock()
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh board orders")
	}

	active := FilterActive(FromBackendList(rows))
	groups := len(GroupOrders(active))

	e.mu.Lock()
	e.orders = active
	e.lastRefresh = e.now()
	e.lastErr = ""
	e.mu.Unlock()

	e.metrics.SetWorkingSet(len(active), groups)
	ctx = e.logg.WithFields(ctx, map[string]any{"active_orders": len(active), "groups": groups})
	e.logg.Debug(ctx, "board refreshed")
	return nil
}

// RunAutoPrint prints every group that needs a ticket and confirms its pending members.
// Print failures are logged; status update failures trigger a refetch and are returned.
func (e *Engine) RunAutoPrint(ctx context.Context) error {
	flags := e.flags.Current(ctx)
	if !flags.AutoPrint {
		return nil
	}

	e.mu.Lock()
	now := e.now()
	groups := SortGroups(GroupOrders(e.orders), enums.SortAscending)
	effects := PlanAutoPrint(now, groups, e.tracker, e.rules)
	var confirmed []Transition
	for _, effect := range effects {
		e.tracker.Record(effect, now)
		for _, t := range effect.Confirm {
			var applied bool
			e.orders, applied = applyTransition(e.orders, t)
			if applied {
				confirmed = append(confirmed, t)
			}
		}
	}
	e.mu.Unlock()

	for _, effect := range effects {
		groupCtx := e.logg.WithGroupKey(ctx, effect.Group.Key)
		ticketID, err := e.printer.Print(groupCtx, PrintRequest{
			Group:      effect.Group,
			Trigger:    enums.TriggerAuto,
			AutoStatus: flags.EffectiveAutoStatus(),
			PrintedAt:  now,
		})
		if err != nil {
			// The group is already stamped and its orders confirmed; staff reprint from these ids.
			failedCtx := e.logg.WithField(groupCtx, "order_ids", effect.Group.OrderIDs())
			e.logg.Error(failedCtx, "auto print failed, reprint manually", err)
			continue
		}
		e.metrics.IncPrint(enums.TriggerAuto.String())
		groupCtx = e.logg.WithFields(groupCtx, map[string]any{"ticket_id": ticketID, "orders": len(effect.Group.Orders)})
		e.logg.Info(groupCtx, "group auto-printed")
	}

	return e.commit(ctx, confirmed)
}

// RunAutoStatus advances orders whose dwell time has elapsed.
func (e *Engine) RunAutoStatus(ctx context.Context) error {
	flags := e.flags.Current(ctx)
	if !flags.EffectiveAutoStatus() {
		return nil
	}

	e.mu.Lock()
	transitions := PlanAutoStatus(e.now(), e.orders, flags, e.rules)
	applied := make([]Transition, 0, len(transitions))
	for _, t := range transitions {
		var ok bool
		e.orders, ok = applyTransition(e.orders, t)
		if ok {
			applied = append(applied, t)
		}
	}
	e.mu.Unlock()

	return e.commit(ctx, applied)
}

// Advance applies a staff-requested status change to one order on the board.
func (e *Engine) Advance(ctx context.Context, orderID string, target enums.OrderStatus) (Transition, error) {
	ctx = e.logg.WithOrderID(ctx, orderID)

	e.mu.Lock()
	order, ok := e.findLocked(orderID)
	if !ok {
		e.mu.Unlock()
		return Transition{}, pkgerrors.New(pkgerrors.CodeNotFound, "order is not on the board")
	}
	now := e.now()
	if err := ValidateManualTransition(order, target, now, e.rules); err != nil {
		e.mu.Unlock()
		return Transition{}, err
	}
	t := Transition{
		OrderID: orderID,
		From:    order.Status.Normalize(),
		To:      target,
		At:      now,
		Trigger: enums.TriggerManual,
	}
	e.orders, _ = applyTransition(e.orders, t)
	e.mu.Unlock()

	if err := e.commit(ctx, []Transition{t}); err != nil {
		return Transition{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "status update failed; board reloaded")
	}
	return t, nil
}

// PrintGroup prints a ticket for the group on staff request. It does not stamp the auto-printed
// set or change any status.
func (e *Engine) PrintGroup(ctx context.Context, key string) (string, error) {
	ctx = e.logg.WithGroupKey(ctx, key)
	flags := e.flags.Current(ctx)

	e.mu.Lock()
	group, ok := FindGroup(GroupOrders(e.orders), key)
	now := e.now()
	e.mu.Unlock()
	if !ok {
		return "", pkgerrors.New(pkgerrors.CodeNotFound, "group is not on the board")
	}

	ticketID, err := e.printer.Print(ctx, PrintRequest{
		Group:      group,
		Trigger:    enums.TriggerManual,
		AutoStatus: flags.EffectiveAutoStatus(),
		PrintedAt:  now,
	})
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "print ticket")
	}
	e.metrics.IncPrint(enums.TriggerManual.String())
	e.logg.Info(e.logg.WithField(ctx, "ticket_id", ticketID), "group printed manually")
	return ticketID, nil
}

// Snapshot returns a copy of the working set.
func (e *Engine) Snapshot() []Order {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]Order, len(e.orders))
	copy(out, e.orders)
	return out
}

// commit sends already-applied transitions to the backend. When any update fails the working set
// is refetched once so local speculation is discarded.
func (e *Engine) commit(ctx context.Context, transitions []Transition) error {
	var errs error
	for _, t := range transitions {
		orderCtx := e.logg.WithFields(e.logg.WithOrderID(ctx, t.OrderID), map[string]any{
			"from":    t.From.String(),
			"to":      t.To.String(),
			"trigger": t.Trigger.String(),
		})
		if err := e.backend.UpdateOrderStatus(ctx, t.OrderID, t.To, t.At); err != nil {
			e.metrics.IncUpdateError(t.Trigger.String())
			e.logg.Error(orderCtx, "order status update failed", err)
			errs = multierr.Append(errs, fmt.Errorf("order %s %s->%s: %w", t.OrderID, t.From, t.To, err))
			continue
		}
		e.metrics.IncTransition(t.From.String(), t.To.String(), t.Trigger.String())
		e.logg.Info(orderCtx, "order status changed")
	}
	if errs == nil {
		return nil
	}
	if err := e.Refresh(ctx); err != nil {
		errs = multierr.Append(errs, err)
	}
	return errs
}

func (e *Engine) findLocked(orderID string) (Order, bool) {
	for _, order := range e.orders {
		if order.ID == orderID {
			return order, true
		}
	}
	return Order{}, false
}

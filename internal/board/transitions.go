package board

import (
	"fmt"
	"time"

	"github.com/angelmondragon/kitchenboard/internal/settings"
	"github.com/angelmondragon/kitchenboard/pkg/enums"
	pkgerrors "github.com/angelmondragon/kitchenboard/pkg/errors"
)

// Transition is a single status change for one order.
type Transition struct {
	OrderID string            `json:"orderId"`
	From    enums.OrderStatus `json:"from"`
	To      enums.OrderStatus `json:"to"`
	At      time.Time         `json:"at"`
	Trigger enums.Trigger     `json:"trigger"`
}

// RemovesOrder reports whether applying the transition takes the order off the board.
func (t Transition) RemovesOrder() bool {
	return t.To == enums.OrderStatusServed
}

// PlanAutoStatus returns the dwell-driven transitions due at now. Nothing fires unless auto-status
// is effective. Each order is evaluated once and gets at most one transition.
func PlanAutoStatus(now time.Time, orders []Order, flags settings.Flags, rules Rules) []Transition {
	if !flags.EffectiveAutoStatus() {
		return nil
	}
	seen := make(map[string]struct{}, len(orders))
	var transitions []Transition
	for _, order := range orders {
		if _, ok := seen[order.ID]; ok {
			continue
		}
		seen[order.ID] = struct{}{}

		next, dwell, ok := rules.NextAutomatic(order.Status)
		if !ok {
			continue
		}
		if now.Sub(order.StatusSince()) < dwell {
			continue
		}
		transitions = append(transitions, Transition{
			OrderID: order.ID,
			From:    order.Status.Normalize(),
			To:      next,
			At:      now,
			Trigger: enums.TriggerAuto,
		})
	}
	return transitions
}

// ValidateManualTransition checks a staff-requested status change. Staff may move an order one
// step along the kitchen flow at any time, except that confirming waits for the modification
// window to close.
func ValidateManualTransition(order Order, target enums.OrderStatus, now time.Time, rules Rules) error {
	if target.IsAdministrative() {
		return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("%s is set from order management", target)).
			WithDetails(map[string]any{"orderId": order.ID, "status": target})
	}
	next, ok := NextInFlow(order.Status)
	if !ok || next != target {
		return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("cannot move order from %s to %s", order.Status.Normalize(), target)).
			WithDetails(map[string]any{"orderId": order.ID, "from": order.Status.Normalize(), "to": target})
	}
	if target == enums.OrderStatusConfirmed {
		if remaining, editable := rules.EditableFor(order, now); editable {
			return pkgerrors.New(pkgerrors.CodeEditable, "order can still be modified by the customer").
				WithDetails(map[string]any{"orderId": order.ID, "remainingSeconds": int(remaining.Round(time.Second).Seconds())})
		}
	}
	return nil
}

// applyTransition applies t to orders in place. A served order is removed. The transition is
// skipped when the order is gone or already left t.From.
func applyTransition(orders []Order, t Transition) ([]Order, bool) {
	for i := range orders {
		if orders[i].ID != t.OrderID {
			continue
		}
		if orders[i].Status.Normalize() != t.From {
			return orders, false
		}
		if t.RemovesOrder() {
			return append(orders[:i:i], orders[i+1:]...), true
		}
		orders[i].Status = t.To
		orders[i].StatusChangedAt = t.At
		return orders, true
	}
	return orders, false
}

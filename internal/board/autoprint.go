package board

import (
	"time"

	"github.com/angelmondragon/kitchenboard/pkg/enums"
)

// PrintEffect is one ticket the auto-print tick wants printed.
type PrintEffect struct {
	// Group holds the members going on the ticket; orders still inside their
	// modification window are left off and wait for a later tick.
	Group   Group
	Trigger enums.Trigger
	// Confirm lists the pending members that move to confirmed once printed.
	Confirm []Transition
}

// PrintTracker remembers which orders were auto-printed and which groups are cooling down.
// The printed set lives as long as the process.
type PrintTracker struct {
	cooldown time.Duration
	printed  map[string]struct{}
	cooling  map[string]time.Time
}

// NewPrintTracker builds an empty tracker with the given group cooldown.
func NewPrintTracker(cooldown time.Duration) *PrintTracker {
	return &PrintTracker{
		cooldown: cooldown,
		printed:  make(map[string]struct{}),
		cooling:  make(map[string]time.Time),
	}
}

// IsPrinted reports whether the order has already been auto-printed.
func (t *PrintTracker) IsPrinted(orderID string) bool {
	_, ok := t.printed[orderID]
	return ok
}

// InCooldown reports whether the group key is still cooling down at now.
func (t *PrintTracker) InCooldown(key string, now time.Time) bool {
	until, ok := t.cooling[key]
	if !ok {
		return false
	}
	if !now.Before(until) {
		delete(t.cooling, key)
		return false
	}
	return true
}

// Record starts the group cooldown and stamps every ticket member as printed.
func (t *PrintTracker) Record(effect PrintEffect, now time.Time) {
	t.cooling[effect.Group.Key] = now.Add(t.cooldown)
	for _, order := range effect.Group.Orders {
		t.printed[order.ID] = struct{}{}
	}
}

// PrintedCount returns the size of the printed set.
func (t *PrintTracker) PrintedCount() int {
	return len(t.printed)
}

// PlanAutoPrint picks the groups that need a ticket at now. A group needs one when a member is
// pending, not yet printed and past its modification window, and the group is not cooling down.
func PlanAutoPrint(now time.Time, groups []Group, tracker *PrintTracker, rules Rules) []PrintEffect {
	var effects []PrintEffect
	for _, group := range groups {
		if !needsPrint(now, group, tracker, rules) {
			continue
		}
		if tracker.InCooldown(group.Key, now) {
			continue
		}

		printable := make([]Order, 0, len(group.Orders))
		var confirm []Transition
		for _, order := range group.Orders {
			if rules.InModificationWindow(order, now) {
				continue
			}
			printable = append(printable, order)
			if order.IsPending() {
				confirm = append(confirm, Transition{
					OrderID: order.ID,
					From:    order.Status.Normalize(),
					To:      enums.OrderStatusConfirmed,
					At:      now,
					Trigger: enums.TriggerAuto,
				})
			}
		}

		effects = append(effects, PrintEffect{
			Group:   group.withOrders(printable),
			Trigger: enums.TriggerAuto,
			Confirm: confirm,
		})
	}
	return effects
}

func needsPrint(now time.Time, group Group, tracker *PrintTracker, rules Rules) bool {
	for _, order := range group.Orders {
		if !order.IsPending() {
			continue
		}
		if tracker.IsPrinted(order.ID) {
			continue
		}
		if rules.InModificationWindow(order, now) {
			continue
		}
		return true
	}
	return false
}

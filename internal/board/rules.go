package board

import (
	"time"

	"github.com/angelmondragon/kitchenboard/pkg/config"
	"github.com/angelmondragon/kitchenboard/pkg/enums"
)

// Rules holds the board timings.
type Rules struct {
	ModificationWindow time.Duration
	PrintCooldown      time.Duration
	ConfirmedDwell     time.Duration
	PreparingDwell     time.Duration
	ReadyDwell         time.Duration
}

// DefaultRules returns the kitchen timings: a 2 minute edit window, 30 second print cooldown
// and dwells of 2, 15 and 5 minutes.
func DefaultRules() Rules {
	return Rules{
		ModificationWindow: 2 * time.Minute,
		PrintCooldown:      30 * time.Second,
		ConfirmedDwell:     2 * time.Minute,
		PreparingDwell:     15 * time.Minute,
		ReadyDwell:         5 * time.Minute,
	}
}

// RulesFromConfig overrides the defaults with any positive configured value.
func RulesFromConfig(cfg config.BoardConfig) Rules {
	rules := DefaultRules()
	override := func(dst *time.Duration, value time.Duration) {
		if value > 0 {
			*dst = value
		}
	}
	override(&rules.ModificationWindow, cfg.ModificationWindow)
	override(&rules.PrintCooldown, cfg.PrintCooldown)
	override(&rules.ConfirmedDwell, cfg.ConfirmedDwell)
	override(&rules.PreparingDwell, cfg.PreparingDwell)
	override(&rules.ReadyDwell, cfg.ReadyDwell)
	return rules
}

// InModificationWindow reports whether the customer may still edit the order.
func (r Rules) InModificationWindow(order Order, now time.Time) bool {
	return now.Sub(order.CreatedAt) < r.ModificationWindow
}

// EditableFor returns the time left in the modification window.
func (r Rules) EditableFor(order Order, now time.Time) (time.Duration, bool) {
	remaining := r.ModificationWindow - now.Sub(order.CreatedAt)
	if remaining <= 0 {
		return 0, false
	}
	return remaining, true
}

// NextAutomatic returns the dwell-driven successor of status and the dwell it requires.
func (r Rules) NextAutomatic(status enums.OrderStatus) (enums.OrderStatus, time.Duration, bool) {
	switch status.Normalize() {
	case enums.OrderStatusConfirmed:
		return enums.OrderStatusPreparing, r.ConfirmedDwell, true
	case enums.OrderStatusPreparing:
		return enums.OrderStatusReady, r.PreparingDwell, true
	case enums.OrderStatusReady:
		return enums.OrderStatusServed, r.ReadyDwell, true
	}
	return "", 0, false
}

// NextInFlow returns the next kitchen flow status reachable by staff.
func NextInFlow(status enums.OrderStatus) (enums.OrderStatus, bool) {
	switch status.Normalize() {
	case enums.OrderStatusPending:
		return enums.OrderStatusConfirmed, true
	case enums.OrderStatusConfirmed:
		return enums.OrderStatusPreparing, true
	case enums.OrderStatusPreparing:
		return enums.OrderStatusReady, true
	case enums.OrderStatusReady:
		return enums.OrderStatusServed, true
	}
	return "", false
}

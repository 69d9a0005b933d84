package board

import (
	"fmt"
	"time"

	"github.com/angelmondragon/kitchenboard/internal/settings"
	"github.com/angelmondragon/kitchenboard/pkg/enums"
)

// Remaining is the time left before the next automatic transition.
type Remaining struct {
	Minutes int               `json:"minutes"`
	Seconds int               `json:"seconds"`
	Total   time.Duration     `json:"-"`
	Next    enums.OrderStatus `json:"next"`
}

// String renders the countdown as m:ss.
func (r Remaining) String() string {
	return fmt.Sprintf("%d:%02d", r.Minutes, r.Seconds)
}

// Countdown returns the time until the order's next automatic transition. There is no countdown
// when auto-status is not effective, the status has no automatic successor, or the threshold
// has already passed.
func Countdown(order Order, now time.Time, flags settings.Flags, rules Rules) (Remaining, bool) {
	if !flags.EffectiveAutoStatus() {
		return Remaining{}, false
	}
	next, dwell, ok := rules.NextAutomatic(order.Status)
	if !ok {
		return Remaining{}, false
	}
	left := dwell - now.Sub(order.StatusSince())
	if left <= 0 {
		return Remaining{}, false
	}
	return Remaining{
		Minutes: int(left / time.Minute),
		Seconds: int((left % time.Minute) / time.Second),
		Total:   left,
		Next:    next,
	}, true
}

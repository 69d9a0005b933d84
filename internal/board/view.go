package board

import (
	"context"
	"time"

	"github.com/angelmondragon/kitchenboard/internal/settings"
	"github.com/angelmondragon/kitchenboard/pkg/enums"
	"github.com/shopspring/decimal"
)

// BoardView is the kitchen screen model: active groups, earliest first.
type BoardView struct {
	GeneratedAt time.Time      `json:"generatedAt"`
	LastRefresh time.Time      `json:"lastRefresh"`
	Banner      string         `json:"banner,omitempty"`
	Flags       settings.Flags `json:"flags"`
	Groups      []GroupView    `json:"groups"`
}

// GroupView is one table group on the screen.
type GroupView struct {
	Key            string          `json:"key"`
	TableNumber    string          `json:"tableNumber"`
	CustomerName   string          `json:"customerName"`
	CustomerPhone  string          `json:"customerPhone"`
	RestaurantID   string          `json:"restaurantId"`
	RestaurantName string          `json:"restaurantName"`
	FirstOrderTime time.Time       `json:"firstOrderTime"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	Orders         []OrderView     `json:"orders"`
}

// OrderView is one order line with its timers.
type OrderView struct {
	Order
	ItemName         string     `json:"itemName"`
	LineTotal        string     `json:"lineTotal"`
	AutoPrinted      bool       `json:"autoPrinted"`
	EditableSeconds  int        `json:"editableSeconds,omitempty"`
	Countdown        *Remaining `json:"countdown,omitempty"`
	CountdownDisplay string     `json:"countdownDisplay,omitempty"`
}

// View builds the board model at the current time.
func (e *Engine) View(ctx context.Context) BoardView {
	flags := e.flags.Current(ctx)

	e.mu.Lock()
	now := e.now()
	groups := SortGroups(GroupOrders(e.orders), enums.SortAscending)
	printed := make(map[string]bool)
	for _, group := range groups {
		for _, order := range group.Orders {
			if e.tracker.IsPrinted(order.ID) {
				printed[order.ID] = true
			}
		}
	}
	view := BoardView{
		GeneratedAt: now,
		LastRefresh: e.lastRefresh,
		Banner:      e.lastErr,
		Flags:       flags,
		Groups:      make([]GroupView, 0, len(groups)),
	}
	e.mu.Unlock()

	for _, group := range groups {
		view.Groups = append(view.Groups, e.groupView(group, now, flags, printed))
	}
	return view
}

func (e *Engine) groupView(group Group, now time.Time, flags settings.Flags, printed map[string]bool) GroupView {
	gv := GroupView{
		Key:            group.Key,
		TableNumber:    group.TableNumber,
		CustomerName:   group.CustomerName,
		CustomerPhone:  group.CustomerPhone,
		RestaurantID:   group.RestaurantID,
		RestaurantName: e.restaurantName(group.RestaurantID),
		FirstOrderTime: group.FirstOrderTime,
		Subtotal:       group.Subtotal(),
		Orders:         make([]OrderView, 0, len(group.Orders)),
	}
	for _, order := range group.Orders {
		ov := OrderView{
			Order:       order,
			ItemName:    e.itemName(order.ProductID),
			LineTotal:   order.LineTotal().StringFixed(2),
			AutoPrinted: printed[order.ID],
		}
		if order.IsPending() {
			if left, ok := e.rules.EditableFor(order, now); ok {
				ov.EditableSeconds = int(left.Round(time.Second).Seconds())
			}
		}
		if remaining, ok := Countdown(order, now, flags, e.rules); ok {
			ov.Countdown = &remaining
			ov.CountdownDisplay = remaining.String()
		}
		gv.Orders = append(gv.Orders, ov)
	}
	return gv
}

func (e *Engine) restaurantName(id string) string {
	if e.names == nil {
		return "Restaurant #" + id
	}
	return e.names.RestaurantName(id)
}

func (e *Engine) itemName(id string) string {
	if e.names == nil {
		return "Item #" + id
	}
	return e.names.ItemName(id)
}

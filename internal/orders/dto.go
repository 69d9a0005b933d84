package orders

import (
	"time"

	"github.com/angelmondragon/kitchenboard/internal/board"
	"github.com/angelmondragon/kitchenboard/pkg/enums"
)

// HistoryFilters describe the inputs supported by the order management list.
type HistoryFilters struct {
	Status       *enums.OrderStatus
	RestaurantID string
	TableNumber  string
}

// HistoryGroup is one customer group in the management list.
type HistoryGroup struct {
	board.Group
	RestaurantName string `json:"restaurantName"`
	OrderCount     int    `json:"orderCount"`
	Subtotal       string `json:"subtotal"`
}

// HistoryList wraps the grouped orders, most recent first.
type HistoryList struct {
	Groups      []HistoryGroup `json:"groups"`
	TotalOrders int            `json:"totalOrders"`
}

// StatusChange reports an administrative status update.
type StatusChange struct {
	OrderID   string            `json:"orderId"`
	Status    enums.OrderStatus `json:"orderStatus"`
	ChangedAt time.Time         `json:"statusChangedAt"`
}

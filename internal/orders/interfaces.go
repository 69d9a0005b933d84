package orders

import (
	"context"
	"time"

	"github.com/angelmondragon/kitchenboard/pkg/backend"
	"github.com/angelmondragon/kitchenboard/pkg/enums"
)

// Backend is the restaurant API that owns every order.
type Backend interface {
	ListOrders(ctx context.Context) ([]backend.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID string, status enums.OrderStatus, changedAt time.Time) error
}

// BoardRefresher reloads the kitchen board after an administrative change.
type BoardRefresher interface {
	Refresh(ctx context.Context) error
}

// Names resolves restaurant display names.
type Names interface {
	RestaurantName(id string) string
}

package board

import (
	"strings"
	"time"

	"github.com/angelmondragon/kitchenboard/pkg/backend"
	"github.com/angelmondragon/kitchenboard/pkg/enums"
	"github.com/shopspring/decimal"
)

const defaultCreatedBy = "Guest"

// Order is one line of a customer order as tracked on the board.
// Identity fields are never mutated; only Status and StatusChangedAt move through transitions.
type Order struct {
	ID              string            `json:"orderId"`
	RestaurantID    string            `json:"restaurantId"`
	TableNumber     string            `json:"tableNumber"`
	ProductID       string            `json:"productId"`
	Quantity        int               `json:"quantity"`
	Price           decimal.Decimal   `json:"price"`
	PortionSize     string            `json:"portionSize,omitempty"`
	CustomerPhone   string            `json:"customerPhone,omitempty"`
	CreatedBy       string            `json:"createdBy"`
	Status          enums.OrderStatus `json:"orderStatus"`
	CreatedAt       time.Time         `json:"createdAt"`
	StatusChangedAt time.Time         `json:"statusChangedAt"`
	OrderNotes      string            `json:"orderNotes,omitempty"`
	ItemNotes       string            `json:"itemNotes,omitempty"`
}

// StatusSince returns when the order entered its current status.
func (o Order) StatusSince() time.Time {
	if o.StatusChangedAt.IsZero() {
		return o.CreatedAt
	}
	return o.StatusChangedAt
}

// LineTotal is unit price times quantity.
func (o Order) LineTotal() decimal.Decimal {
	return o.Price.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

// IsPending reports whether the order is effectively pending.
func (o Order) IsPending() bool {
	return o.Status.IsPending()
}

// FromBackend normalizes a backend row: quantity defaults to 1, price is clamped at zero,
// the creator defaults to "Guest" and an empty status becomes pending.
func FromBackend(row backend.Order) Order {
	quantity := row.Quantity
	if quantity < 1 {
		quantity = 1
	}
	price := row.Price
	if price.IsNegative() {
		price = decimal.Zero
	}
	createdBy := strings.TrimSpace(row.CreatedBy)
	if createdBy == "" {
		createdBy = defaultCreatedBy
	}
	status := enums.OrderStatus(strings.ToLower(strings.TrimSpace(row.OrderStatus))).Normalize()

	order := Order{
		ID:            row.OrderID.String(),
		RestaurantID:  row.RestaurantID.String(),
		TableNumber:   strings.TrimSpace(row.TableNumber.String()),
		ProductID:     row.ProductID.String(),
		Quantity:      quantity,
		Price:         price,
		PortionSize:   strings.TrimSpace(row.PortionSize),
		CustomerPhone: strings.TrimSpace(row.CustomerPhone.String()),
		CreatedBy:     createdBy,
		Status:        status,
		CreatedAt:     row.CreatedAt,
		OrderNotes:    row.OrderNotes,
		ItemNotes:     row.ItemNotes,
	}
	if row.StatusChangedAt != nil {
		order.StatusChangedAt = *row.StatusChangedAt
	}
	return order
}

// FromBackendList converts a backend listing in source order.
func FromBackendList(rows []backend.Order) []Order {
	orders := make([]Order, 0, len(rows))
	for _, row := range rows {
		orders = append(orders, FromBackend(row))
	}
	return orders
}

// FilterActive keeps pending, confirmed, preparing and ready orders, preserving order.
func FilterActive(orders []Order) []Order {
	active := make([]Order, 0, len(orders))
	for _, order := range orders {
		if order.Status.IsActive() {
			active = append(active, order)
		}
	}
	return active
}

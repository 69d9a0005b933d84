package backend

import (
	"time"

	"github.com/angelmondragon/kitchenboard/pkg/types"
	"github.com/shopspring/decimal"
)

// Order mirrors an order row as served by the restaurant backend.
type Order struct {
	OrderID         types.FlexString `json:"orderId"`
	RestaurantID    types.FlexString `json:"restaurantId"`
	TableNumber     types.FlexString `json:"tableNumber"`
	ProductID       types.FlexString `json:"productId"`
	Quantity        int              `json:"quantity"`
	Price           decimal.Decimal  `json:"price"`
	PortionSize     string           `json:"portionSize,omitempty"`
	CustomerPhone   types.FlexString `json:"customerPhone,omitempty"`
	CreatedBy       string           `json:"createdBy,omitempty"`
	OrderStatus     string           `json:"orderStatus,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	StatusChangedAt *time.Time       `json:"statusChangedAt,omitempty"`
	OrderNotes      string           `json:"orderNotes,omitempty"`
	ItemNotes       string           `json:"itemNotes,omitempty"`
}

// Restaurant is the subset of restaurant fields used for display names.
type Restaurant struct {
	RestaurantID types.FlexString `json:"restaurantId"`
	Name         string           `json:"name"`
}

// MenuItem is the subset of menu item fields used for display names.
type MenuItem struct {
	ItemID types.FlexString `json:"itemId"`
	Name   string           `json:"name"`
	Price  decimal.Decimal  `json:"price"`
}

type statusUpdateRequest struct {
	OrderStatus     string    `json:"orderStatus"`
	StatusChangedAt time.Time `json:"statusChangedAt"`
}

package board

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/angelmondragon/kitchenboard/internal/settings"
	"github.com/angelmondragon/kitchenboard/pkg/backend"
	"github.com/angelmondragon/kitchenboard/pkg/enums"
	"github.com/angelmondragon/kitchenboard/pkg/types"
	"github.com/shopspring/decimal"
)

var t0 = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func newOrder(id, table, phone string, status enums.OrderStatus, createdAt time.Time) Order {
	return Order{
		ID:            id,
		RestaurantID:  "1",
		TableNumber:   table,
		ProductID:     "p-" + id,
		Quantity:      1,
		Price:         decimal.RequireFromString("10.00"),
		CustomerPhone: phone,
		CreatedBy:     "Guest",
		Status:        status,
		CreatedAt:     createdAt,
	}
}

func backendRow(id, table, phone, status string, createdAt time.Time) backend.Order {
	return backend.Order{
		OrderID:       types.FlexString(id),
		RestaurantID:  "1",
		TableNumber:   types.FlexString(table),
		ProductID:     types.FlexString("p-" + id),
		Quantity:      1,
		Price:         decimal.RequireFromString("10.00"),
		CustomerPhone: types.FlexString(phone),
		OrderStatus:   status,
		CreatedAt:     createdAt,
	}
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(now time.Time) {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

type statusUpdate struct {
	orderID string
	status  enums.OrderStatus
	at      time.Time
}

type fakeBackend struct {
	mu        sync.Mutex
	rows      []backend.Order
	listErr   error
	updateErr error
	listCalls int
	updates   []statusUpdate
}

func (f *fakeBackend) ListOrders(context.Context) ([]backend.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]backend.Order, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeBackend) UpdateOrderStatus(_ context.Context, orderID string, status enums.OrderStatus, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates = append(f.updates, statusUpdate{orderID: orderID, status: status, at: at})
	return nil
}

type fakePrinter struct {
	mu       sync.Mutex
	requests []PrintRequest
	err      error
}

func (f *fakePrinter) Print(_ context.Context, req PrintRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.requests = append(f.requests, req)
	return "ticket-" + req.Group.Key, nil
}

type staticFlags struct {
	flags settings.Flags
}

func (s *staticFlags) Current(context.Context) settings.Flags {
	return s.flags
}

var errBackendDown = errors.New("backend down")

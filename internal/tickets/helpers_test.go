package tickets

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/kitchenboard/internal/board"
	"github.com/angelmondragon/kitchenboard/pkg/config"
	"github.com/angelmondragon/kitchenboard/pkg/db"
	"github.com/angelmondragon/kitchenboard/pkg/db/models"
	"github.com/angelmondragon/kitchenboard/pkg/enums"
	"github.com/angelmondragon/kitchenboard/pkg/logger"
	"github.com/angelmondragon/kitchenboard/pkg/migrate"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

type fakeNames struct{}

func (fakeNames) RestaurantName(id string) string {
	if id == "1" {
		return "Trattoria Uno"
	}
	return "Restaurant #" + id
}

func (fakeNames) ItemName(id string) string {
	switch id {
	case "10":
		return "Margherita"
	case "11":
		return "Tiramisu"
	}
	return "Item #" + id
}

func testGroup() board.Group {
	orders := []board.Order{
		{
			ID: "101", RestaurantID: "1", TableNumber: "5", ProductID: "10", Quantity: 2,
			Price: decimal.RequireFromString("9.50"), PortionSize: "large", CustomerPhone: "555",
			CreatedBy: "Ana", Status: enums.OrderStatusPending, CreatedAt: t0, ItemNotes: "no basil",
		},
		{
			ID: "102", RestaurantID: "1", TableNumber: "5", ProductID: "11", Quantity: 1,
			Price: decimal.RequireFromString("4.25"), CustomerPhone: "555",
			CreatedBy: "Ana", Status: enums.OrderStatusPending, CreatedAt: t0.Add(time.Minute),
		},
	}
	return board.GroupOrders(orders)[0]
}

func testRequest(trigger enums.Trigger, autoStatus bool) board.PrintRequest {
	return board.PrintRequest{
		Group:      testGroup(),
		Trigger:    trigger,
		AutoStatus: autoStatus,
		PrintedAt:  t0.Add(3 * time.Minute),
	}
}

func newTestLogger(buf *bytes.Buffer) *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("info"), Output: buf})
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()
	r, err := NewRenderer(fakeNames{})
	require.NoError(t, err)
	return r
}

func newTestDB(t *testing.T) *db.Client {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := config.DBConfig{
		Driver:       config.DBDriverSQLite,
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		MaxOpenConns: 1,
	}
	client, err := db.New(context.Background(), cfg, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	sqlDB, err := client.DB().DB()
	require.NoError(t, err)
	require.NoError(t, migrate.Run(context.Background(), sqlDB, config.DBDriverSQLite, "up"))
	return client
}

type recordingSink struct {
	sent []string
	err  error
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Send(_ context.Context, ticket *models.PrintTicket) error {
	s.sent = append(s.sent, ticket.ID.String())
	return s.err
}

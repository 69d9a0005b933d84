package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/kitchenboard/internal/board"
	"github.com/angelmondragon/kitchenboard/pkg/enums"
	pkgerrors "github.com/angelmondragon/kitchenboard/pkg/errors"
	"github.com/angelmondragon/kitchenboard/pkg/logger"
)

// Service defines the order management operations outside the kitchen flow.
type Service interface {
	History(ctx context.Context, filters HistoryFilters) (*HistoryList, error)
	SetStatus(ctx context.Context, orderID string, status enums.OrderStatus) (*StatusChange, error)
}

// ServiceParams wires the order management service.
type ServiceParams struct {
	Backend Backend
	Board   BoardRefresher
	Names   Names
	Logger  *logger.Logger
	Now     func() time.Time
}

type service struct {
	backend Backend
	board   BoardRefresher
	names   Names
	logg    *logger.Logger
	now     func() time.Time
}

// NewService validates dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Backend == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "order backend required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &service{
		backend: params.Backend,
		board:   params.Board,
		names:   params.Names,
		logg:    params.Logger,
		now:     now,
	}, nil
}

// History lists every order the backend knows, grouped like the board but most recent first.
func (s *service) History(ctx context.Context, filters HistoryFilters) (*HistoryList, error) {
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", *filters.Status))
	}
	rows, err := s.backend.ListOrders(ctx)
	if err != nil {
		return nil, dependencyError(err, "list orders")
	}

	restaurant := strings.TrimSpace(filters.RestaurantID)
	table := strings.TrimSpace(filters.TableNumber)
	selected := make([]board.Order, 0, len(rows))
	for _, order := range board.FromBackendList(rows) {
		if filters.Status != nil && order.Status != *filters.Status {
			continue
		}
		if restaurant != "" && order.RestaurantID != restaurant {
			continue
		}
		if table != "" && order.TableNumber != table {
			continue
		}
		selected = append(selected, order)
	}

	groups := board.SortGroups(board.GroupOrders(selected), enums.SortDescending)
	list := &HistoryList{Groups: make([]HistoryGroup, 0, len(groups)), TotalOrders: len(selected)}
	for _, group := range groups {
		list.Groups = append(list.Groups, HistoryGroup{
			Group:          group,
			RestaurantName: s.restaurantName(group.RestaurantID),
			OrderCount:     len(group.Orders),
			Subtotal:       group.Subtotal().StringFixed(2),
		})
	}
	return list, nil
}

// SetStatus writes any status to the backend, including the administrative completed and
// cancelled states the kitchen flow never reaches. The board is refreshed afterwards.
func (s *service) SetStatus(ctx context.Context, orderID string, status enums.OrderStatus) (*StatusChange, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", status))
	}

	ctx = s.logg.WithOrderID(ctx, orderID)
	changedAt := s.now().UTC()
	if err := s.backend.UpdateOrderStatus(ctx, orderID, status, changedAt); err != nil {
		return nil, dependencyError(err, "update order status")
	}
	s.logg.Info(s.logg.WithField(ctx, "status", status.String()), "order status set by admin")

	if s.board != nil {
		if err := s.board.Refresh(ctx); err != nil {
			s.logg.Warn(ctx, "board refresh after admin status change failed: "+err.Error())
		}
	}
	return &StatusChange{OrderID: orderID, Status: status, ChangedAt: changedAt}, nil
}

func (s *service) restaurantName(id string) string {
	if s.names == nil {
		return "Restaurant #" + id
	}
	return s.names.RestaurantName(id)
}

func dependencyError(err error, message string) error {
	if typed := pkgerrors.As(err); typed != nil {
		return typed
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}

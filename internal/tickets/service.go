package tickets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/kitchenboard/internal/board"
	"github.com/angelmondragon/kitchenboard/pkg/db"
	"github.com/angelmondragon/kitchenboard/pkg/db/models"
	pkgerrors "github.com/angelmondragon/kitchenboard/pkg/errors"
	"github.com/angelmondragon/kitchenboard/pkg/logger"
	"github.com/angelmondragon/kitchenboard/pkg/pagination"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceParams wires the ticket service.
type ServiceParams struct {
	Repository Repository
	Renderer   *Renderer
	Sinks      []Sink
	Logger     *logger.Logger
	Now        func() time.Time
}

// ListParams configures the ticket history page.
type ListParams struct {
	Limit    int
	Cursor   string
	GroupKey string
}

// ListResult wraps a page of tickets and the cursor for the next page.
type ListResult struct {
	Items  []models.PrintTicket `json:"items"`
	Cursor string               `json:"cursor"`
}

// Service renders, archives and dispatches kitchen tickets. It implements board.Printer.
type Service struct {
	repo     Repository
	renderer *Renderer
	sinks    []Sink
	logg     *logger.Logger
	now      func() time.Time
}

// NewService validates dependencies.
func NewService(params ServiceParams) (*Service, error) {
	if params.Repository == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "tickets repository required")
	}
	if params.Renderer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "ticket renderer required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "logger required")
	}
	now := params.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:     params.Repository,
		renderer: params.Renderer,
		sinks:    params.Sinks,
		logg:     params.Logger,
		now:      now,
	}, nil
}

// Print renders the group ticket, stores it and hands it to every sink.
// Sink failures are logged; render and archive failures are returned.
func (s *Service) Print(ctx context.Context, req board.PrintRequest) (string, error) {
	if len(req.Group.Orders) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "ticket has no orders")
	}
	if !req.Trigger.IsValid() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid print trigger %q", req.Trigger))
	}
	now := s.now().UTC()
	if req.PrintedAt.IsZero() {
		req.PrintedAt = now
	}

	rendered, err := s.renderer.Render(req)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render ticket")
	}

	ticket := &models.PrintTicket{
		ID:            uuid.New(),
		GroupKey:      req.Group.Key,
		RestaurantID:  req.Group.RestaurantID,
		TableNumber:   req.Group.TableNumber,
		CustomerName:  req.Group.CustomerName,
		CustomerPhone: req.Group.CustomerPhone,
		Trigger:       req.Trigger,
		AutoStatus:    req.AutoStatus,
		OrderIDs:      strings.Join(req.Group.OrderIDs(), ","),
		Subtotal:      req.Group.Subtotal(),
		BodyText:      rendered.Text,
		BodyHTML:      rendered.HTML,
		PrintedAt:     req.PrintedAt.UTC(),
		CreatedAt:     now,
	}
	if err := s.repo.Create(ctx, ticket); err != nil {
		if db.IsUniqueViolation(err, "") {
			return "", pkgerrors.Wrap(pkgerrors.CodeConflict, err, "ticket already archived")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "archive ticket")
	}

	ctx = s.logg.WithField(ctx, "ticket_id", ticket.ID.String())
	for _, sink := range s.sinks {
		if err := sink.Send(ctx, ticket); err != nil {
			s.logg.Error(s.logg.WithField(ctx, "sink", sink.Name()), "ticket sink failed", err)
		}
	}
	return ticket.ID.String(), nil
}

// Get loads one archived ticket.
func (s *Service) Get(ctx context.Context, id string) (*models.PrintTicket, error) {
	ticketID, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid ticket id")
	}
	ticket, err := s.repo.Get(ctx, ticketID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ticket not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ticket")
	}
	return ticket, nil
}

// List returns archived tickets, most recent first.
func (s *Service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	query := listTicketsParams{
		Limit:    params.Limit,
		GroupKey: strings.TrimSpace(params.GroupKey),
	}
	if params.Cursor != "" {
		cursor, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
		}
		query.Cursor = cursor
	}

	rows, next, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tickets")
	}

	cursor := ""
	if next != nil {
		cursor = pagination.EncodeCursor(*next)
	}
	if rows == nil {
		rows = []models.PrintTicket{}
	}
	return &ListResult{Items: rows, Cursor: cursor}, nil
}

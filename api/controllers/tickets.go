package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/kitchenboard/api/responses"
	"github.com/angelmondragon/kitchenboard/api/validators"
	"github.com/angelmondragon/kitchenboard/internal/tickets"
	"github.com/angelmondragon/kitchenboard/pkg/db/models"
	"github.com/angelmondragon/kitchenboard/pkg/enums"
	pkgerrors "github.com/angelmondragon/kitchenboard/pkg/errors"
	"github.com/angelmondragon/kitchenboard/pkg/logger"
	"github.com/angelmondragon/kitchenboard/pkg/pagination"
)

// TicketService reads the printed ticket archive.
type TicketService interface {
	Get(ctx context.Context, id string) (*models.PrintTicket, error)
	List(ctx context.Context, params tickets.ListParams) (*tickets.ListResult, error)
}

type ticketSummary struct {
	ID            string          `json:"id"`
	GroupKey      string          `json:"groupKey"`
	TableNumber   string          `json:"tableNumber"`
	CustomerName  string          `json:"customerName"`
	CustomerPhone string          `json:"customerPhone,omitempty"`
	Trigger       enums.Trigger   `json:"trigger"`
	AutoStatus    bool            `json:"autoStatus"`
	OrderIDs      []string        `json:"orderIds"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	PrintedAt     time.Time       `json:"printedAt"`
}

type ticketDetail struct {
	ticketSummary
	Body string `json:"body"`
}

func newTicketSummary(ticket models.PrintTicket) ticketSummary {
	return ticketSummary{
		ID:            ticket.ID.String(),
		GroupKey:      ticket.GroupKey,
		TableNumber:   ticket.TableNumber,
		CustomerName:  ticket.CustomerName,
		CustomerPhone: ticket.CustomerPhone,
		Trigger:       ticket.Trigger,
		AutoStatus:    ticket.AutoStatus,
		OrderIDs:      ticket.OrderIDList(),
		Subtotal:      ticket.Subtotal,
		PrintedAt:     ticket.PrintedAt,
	}
}

// TicketList returns archived tickets, most recent first.
func TicketList(svc TicketService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ticket service unavailable"))
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		result, err := svc.List(r.Context(), tickets.ListParams{
			Limit:    limit,
			Cursor:   validators.QueryString(r, "cursor", 0),
			GroupKey: validators.QueryString(r, "groupKey", validators.MaxGroupKeyLength),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		items := make([]ticketSummary, 0, len(result.Items))
		for _, ticket := range result.Items {
			items = append(items, newTicketSummary(ticket))
		}
		responses.WriteSuccess(w, map[string]any{"items": items, "cursor": result.Cursor})
	}
}

// TicketDetail returns one ticket with its text body.
func TicketDetail(svc TicketService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ticket service unavailable"))
			return
		}
		ticketID, err := validators.PathParam(r, "ticketId", validators.MaxIDLength)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ticket, err := svc.Get(r.Context(), ticketID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, ticketDetail{ticketSummary: newTicketSummary(*ticket), Body: ticket.BodyText})
	}
}

// TicketPrintView serves the printable HTML page of a ticket.
func TicketPrintView(svc TicketService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "ticket service unavailable"))
			return
		}
		ticketID, err := validators.PathParam(r, "ticketId", validators.MaxIDLength)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ticket, err := svc.Get(r.Context(), ticketID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteHTML(w, http.StatusOK, ticket.BodyHTML)
	}
}

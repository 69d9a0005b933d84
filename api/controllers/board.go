package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/kitchenboard/api/responses"
	"github.com/angelmondragon/kitchenboard/api/validators"
	"github.com/angelmondragon/kitchenboard/internal/board"
	"github.com/angelmondragon/kitchenboard/pkg/enums"
	pkgerrors "github.com/angelmondragon/kitchenboard/pkg/errors"
	"github.com/angelmondragon/kitchenboard/pkg/logger"
)

// BoardService is the engine surface the kitchen screen talks to.
type BoardService interface {
	View(ctx context.Context) board.BoardView
	Refresh(ctx context.Context) error
	Advance(ctx context.Context, orderID string, target enums.OrderStatus) (board.Transition, error)
	PrintGroup(ctx context.Context, key string) (string, error)
}

type advanceRequest struct {
	Status string `json:"status" validate:"required,order_status"`
}

// BoardView returns the active groups with their timers.
func BoardView(svc BoardService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "board service unavailable"))
			return
		}
		responses.WriteSuccess(w, svc.View(r.Context()))
	}
}

// BoardRefresh reloads the working set immediately.
func BoardRefresh(svc BoardService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "board service unavailable"))
			return
		}
		if err := svc.Refresh(r.Context()); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, svc.View(r.Context()))
	}
}

// BoardAdvanceOrder moves one order a single step along the kitchen flow.
func BoardAdvanceOrder(svc BoardService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "board service unavailable"))
			return
		}
		orderID, err := validators.PathParam(r, "orderId", validators.MaxIDLength)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body advanceRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		target, err := enums.ParseOrderStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}

		transition, err := svc.Advance(r.Context(), orderID, target)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, transition)
	}
}

// BoardPrintGroup prints a ticket for one group on demand.
func BoardPrintGroup(svc BoardService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "board service unavailable"))
			return
		}
		key, err := validators.PathParam(r, "groupKey", validators.MaxGroupKeyLength)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		ticketID, err := svc.PrintGroup(r.Context(), key)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]string{"ticketId": ticketID, "groupKey": key})
	}
}

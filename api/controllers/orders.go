package controllers

import (
	"net/http"

	"github.com/angelmondragon/kitchenboard/api/responses"
	"github.com/angelmondragon/kitchenboard/api/validators"
	"github.com/angelmondragon/kitchenboard/internal/orders"
	"github.com/angelmondragon/kitchenboard/pkg/enums"
	pkgerrors "github.com/angelmondragon/kitchenboard/pkg/errors"
	"github.com/angelmondragon/kitchenboard/pkg/logger"
)

type setStatusRequest struct {
	Status string `json:"status" validate:"required,order_status"`
}

// OrdersHistory lists every order grouped by table and customer, most recent first.
func OrdersHistory(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		status, err := validators.ParseQueryStatus(r, "status")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filters := orders.HistoryFilters{
			RestaurantID: validators.QueryString(r, "restaurantId", validators.MaxIDLength),
			TableNumber:  validators.QueryString(r, "tableNumber", validators.MaxIDLength),
			Status:       status,
		}

		list, err := svc.History(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// OrderSetStatus applies an administrative status, including completed and cancelled.
func OrderSetStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}
		orderID, err := validators.PathParam(r, "orderId", validators.MaxIDLength)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var body setStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		status, err := enums.ParseOrderStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status"))
			return
		}
		change, err := svc.SetStatus(r.Context(), orderID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, change)
	}
}

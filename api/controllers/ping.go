package controllers

import (
	"net/http"

	"github.com/angelmondragon/kitchenboard/api/middleware"
	"github.com/angelmondragon/kitchenboard/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func PrivatePing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{
			"scope":  "staff",
			"status": "ok",
			"role":   middleware.RoleFromContext(r.Context()),
		}
		if restaurant := middleware.RestaurantIDFromContext(r.Context()); restaurant != "" {
			payload["restaurant_id"] = restaurant
		}
		responses.WriteSuccess(w, payload)
	}
}

package controllers

import (
	"context"
	"net/http"

	"github.com/angelmondragon/kitchenboard/api/responses"
	"github.com/angelmondragon/kitchenboard/api/validators"
	"github.com/angelmondragon/kitchenboard/internal/settings"
	pkgerrors "github.com/angelmondragon/kitchenboard/pkg/errors"
	"github.com/angelmondragon/kitchenboard/pkg/logger"
)

// SettingsService reads and writes the board toggles.
type SettingsService interface {
	Get(ctx context.Context) (settings.Flags, error)
	Update(ctx context.Context, input settings.UpdateInput) (settings.Flags, error)
}

type settingsResponse struct {
	settings.Flags
	EffectiveAutoStatus bool `json:"effectiveAutoStatus"`
}

func newSettingsResponse(flags settings.Flags) settingsResponse {
	return settingsResponse{Flags: flags, EffectiveAutoStatus: flags.EffectiveAutoStatus()}
}

func SettingsGet(svc SettingsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}
		flags, err := svc.Get(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSettingsResponse(flags))
	}
}

func SettingsUpdate(svc SettingsService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "settings service unavailable"))
			return
		}
		var body settings.UpdateInput
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		flags, err := svc.Update(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newSettingsResponse(flags))
	}
}

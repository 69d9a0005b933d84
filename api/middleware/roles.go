package middleware

import (
	"net/http"

	"github.com/angelmondragon/kitchenboard/api/responses"
	"github.com/angelmondragon/kitchenboard/pkg/enums"
	pkgerrors "github.com/angelmondragon/kitchenboard/pkg/errors"
	"github.com/angelmondragon/kitchenboard/pkg/logger"
)

// RequireRole lets the request through only when the actor role passes allow.
func RequireRole(allow func(enums.MemberRole) bool, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := enums.MemberRole(RoleFromContext(r.Context()))
			if !role.IsValid() {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "role missing"))
				return
			}
			if !allow(role) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireBoardOperator admits every staff role except read-only viewers.
func RequireBoardOperator(logg *logger.Logger) func(http.Handler) http.Handler {
	return RequireRole(enums.MemberRole.CanOperateBoard, logg)
}

// RequireOrderManager admits owners, admins and managers.
func RequireOrderManager(logg *logger.Logger) func(http.Handler) http.Handler {
	return RequireRole(enums.MemberRole.CanManageOrders, logg)
}

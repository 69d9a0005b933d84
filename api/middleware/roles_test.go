package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/angelmondragon/kitchenboard/pkg/enums"
)

func TestRequireRoles(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })

	cases := []struct {
		name       string
		middleware func(http.Handler) http.Handler
		role       string
		want       int
	}{
		{"operator kitchen", RequireBoardOperator(nil), "kitchen", http.StatusNoContent},
		{"operator viewer", RequireBoardOperator(nil), "viewer", http.StatusForbidden},
		{"operator missing", RequireBoardOperator(nil), "", http.StatusUnauthorized},
		{"manager manager", RequireOrderManager(nil), "manager", http.StatusNoContent},
		{"manager owner", RequireOrderManager(nil), string(enums.MemberRoleOwner), http.StatusNoContent},
		{"manager waiter", RequireOrderManager(nil), "waiter", http.StatusForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", nil)
			req = req.WithContext(WithRole(req.Context(), tc.role))
			resp := httptest.NewRecorder()
			tc.middleware(ok).ServeHTTP(resp, req)
			if resp.Code != tc.want {
				t.Fatalf("expected %d got %d", tc.want, resp.Code)
			}
		})
	}
}

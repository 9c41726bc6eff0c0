package middleware

import (
	"net/http"

	"github.com/baharkarakas/library-admin/internal/api/httpx"
	"github.com/baharkarakas/library-admin/internal/config"
)

// RBAC enforces a role policy loaded from config.
type RBAC struct {
	policy config.Policy
}

func NewRBAC(p config.Policy) *RBAC { return &RBAC{policy: p} }

// Require allows the request when the caller's role may perform op on resource.
func (a *RBAC) Require(resource, op string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := FromCtx(r.Context())
			if !ok {
				httpx.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
				return
			}
			if !a.policy.Allows(resource, op, u.Role) {
				httpx.WriteError(w, http.StatusForbidden, "forbidden", "insufficient role", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

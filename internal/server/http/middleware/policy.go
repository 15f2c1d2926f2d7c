package middleware

import (
	"encoding/json"
	"net/http"

	"projecttrack/internal/model"
	"projecttrack/internal/policy"
	"projecttrack/pkg/ctxdata"
)

// Require gates a route on the policy table. It runs after the auth
// middleware, so an absent role means a wiring bug and is treated as
// unauthenticated rather than forbidden.
func Require(op policy.Operation) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role, ok := ctxdata.GetPrincipalRole(r.Context())
			if !ok {
				unauthorized(w)
				return
			}
			if !policy.Allowed(model.Role(role), op) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				resp, _ := json.Marshal(map[string]string{"message": "Access denied"})
				w.Write(resp)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

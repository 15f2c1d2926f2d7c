package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"projecttrack/internal/auth"
	"projecttrack/internal/model"
	"projecttrack/pkg/ctxdata"
	"projecttrack/pkg/logging"
)

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	resp, _ := json.Marshal(map[string]string{"message": "missing or invalid token"})
	w.Write(resp)
}

// NewAuthMiddleware verifies the bearer token and stores the principal id
// and role in the request context. No server-side session state.
func NewAuthMiddleware(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			header := r.Header.Get("Authorization")
			if header == "" {
				if logger, ok := logging.GetFromContext(ctx); ok {
					logger.Info(ctx, "no authorization header", zap.String("path", r.URL.Path))
				}
				unauthorized(w)
				return
			}

			tokenString := strings.TrimPrefix(header, "Bearer ")
			claims, err := tokens.Verify(tokenString)
			if err != nil || !model.Role(claims.Role).IsValid() {
				if logger, ok := logging.GetFromContext(ctx); ok {
					logger.Info(ctx, "token rejected", zap.String("path", r.URL.Path))
				}
				unauthorized(w)
				return
			}

			ctx = ctxdata.WithPrincipalID(ctx, claims.UserId)
			ctx = ctxdata.WithPrincipalRole(ctx, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

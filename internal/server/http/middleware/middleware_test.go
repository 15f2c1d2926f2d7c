package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projecttrack/internal/auth"
	"projecttrack/internal/model"
	"projecttrack/internal/policy"
	"projecttrack/internal/server/http/middleware"
	"projecttrack/pkg/ctxdata"
)

func TestAuthMiddleware(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	authMiddleware := middleware.NewAuthMiddleware(tokens)

	var seenID int64
	var seenRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID, _ = ctxdata.GetPrincipalID(r.Context())
		seenRole, _ = ctxdata.GetPrincipalRole(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	t.Run("ValidToken", func(t *testing.T) {
		token, err := tokens.Issue(&model.User{Id: 7, Role: model.RoleStudent})
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		authMiddleware(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, int64(7), seenID)
		assert.Equal(t, "student", seenRole)
	})

	t.Run("MissingHeader", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		authMiddleware(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.JSONEq(t, `{"message":"missing or invalid token"}`, w.Body.String())
	})

	t.Run("GarbageToken", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()

		authMiddleware(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequire(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	gate := middleware.Require(policy.OpGrade)

	t.Run("AllowedRole", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/grade", nil)
		r = r.WithContext(ctxdata.WithPrincipalRole(r.Context(), string(model.RoleTeacher)))
		w := httptest.NewRecorder()

		gate(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("DeniedRole", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/grade", nil)
		r = r.WithContext(ctxdata.WithPrincipalRole(r.Context(), string(model.RoleStudent)))
		w := httptest.NewRecorder()

		gate(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.JSONEq(t, `{"message":"Access denied"}`, w.Body.String())
	})

	t.Run("NoRoleInContext", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/grade", nil)
		w := httptest.NewRecorder()

		gate(next).ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

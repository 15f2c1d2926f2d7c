package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"projecttrack/internal/errdefs"
	"projecttrack/internal/model"
)

// ── helpers ─────────────────────────────────────────────────────────

func withChiParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// ── mapErr ──────────────────────────────────────────────────────────

func TestMapErr(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"Validation", errdefs.ErrValidation, http.StatusBadRequest},
		{"WrappedValidation", fmt.Errorf("title is required: %w", errdefs.ErrValidation), http.StatusBadRequest},
		{"AlreadyExists", errdefs.ErrAlreadyExists, http.StatusBadRequest},
		{"Authentication", errdefs.ErrAuthentication, http.StatusUnauthorized},
		{"PermissionDenied", errdefs.ErrPermissionDenied, http.StatusForbidden},
		{"NotFound", errdefs.ErrNotFound, http.StatusNotFound},
		{"Storage", errdefs.ErrStorage, http.StatusInternalServerError},
		{"UnknownError", errors.New("unknown"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, mapErr(tc.err))
		})
	}
}

// ── writeError ──────────────────────────────────────────────────────

func TestWriteError(t *testing.T) {
	t.Run("ClientErrorKeepsMessage", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		writeError(w, r, fmt.Errorf("title is required: %w", errdefs.ErrValidation))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "title is required: validation error", body["message"])
	})

	t.Run("InternalErrorIsMasked", func(t *testing.T) {
		w := httptest.NewRecorder()
		r := httptest.NewRequest(http.MethodGet, "/", nil)

		writeError(w, r, errors.New("pgx: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "unexpected error", body["message"])
	})
}

// ── messageBody ─────────────────────────────────────────────────────

func TestMessageBody(t *testing.T) {
	body := messageBody("Task added successfully", map[string]any{"task": "task-1"})
	assert.Equal(t, "Task added successfully", body["message"])
	assert.Equal(t, "task-1", body["task"])
}

// ── parsePathParam ──────────────────────────────────────────────────

func TestParsePathParam(t *testing.T) {
	t.Run("Present", func(t *testing.T) {
		r := withChiParam(httptest.NewRequest(http.MethodGet, "/projects/project-1", nil), "id", "project-1")

		val, err := parsePathParam(r, "id")
		require.NoError(t, err)
		assert.Equal(t, "project-1", val)
	})

	t.Run("Missing", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/projects/", nil)

		_, err := parsePathParam(r, "id")
		assert.ErrorIs(t, err, errdefs.ErrValidation)
	})
}

// ── parsePageRequest ────────────────────────────────────────────────

func TestParsePageRequest(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/projects", nil)

		req := parsePageRequest(r, 5)
		assert.Equal(t, model.PageRequest{Page: 1, PageSize: 5}, req)
	})

	t.Run("Explicit", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/projects?page=3&limit=10&search=compilers", nil)

		req := parsePageRequest(r, 5)
		assert.Equal(t, model.PageRequest{Page: 3, PageSize: 10, Search: "compilers"}, req)
	})

	t.Run("GarbageIgnored", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/projects?page=zero&limit=-1", nil)

		req := parsePageRequest(r, 5)
		assert.Equal(t, 1, req.Page)
		assert.Equal(t, 5, req.PageSize)
	})
}

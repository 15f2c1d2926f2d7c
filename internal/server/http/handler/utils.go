package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"projecttrack/internal/errdefs"
	"projecttrack/internal/model"
	"projecttrack/pkg/logging"
)

// mapErr translates the error taxonomy to HTTP statuses. Duplicate email
// is a 400, not a 409.
func mapErr(err error) int {
	switch {
	case errors.Is(err, errdefs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errdefs.ErrAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, errdefs.ErrAuthentication):
		return http.StatusUnauthorized
	case errors.Is(err, errdefs.ErrPermissionDenied):
		return http.StatusForbidden
	case errors.Is(err, errdefs.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	data, err := json.Marshal(body)
	if err != nil {
		return
	}
	w.Write(data)
}

// message bodies are shaped {message, ...payload}.
func messageBody(message string, payload map[string]any) map[string]any {
	body := map[string]any{"message": message}
	for k, v := range payload {
		body[k] = v
	}
	return body
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	statusCode := mapErr(err)
	message := err.Error()
	if statusCode == http.StatusInternalServerError {
		if logger, ok := logging.GetFromContext(r.Context()); ok {
			logger.Error(r.Context(), "request failed",
				zap.String("path", r.URL.Path),
				zap.Error(err),
			)
		}
		message = "unexpected error"
	}
	writeJSON(w, statusCode, map[string]string{"message": message})
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", errdefs.ErrValidation)
	}
	return nil
}

func writePage[T any](w http.ResponseWriter, key string, page *model.Page[T]) {
	writeJSON(w, http.StatusOK, map[string]any{
		key:          page.Items,
		"total":      page.Total,
		"page":       page.Page,
		"limit":      page.PageSize,
		"totalPages": page.TotalPages,
	})
}

func parsePathParam(r *http.Request, key string) (string, error) {
	val := chi.URLParam(r, key)
	if val == "" {
		return "", fmt.Errorf("missing path param %s: %w", key, errdefs.ErrValidation)
	}
	return val, nil
}

func errInvalidID(raw string) error {
	return fmt.Errorf("invalid id %q: %w", raw, errdefs.ErrValidation)
}

func parsePageRequest(r *http.Request, defaultSize int) model.PageRequest {
	q := r.URL.Query()
	req := model.PageRequest{Search: q.Get("search")}
	if page, err := strconv.Atoi(q.Get("page")); err == nil {
		req.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil {
		req.PageSize = limit
	}
	return req.Normalize(defaultSize)
}

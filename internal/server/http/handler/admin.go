package handler

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"projecttrack/internal/model"
	"projecttrack/internal/policy"
	"projecttrack/internal/server/http/middleware"
	"projecttrack/internal/service"
)

type AdminHandler struct {
	users    *service.UserService
	activity *service.ActivityService
}

func NewAdminHandler(users *service.UserService, activity *service.ActivityService) *AdminHandler {
	return &AdminHandler{users: users, activity: activity}
}

func (h *AdminHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.With(middleware.Require(policy.OpListUsers)).Get("/users", h.ListUsers)
		r.With(middleware.Require(policy.OpCreateUser)).Post("/users", h.CreateUser)
		r.With(middleware.Require(policy.OpDeleteUser)).Delete("/users/{id}", h.DeleteUser)
		r.With(middleware.Require(policy.OpListLogs)).Get("/logs", h.ListLogs)
	})
}

func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody("Users fetched", map[string]any{"users": users}))
}

func (h *AdminHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	user, err := h.users.Register(r.Context(), &model.CreateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		RoleName: req.Role,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageBody("User created successfully", map[string]any{"user": user}))
}

func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	raw, err := parsePathParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		writeError(w, r, errInvalidID(raw))
		return
	}

	if err := h.users.DeleteUser(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, messageBody("User deleted successfully", nil))
}

func (h *AdminHandler) ListLogs(w http.ResponseWriter, r *http.Request) {
	page, err := h.activity.ListLogs(r.Context(), parsePageRequest(r, 10))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody("Logs fetched", map[string]any{
		"logs":       page.Items,
		"total":      page.Total,
		"page":       page.Page,
		"limit":      page.PageSize,
		"totalPages": page.TotalPages,
	}))
}

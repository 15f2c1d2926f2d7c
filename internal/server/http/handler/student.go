package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"projecttrack/internal/model"
	"projecttrack/internal/policy"
	"projecttrack/internal/server/http/middleware"
	"projecttrack/internal/service"
)

type StudentHandler struct {
	projects    *service.ProjectService
	submissions *service.SubmissionService
}

func NewStudentHandler(projects *service.ProjectService, submissions *service.SubmissionService) *StudentHandler {
	return &StudentHandler{projects: projects, submissions: submissions}
}

func (h *StudentHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.With(middleware.Require(policy.OpListAssigned)).Get("/projects", h.ListProjects)
		r.With(middleware.Require(policy.OpSubmit)).Post("/submit", h.Submit)
	})
}

func (h *StudentHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	page, err := h.projects.ListAssigned(r.Context(), parsePageRequest(r, 5))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, "projects", page)
}

func (h *StudentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TaskId     string `json:"task_id"`
		Content    string `json:"content"`
		FileHandle string `json:"file_handle"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.submissions.Submit(r.Context(), &model.SubmitInput{
		TaskId:     req.TaskId,
		Content:    req.Content,
		FileHandle: req.FileHandle,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody("Submission saved", map[string]any{"task": task}))
}

package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"projecttrack/internal/model"
	"projecttrack/internal/policy"
	"projecttrack/internal/server/http/middleware"
	"projecttrack/internal/service"
)

type TeacherHandler struct {
	projects    *service.ProjectService
	submissions *service.SubmissionService
}

func NewTeacherHandler(projects *service.ProjectService, submissions *service.SubmissionService) *TeacherHandler {
	return &TeacherHandler{projects: projects, submissions: submissions}
}

func (h *TeacherHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.With(middleware.Require(policy.OpCreateProject)).Post("/projects", h.CreateProject)
		r.With(middleware.Require(policy.OpListOwned)).Get("/projects", h.ListProjects)
		r.With(middleware.Require(policy.OpEditProject)).Put("/projects/{id}", h.EditProject)
		r.With(middleware.Require(policy.OpDeleteProject)).Delete("/projects/{id}", h.DeleteProject)
		r.With(middleware.Require(policy.OpAddTask)).Post("/tasks", h.AddTask)
		r.With(middleware.Require(policy.OpGetTask)).Get("/tasks/{id}", h.GetTask)
		r.With(middleware.Require(policy.OpEditTask)).Put("/tasks/{id}", h.EditTask)
		r.With(middleware.Require(policy.OpDeleteTask)).Delete("/tasks/{id}", h.DeleteTask)
		r.With(middleware.Require(policy.OpGrade)).Put("/grade", h.Grade)
	})
}

func (h *TeacherHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Title       string  `json:"title"`
		Description string  `json:"description"`
		Students    []int64 `json:"students"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	project, err := h.projects.CreateProject(r.Context(), &model.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
		StudentIds:  req.Students,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageBody("Project created successfully", map[string]any{"project": project}))
}

func (h *TeacherHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	page, err := h.projects.ListOwned(r.Context(), parsePageRequest(r, 5))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writePage(w, "projects", page)
}

func (h *TeacherHandler) EditProject(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	project, err := h.projects.EditProject(r.Context(), id, &model.EditInput{Title: req.Title, Description: req.Description})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody("Project updated successfully", map[string]any{"project": project}))
}

func (h *TeacherHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	project, err := h.projects.DeleteProject(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody("Project deleted (soft)", map[string]any{"project": project}))
}

func (h *TeacherHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ProjectId   string `json:"project_id"`
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.projects.AddTask(r.Context(), &model.AddTaskInput{
		ProjectId:   req.ProjectId,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, messageBody("Task added successfully", map[string]any{"task": task}))
}

func (h *TeacherHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.projects.GetTask(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody("Task fetched", map[string]any{"task": task}))
}

func (h *TeacherHandler) EditTask(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.projects.EditTask(r.Context(), id, &model.EditInput{Title: req.Title, Description: req.Description})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody("Task updated successfully", map[string]any{"task": task}))
}

func (h *TeacherHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.projects.DeleteTask(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody("Task deleted (soft)", map[string]any{"task": task}))
}

func (h *TeacherHandler) Grade(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TaskId    string `json:"task_id"`
		StudentId int64  `json:"student_id"`
		Grade     string `json:"grade"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	task, err := h.submissions.Grade(r.Context(), &model.GradeInput{
		TaskId:    req.TaskId,
		StudentId: req.StudentId,
		Grade:     req.Grade,
	})
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageBody("Submission graded successfully", map[string]any{"task": task}))
}

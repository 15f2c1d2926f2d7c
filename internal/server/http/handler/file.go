package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"projecttrack/internal/errdefs"
	"projecttrack/internal/policy"
	"projecttrack/internal/server/http/middleware"
	"projecttrack/internal/service"
	"projecttrack/pkg/ctxdata"
	"projecttrack/pkg/logging"
)

const maxUploadBytes = 10 << 20

type FileHandler struct {
	files *service.FileService
}

func NewFileHandler(files *service.FileService) *FileHandler {
	return &FileHandler{files: files}
}

func (h *FileHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.With(middleware.Require(policy.OpUploadFile)).Post("/", h.Upload)
		r.With(middleware.Require(policy.OpDownloadFile)).Get("/{id}", h.Download)
	})
}

func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	uploadedBy, ok := ctxdata.GetPrincipalID(r.Context())
	if !ok {
		writeError(w, r, errdefs.ErrAuthentication)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, r, fmt.Errorf("invalid multipart body: %w", errdefs.ErrValidation))
		return
	}

	part, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, r, fmt.Errorf("missing file part: %w", errdefs.ErrValidation))
		return
	}
	defer part.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	handle, err := h.files.Store(r.Context(), part, header.Filename, contentType, uploadedBy)
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, messageBody("File uploaded successfully", map[string]any{"file_handle": handle}))
}

func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, err := parsePathParam(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	body, file, err := h.files.Retrieve(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, body); err != nil {
		if logger, ok := logging.GetFromContext(r.Context()); ok {
			logger.Warn(r.Context(), "file stream interrupted", zap.Error(err))
		}
	}
}

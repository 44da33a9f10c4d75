package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"progress-tracker/internal/api"
	"progress-tracker/internal/difficulty"
	"progress-tracker/internal/errors"
	"progress-tracker/internal/validation"
)

// Handler serves the project and task endpoints.
type Handler struct {
	api    api.API
	logger *zap.Logger
	locale language.Tag
}

// NewHandler creates a handler. locale is used when a request carries no
// usable Accept-Language header.
func NewHandler(a api.API, logger *zap.Logger, locale language.Tag) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{api: a, logger: logger, locale: locale}
}

type createProjectRequest struct {
	Name string `json:"name"`
}

type createTaskRequest struct {
	Title      string          `json:"title"`
	Difficulty difficulty.Tier `json:"difficulty"`
	ProjectID  int64           `json:"project_id"`
}

// ListProjects handles GET /projects
func (h *Handler) ListProjects(c *gin.Context) {
	page, err := queryInt(c, "page")
	if err != nil {
		h.fail(c, err)
		return
	}
	perPage, err := queryInt(c, "per_page")
	if err != nil {
		h.fail(c, err)
		return
	}

	result, err := h.api.ListProjects(c.Request.Context(), page, perPage)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newProjectPageResponse(result))
}

// CreateProject handles POST /projects
func (h *Handler) CreateProject(c *gin.Context) {
	var req createProjectRequest
	if !h.bind(c, &req) {
		return
	}

	project, err := h.api.CreateProject(c.Request.Context(), req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, newProjectResponse(*project))
}

// GetProject handles GET /projects/:id
func (h *Handler) GetProject(c *gin.Context) {
	id, ok := h.pathID(c, "project")
	if !ok {
		return
	}

	detail, err := h.api.GetProject(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newProjectDetailResponse(detail, requestLocale(c.Request, h.locale)))
}

// CreateTask handles POST /tasks
func (h *Handler) CreateTask(c *gin.Context) {
	var req createTaskRequest
	if !h.bind(c, &req) {
		return
	}

	task, err := h.api.CreateTask(c.Request.Context(), req.ProjectID, req.Title, req.Difficulty)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, newTaskResponse(*task, requestLocale(c.Request, h.locale)))
}

// ToggleTask handles PATCH /tasks/:id/toggle
func (h *Handler) ToggleTask(c *gin.Context) {
	id, ok := h.pathID(c, "task")
	if !ok {
		return
	}

	task, err := h.api.ToggleTask(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, newTaskResponse(*task, requestLocale(c.Request, h.locale)))
}

// DeleteTask handles DELETE /tasks/:id
func (h *Handler) DeleteTask(c *gin.Context) {
	id, ok := h.pathID(c, "task")
	if !ok {
		return
	}

	if err := h.api.DeleteTask(c.Request.Context(), id); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Difficulties handles GET /difficulties
func (h *Handler) Difficulties(c *gin.Context) {
	c.JSON(http.StatusOK, h.api.Difficulties(requestLocale(c.Request, h.locale)))
}

func (h *Handler) bind(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		h.logger.Warn("Rejected malformed request body",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, errorResponse{Error: "request body must be valid JSON", Code: "INVALID_JSON"})
		return false
	}
	return true
}

// pathID parses the :id parameter. A malformed id names no resource, so
// it is reported as not found.
func (h *Handler) pathID(c *gin.Context, resource string) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.fail(c, errors.NewNotFoundError(resource, raw))
		return 0, false
	}
	return id, true
}

func queryInt(c *gin.Context, key string) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, errors.NewInvalidInputError(key, raw, "must be a positive integer")
	}
	return n, nil
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	logFields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", status),
		zap.Error(err),
	}
	appErr, isApp := errors.AsAppError(err)
	if isApp {
		logFields = append(logFields, appErr.LogFields()...)
	}
	if errors.ShouldLogError(err) {
		h.logger.Error("Request failed", logFields...)
	} else {
		h.logger.Debug("Request rejected", logFields...)
	}

	body := errorResponse{
		Error: errors.GetUserMessage(err),
		Code:  errors.GetErrorCode(err),
	}
	if ve, ok := validation.AsValidationError(err); ok {
		body.Fields = ve.Fields()
	} else if isApp && appErr.IsType(errors.ErrorTypeInvalidInput) {
		if field := appErr.ContextString("field"); field != "" {
			body.Fields = map[string]string{field: appErr.ContextString("reason")}
		}
	}
	c.JSON(status, body)
}

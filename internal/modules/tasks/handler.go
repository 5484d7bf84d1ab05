package tasks

import (
	"strconv"

	"github.com/axis-labs/axis-backend/internal/models"
	"github.com/axis-labs/axis-backend/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type taskListResponse struct {
	Tasks []models.TaskModel `json:"tasks"`
}

type Handler struct {
	store  Store
	logger *zap.Logger
}

func NewHandler(store Store, logger *zap.Logger) *Handler {
	return &Handler{store: store, logger: logger}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/tasks")
	g.GET("", h.listTasks)
	g.GET("/:id", h.getTask)

	// Legacy route kept for the task-detail page: same contract, query param.
	rg.GET("/taskdetail", h.getTaskByQuery)
}

// GET /tasks
func (h *Handler) listTasks(c *gin.Context) {
	tasks, err := h.store.ListTasks(c.Request.Context())
	if err != nil {
		h.logger.Error("list tasks failed", zap.Error(err))
		response.InternalError(c, "Failed to list tasks")
		return
	}
	if tasks == nil {
		tasks = []models.TaskModel{}
	}
	h.logger.Info("listing tasks", zap.Int("count", len(tasks)))
	response.OK(c, taskListResponse{Tasks: tasks})
}

// GET /tasks/:id
func (h *Handler) getTask(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "task id must be an integer")
		return
	}
	h.renderTask(c, id)
}

// GET /taskdetail?id=
func (h *Handler) getTaskByQuery(c *gin.Context) {
	id, err := strconv.Atoi(c.Query("id"))
	if err != nil {
		response.BadRequest(c, "task id must be an integer")
		return
	}
	h.renderTask(c, id)
}

func (h *Handler) renderTask(c *gin.Context, id int) {
	task, err := h.store.GetTask(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("get task failed", zap.Int("id", id), zap.Error(err))
		response.InternalError(c, "Failed to load task")
		return
	}
	if task == nil {
		h.logger.Warn("task not found", zap.Int("id", id))
		response.NotFound(c, "Task not found")
		return
	}
	response.OK(c, task)
}

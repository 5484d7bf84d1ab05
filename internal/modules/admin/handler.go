package admin

import (
	"context"

	"github.com/axis-labs/axis-backend/internal/models"
	"github.com/axis-labs/axis-backend/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const overviewLimit = 20

// Store is the read-only data access for the admin dashboard.
type Store interface {
	ListRecentUsers(ctx context.Context, limit int) ([]models.UserModel, error)
	ListTasks(ctx context.Context, limit int) ([]models.TaskModel, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store { return &gormStore{db: db} }

func (s *gormStore) ListRecentUsers(ctx context.Context, limit int) ([]models.UserModel, error) {
	var users []models.UserModel
	err := s.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&users).Error
	return users, err
}

func (s *gormStore) ListTasks(ctx context.Context, limit int) ([]models.TaskModel, error) {
	var tasks []models.TaskModel
	err := s.db.WithContext(ctx).Order("id ASC").Limit(limit).Find(&tasks).Error
	return tasks, err
}

type overviewResponse struct {
	Users []models.UserModel `json:"users"`
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
	rg.GET("/admin/database-overview", h.databaseOverview)
}

// GET /admin/database-overview
func (h *Handler) databaseOverview(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.store.ListRecentUsers(ctx, overviewLimit)
	if err != nil {
		h.logger.Error("admin overview users query failed", zap.Error(err))
		response.InternalError(c, "Failed to load database overview")
		return
	}
	tasks, err := h.store.ListTasks(ctx, overviewLimit)
	if err != nil {
		h.logger.Error("admin overview tasks query failed", zap.Error(err))
		response.InternalError(c, "Failed to load database overview")
		return
	}

	if users == nil {
		users = []models.UserModel{}
	}
	if tasks == nil {
		tasks = []models.TaskModel{}
	}

	h.logger.Info("admin database overview requested",
		zap.Int("users", len(users)),
		zap.Int("tasks", len(tasks)),
	)
	response.OK(c, overviewResponse{Users: users, Tasks: tasks})
}

package tasks

import (
	"context"
	"errors"

	"github.com/axis-labs/axis-backend/internal/models"
	"gorm.io/gorm"
)

// Store is the read-only data access used by the task catalog.
type Store interface {
	ListTasks(ctx context.Context) ([]models.TaskModel, error)
	GetTask(ctx context.Context, id int) (*models.TaskModel, error)
}

type gormStore struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) Store { return &gormStore{db: db} }

func (s *gormStore) ListTasks(ctx context.Context) ([]models.TaskModel, error) {
	var tasks []models.TaskModel
	err := s.db.WithContext(ctx).Order("id ASC").Find(&tasks).Error
	return tasks, err
}

// GetTask returns (nil, nil) when the task does not exist.
func (s *gormStore) GetTask(ctx context.Context, id int) (*models.TaskModel, error) {
	var task models.TaskModel
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

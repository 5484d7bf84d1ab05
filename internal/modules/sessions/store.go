package sessions

import (
	"context"
	"errors"
	"time"

	"github.com/axis-labs/axis-backend/internal/models"
	"gorm.io/gorm"
)

// Store is the data-access collaborator for the exchange flow. All mutations
// issued inside Transaction commit or roll back as one unit.
type Store interface {
	Transaction(ctx context.Context, fn func(tx Store) error) error
	GetUser(ctx context.Context, id string) (*models.UserModel, error)
	CreateUser(ctx context.Context, user *models.UserModel) error
	TouchUser(ctx context.Context, id string, now time.Time) error
	DeleteSessionsByPrivyID(ctx context.Context, privySessionID string) error
	CreateSession(ctx context.Context, session *models.SessionModel) error
}

type gormStore struct {
	db *gorm.DB
}

// NewStore wraps a gorm connection as a Store.
func NewStore(db *gorm.DB) Store { return &gormStore{db: db} }

func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// GetUser returns (nil, nil) when the user does not exist.
func (s *gormStore) GetUser(ctx context.Context, id string) (*models.UserModel, error) {
	var u models.UserModel
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (s *gormStore) CreateUser(ctx context.Context, user *models.UserModel) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *gormStore) TouchUser(ctx context.Context, id string, now time.Time) error {
	return s.db.WithContext(ctx).Model(&models.UserModel{}).
		Where("id = ?", id).
		Update("updated_at", now).Error
}

// DeleteSessionsByPrivyID is idempotent cleanup: matching zero rows is not an
// error.
func (s *gormStore) DeleteSessionsByPrivyID(ctx context.Context, privySessionID string) error {
	return s.db.WithContext(ctx).
		Where("privy_session_id = ?", privySessionID).
		Delete(&models.SessionModel{}).Error
}

func (s *gormStore) CreateSession(ctx context.Context, session *models.SessionModel) error {
	return s.db.WithContext(ctx).Create(session).Error
}

// Package session holds the lifecycle rules for backend sessions minted by
// the Privy exchange.
package session

import (
	"errors"
	"time"

	"github.com/axis-labs/axis-backend/internal/models"
	"gorm.io/gorm"
)

const (
	// CookieName is the session cookie issued on exchange.
	CookieName = "axis_session"

	// DefaultTTL is the fixed session lifetime.
	DefaultTTL = 24 * time.Hour
)

// Resolve loads a session row by its local id. Returns (nil, nil) when the
// row does not exist, which consumers must treat as an invalid session.
func Resolve(db *gorm.DB, sessionID string) (*models.SessionModel, error) {
	if sessionID == "" {
		return nil, nil
	}
	var s models.SessionModel
	if err := db.Where("id = ?", sessionID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

// Touch bumps updated_at on a still-active session. Best effort.
func Touch(db *gorm.DB, sessionID string) {
	if sessionID == "" {
		return
	}
	now := time.Now()
	_ = db.Model(&models.SessionModel{}).
		Where("id = ? AND revoked_at IS NULL AND expires_at > ?", sessionID, now).
		Update("updated_at", now).Error
}

// PurgeStale deletes sessions that expired or were revoked before the
// retention cutoff. Returns the number of rows removed.
func PurgeStale(db *gorm.DB, retention time.Duration) (int64, error) {
	cutoff := time.Now().Add(-retention)
	res := db.Where("expires_at < ? OR (revoked_at IS NOT NULL AND revoked_at < ?)", cutoff, cutoff).
		Delete(&models.SessionModel{})
	return res.RowsAffected, res.Error
}

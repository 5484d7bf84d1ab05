package models

import "time"

// SessionModel is one backend-recognized login session bound to exactly one
// Privy session. The unique index on PrivySessionID is what serializes
// concurrent exchanges for the same provider session across instances.
type SessionModel struct {
	Base
	UserID         string     `json:"user_id"          gorm:"type:varchar(64);index;not null"`
	PrivySessionID string     `json:"privy_session_id" gorm:"type:varchar(128);uniqueIndex;not null"`
	ExpiresAt      time.Time  `json:"expires_at"       gorm:"index;not null"`
	RevokedAt      *time.Time `json:"revoked_at"       gorm:"index"`
}

func (SessionModel) TableName() string { return "sessions" }

// Active reports whether the session is usable at the given instant.
// A revoked session is invalid regardless of its expiry.
func (s *SessionModel) Active(now time.Time) bool {
	if s.RevokedAt != nil {
		return false
	}
	return now.Before(s.ExpiresAt)
}

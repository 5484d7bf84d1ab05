package models

import "time"

// UserModel represents a platform user keyed by the Privy-issued DID.
// Privy supplies globally unique, stable user IDs, so they are stored as the
// primary key and never rewritten once created.
type UserModel struct {
	ID                   string         `json:"id"                     gorm:"type:varchar(64);primaryKey"`
	Email                *string        `json:"email"                  gorm:"type:varchar(255)"`
	DefaultWalletAddress *string        `json:"default_wallet_address" gorm:"type:varchar(128)"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	Sessions             []SessionModel `json:"sessions,omitempty"     gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (UserModel) TableName() string { return "users" }

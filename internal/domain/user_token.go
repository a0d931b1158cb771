package domain

import (
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// UserToken struct - messaging token registered for a user
type UserToken struct {
	ID        uint       `gorm:"primaryKey" json:"-"`
	UserID    string     `gorm:"type:varchar(64);not null;uniqueIndex:idx_user_tokens_user_token" json:"user_id"`
	FCMToken  string     `gorm:"type:text;not null;uniqueIndex:idx_user_tokens_user_token" json:"fcm_token"`
	UpdatedAt *time.Time `gorm:"type:timestamp" json:"updated_at,omitempty"`
}

// TableName func
func (t *UserToken) TableName() string {
	return "user_tokens"
}

// NewUserToken stamps a token binding with the current UTC time
func NewUserToken(userID, token string) UserToken {
	now := time.Now().UTC()
	return UserToken{
		UserID:    userID,
		FCMToken:  token,
		UpdatedAt: &now,
	}
}

// MigrateDatabase func - Auto-migrate database schema
func MigrateDatabase(db *gorm.DB) error {
	if db == nil {
		return ErrTokenStore
	}

	logrus.Info("Migrate database ...")
	return db.AutoMigrate(&UserToken{})
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"nativebridge/internal/domain"
	"nativebridge/internal/ports/output"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Compile-time check to ensure TokenRepository implements TokenStore interface
var _ output.TokenStore = (*TokenRepository)(nil)

// TokenRepository struct - Secondary/Driven adapter for PostgreSQL
type TokenRepository struct {
	dbGorm *gorm.DB
}

// NewTokenRepository func - Creates new PostgreSQL repository and migrates user_tokens
func NewTokenRepository(dbGorm *gorm.DB) (*TokenRepository, error) {
	if err := domain.MigrateDatabase(dbGorm); err != nil {
		logrus.Errorln(err)
		return nil, fmt.Errorf("failed to migrate user_tokens: %w", err)
	}
	return &TokenRepository{
		dbGorm: dbGorm,
	}, nil
}

// SaveToken func - Inserts the binding or refreshes updated_at when it exists
func (p *TokenRepository) SaveToken(ctx context.Context, token domain.UserToken) error {
	if token.UpdatedAt == nil {
		now := time.Now().UTC()
		token.UpdatedAt = &now
	}

	tx := p.dbGorm.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "fcm_token"}},
		DoUpdates: clause.AssignmentColumns([]string{"updated_at"}),
	}).Create(&token)
	if tx.Error != nil {
		logrus.Errorln(tx.Error)
		return fmt.Errorf("%w: %v", domain.ErrTokenStore, tx.Error)
	}
	logrus.Infof("Token saved for user %s, rows affected: %d", token.UserID, tx.RowsAffected)
	return nil
}

// ListTokens func - Retrieves every token of a user, newest first
func (p *TokenRepository) ListTokens(ctx context.Context, userID string) ([]domain.UserToken, error) {
	var tokens []domain.UserToken
	tx := p.dbGorm.WithContext(ctx).
		Where(map[string]interface{}{"user_id": userID}).
		Order("updated_at DESC").
		Find(&tokens)
	if tx.Error != nil {
		logrus.Errorln(tx.Error)
		return nil, fmt.Errorf("%w: %v", domain.ErrTokenStore, tx.Error)
	}
	if tokens == nil {
		tokens = make([]domain.UserToken, 0)
	}
	return tokens, nil
}

// Ping func - Checks the database connection
func (p *TokenRepository) Ping(ctx context.Context) error {
	sqlDB, err := p.dbGorm.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Message model.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inboxd/go-inbox-backend/internal/domain"
)

// CreateMessage inserts a new message row into userID's inbox.
func CreateMessage(ctx context.Context, db *gorm.DB, userID, content string) (*domain.Message, error) {
	m := &domain.Message{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// CountMessages returns the number of messages in userID's inbox.
func CountMessages(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Raw("SELECT COUNT(*) FROM messages WHERE user_id = ?", userID).
		Scan(&total).Error
	return total, err
}

// ListMessagesPage returns a paginated slice of userID's inbox ordered
// deterministically, newest first (CreatedAt DESC, ID DESC).
func ListMessagesPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.Message, error) {
	var out []domain.Message
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// DeleteMessage removes messageID from userID's inbox with a single
// conditional DELETE. The owner id is part of the predicate, so a message id
// belonging to another user is never touched even if guessed correctly, and
// two concurrent deletions of the same id race safely: at most one observes
// an affected row.
//
// The boolean result reports whether a row was removed; false covers both
// "never existed" and "already deleted".
func DeleteMessage(ctx context.Context, db *gorm.DB, userID, messageID string) (bool, error) {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", messageID, userID).
		Delete(&domain.Message{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

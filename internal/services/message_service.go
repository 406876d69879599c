// Package services – MessageService
//
// This file implements MessageService, the application-level component that
// owns the inbox: inbound delivery of anonymous messages, paginated listing,
// and ownership-scoped deletion. Deletion is the security-sensitive path: the
// repository issues a single conditional DELETE whose predicate includes the
// owner id, so no read-then-write pair exists to race and no cross-user
// removal is possible.
package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/inboxd/go-inbox-backend/internal/domain"
	"github.com/inboxd/go-inbox-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// MessageService coordinates inbox persistence.
type MessageService struct {
	DB *gorm.DB

	// MaxContentRunes caps inbound message length; zero disables the cap.
	MaxContentRunes int
}

// Deliver appends an anonymous message to the inbox of the user named by
// recipientUsername.
//
// Semantics:
//   - content is trimmed; empty → ErrEmptyContent, over the configured cap →
//     ErrContentTooLong.
//   - Unknown recipient → ErrRecipientNotFound.
//   - Delivery consults the recipient's live accepting_messages flag (the
//     sender holds no token); disabled → ErrNotAcceptingMessages.
func (s *MessageService) Deliver(ctx context.Context, recipientUsername, content string) (*domain.Message, error) {
	tr := otel.Tracer("services/MessageService")
	ctx, span := tr.Start(ctx, "Deliver",
		trace.WithAttributes(attribute.String("recipient.username", recipientUsername)),
	)
	defer span.End()

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if s.MaxContentRunes > 0 && utf8.RuneCountInString(content) > s.MaxContentRunes {
		return nil, ErrContentTooLong
	}

	u, err := repo.GetUserByUsername(ctx, s.DB, recipientUsername)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, err
	}
	if !u.AcceptingMessages {
		return nil, ErrNotAcceptingMessages
	}

	return repo.CreateMessage(ctx, s.DB, u.ID, content)
}

// ListPage returns a page of userID's inbox, newest first, and the total count.
func (s *MessageService) ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.Message, int64, error) {
	tr := otel.Tracer("services/MessageService")
	ctx, span := tr.Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := (page - 1) * pageSize

	total, err := repo.CountMessages(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Message{}, 0, nil
	}

	items, err := repo.ListMessagesPage(ctx, s.DB, userID, offset, pageSize)
	return items, total, err
}

// Delete removes messageID from userID's inbox.
//
// The removal is a single atomic conditional update scoped to the owner, so
// the operation is idempotent in effect: the first call for an existing id
// succeeds, every subsequent call (and any call for an id outside this user's
// inbox) returns ErrMessageNotFound. Concurrent deletes of the same id race
// safely; at most one succeeds.
func (s *MessageService) Delete(ctx context.Context, userID, messageID string) error {
	tr := otel.Tracer("services/MessageService")
	ctx, span := tr.Start(ctx, "Delete",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("message.id", messageID),
		),
	)
	defer span.End()

	deleted, err := repo.DeleteMessage(ctx, s.DB, userID, messageID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrMessageNotFound
	}
	return nil
}

// Inbox HTTP handlers.
//
// This file exposes the REST endpoints for inbox messages:
//   - POST   /u/{username}/messages  (anonymous inbound delivery, no session)
//   - GET    /messages               (list own inbox, paginated)
//   - DELETE /messages/{id}          (ownership-scoped delete)
//
// Deletion is the security-sensitive path: the id in the URL is only ever
// applied to the session identity's own collection, so a guessed id belonging
// to another user always reads as "not found". A missing or malformed id is a
// caller error (400), never an authentication error.
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/inboxd/go-inbox-backend/internal/domain"
	"github.com/inboxd/go-inbox-backend/internal/services"
	"github.com/inboxd/go-inbox-backend/internal/utils"
)

//
// DTOs
//

// SendMessageRequest is the JSON payload for anonymous inbound delivery.
type SendMessageRequest struct {
	// Content is the message body. It must be non-empty.
	Content string `json:"content" binding:"required,min=1" example:"you give great talks"`
}

// SendMessageResponse is the JSON envelope for a delivered message.
type SendMessageResponse struct {
	Success bool            `json:"success" example:"true"`
	Message *domain.Message `json:"message"`
}

// Pagination carries pagination metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
}

// ListMessagesResponse contains a page of inbox messages and pagination metadata.
type ListMessagesResponse struct {
	Messages   []domain.Message `json:"messages"`
	Pagination Pagination       `json:"pagination"`
}

//
// Helpers
//

// clampPagination parses page/page_size from query parameters, applies sane
// defaults and caps, and returns the validated (page, pageSize).
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = utils.AtoiDefault(c.Query("page"), defaultPage)
	if page < 1 {
		page = 1
	}
	pageSize = utils.AtoiDefault(c.Query("page_size"), defaultPageSize)
	if pageSize < 1 {
		pageSize = 1
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return
}

//
// Handlers
//

// SendMessage godoc
// @ID          sendMessage
// @Summary     Send an anonymous message to a user
// @Description Appends a message to the named user's inbox, provided the user exists
// @Description and is currently accepting messages. No session is required.
// @Tags        Messages
// @Accept      json
// @Produce     json
//
// @Param       username  path  string  true  "Recipient username"  example(alice)
// @Param       body      body  handlers.SendMessageRequest  true  "Message payload"
//
// @Success     201  {object} handlers.SendMessageResponse "Message delivered"
// @Failure     400  {object} handlers.Response "Invalid payload"
// @Failure     403  {object} handlers.Response "User is not accepting messages"
// @Failure     404  {object} handlers.Response "No such user"
// @Failure     500  {object} handlers.Response "Internal server error"
// @Router      /u/{username}/messages [post]
func (h *Handlers) SendMessage(c *gin.Context) {
	username := strings.TrimSpace(c.Param("username"))
	if username == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "username is required")
		return
	}

	var req SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content is required")
		return
	}

	m, err := h.msgSvc.Deliver(c.Request.Context(), username, req.Content)
	if err != nil {
		switch err {
		case services.ErrEmptyContent:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content is required")
		case services.ErrContentTooLong:
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "content too long")
		case services.ErrRecipientNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
		case services.ErrNotAcceptingMessages:
			fail(c, http.StatusForbidden, ErrCodeForbidden, "user is not accepting messages")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeDeliveryFailed, "error sending message", err)
		}
		return
	}

	ok(c, http.StatusCreated, SendMessageResponse{Success: true, Message: m})
}

// ListMessages godoc
// @ID          listMessages
// @Summary     List the authenticated user's inbox
// @Description Returns a paginated list of received messages, newest first.
// @Tags        Messages
// @Produce     json
// @Security    BearerAuth
//
// @Param       page       query  int  false "Page number"     minimum(1) default(1)
// @Param       page_size  query  int  false "Items per page"  minimum(1) maximum(100) default(20)
//
// @Success     200  {object} handlers.ListMessagesResponse
// @Failure     401  {object} handlers.Response "Not authenticated"
// @Failure     500  {object} handlers.Response "Internal server error"
// @Router      /messages [get]
func (h *Handlers) ListMessages(c *gin.Context) {
	claims := sessionClaims(c)
	if claims == nil {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}

	page, pageSize := clampPagination(c)

	items, total, err := h.msgSvc.ListPage(c.Request.Context(), claims.UserID, page, pageSize)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "error listing messages", err)
		return
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	ok(c, http.StatusOK, ListMessagesResponse{
		Messages: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   pageSize,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    page < totalPages,
		},
	})
}

// DeleteMessage godoc
// @ID          deleteMessage
// @Summary     Delete a message from the authenticated user's inbox
// @Description Removes the message with the given id from the session identity's own
// @Description inbox. Ids belonging to other users read as not found. A second delete
// @Description of the same id returns 404.
// @Tags        Messages
// @Produce     json
// @Security    BearerAuth
//
// @Param       id  path  string  true  "Message ID (UUID)"  format(uuid)
//
// @Success     200  {object} handlers.Response "Message deleted"
// @Failure     400  {object} handlers.Response "Missing or malformed message id"
// @Failure     401  {object} handlers.Response "Not authenticated"
// @Failure     404  {object} handlers.Response "Message not found or already deleted"
// @Failure     500  {object} handlers.Response "Internal server error"
// @Router      /messages/{id} [delete]
func (h *Handlers) DeleteMessage(c *gin.Context) {
	claims := sessionClaims(c)
	if claims == nil {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}

	messageID := strings.TrimSpace(c.Param("id"))
	if messageID == "" {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message id is required")
		return
	}
	if _, err := uuid.Parse(messageID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "message id must be a UUID")
		return
	}

	if err := h.msgSvc.Delete(c.Request.Context(), claims.UserID, messageID); err != nil {
		switch err {
		case services.ErrMessageNotFound:
			fail(c, http.StatusNotFound, ErrCodeNotFound, "message not found or already deleted")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "error deleting message", err)
		}
		return
	}

	okMessage(c, http.StatusOK, "message deleted")
}

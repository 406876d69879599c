// Accept-messages preference handlers.
//
// This file exposes the REST endpoints for the accepting-messages flag:
//   - GET  /accept-messages  (read the live flag)
//   - POST /accept-messages  (toggle the live flag)
//
// Both read and write go to the store, not to the token: the session claim
// keeps the snapshot taken at login and is intentionally left stale until a
// new token is issued.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/inboxd/go-inbox-backend/internal/services"
)

// AcceptMessagesResponse reports the live accepting-messages flag.
type AcceptMessagesResponse struct {
	Success           bool `json:"success" example:"true"`
	AcceptingMessages bool `json:"accepting_messages" example:"true"`
}

// UpdateAcceptMessagesRequest is the JSON payload for toggling the flag.
// A pointer distinguishes an explicit false from an absent field.
type UpdateAcceptMessagesRequest struct {
	AcceptingMessages *bool `json:"accepting_messages" binding:"required" example:"false"`
}

// GetAcceptMessages godoc
// @ID          getAcceptMessages
// @Summary     Read the accept-messages preference
// @Description Returns the live stored flag, which may differ from the (stale) token claim.
// @Tags        Preferences
// @Produce     json
// @Security    BearerAuth
//
// @Success     200  {object} handlers.AcceptMessagesResponse
// @Failure     401  {object} handlers.Response "Not authenticated"
// @Failure     500  {object} handlers.Response "Internal server error"
// @Router      /accept-messages [get]
func (h *Handlers) GetAcceptMessages(c *gin.Context) {
	claims := sessionClaims(c)
	if claims == nil {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}

	accepting, err := h.accountSvc.AcceptingMessages(c.Request.Context(), claims.UserID)
	if err != nil {
		if err == services.ErrUserNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "error reading preference", err)
		return
	}

	ok(c, http.StatusOK, AcceptMessagesResponse{Success: true, AcceptingMessages: accepting})
}

// UpdateAcceptMessages godoc
// @ID          updateAcceptMessages
// @Summary     Toggle the accept-messages preference
// @Description Updates the live stored flag. Already-issued tokens keep their snapshot.
// @Tags        Preferences
// @Accept      json
// @Produce     json
// @Security    BearerAuth
//
// @Param       body  body  handlers.UpdateAcceptMessagesRequest  true  "New flag value"
//
// @Success     200  {object} handlers.AcceptMessagesResponse
// @Failure     400  {object} handlers.Response "Invalid payload"
// @Failure     401  {object} handlers.Response "Not authenticated"
// @Failure     500  {object} handlers.Response "Internal server error"
// @Router      /accept-messages [post]
func (h *Handlers) UpdateAcceptMessages(c *gin.Context) {
	claims := sessionClaims(c)
	if claims == nil {
		fail(c, http.StatusUnauthorized, ErrCodeUnauthorized, "not authenticated")
		return
	}

	var req UpdateAcceptMessagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "accepting_messages is required")
		return
	}

	if err := h.accountSvc.SetAcceptingMessages(c.Request.Context(), claims.UserID, *req.AcceptingMessages); err != nil {
		if err == services.ErrUserNotFound {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "user not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "error updating preference", err)
		return
	}

	ok(c, http.StatusOK, AcceptMessagesResponse{Success: true, AcceptingMessages: *req.AcceptingMessages})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masq-social/masq-service/internal/services"
	"github.com/masq-social/masq-service/internal/utils"
)

type ConversationHandler struct {
	BaseHandler
	conversationService services.ConversationService
}

func NewConversationHandler(conversationService services.ConversationService, logger utils.Logger) *ConversationHandler {
	return &ConversationHandler{
		BaseHandler:         NewBaseHandler(logger),
		conversationService: conversationService,
	}
}

// ListConversations returns the caller's conversation summaries
// @Summary List conversations
// @Description Returns one summary per counterpart, newest activity first
// @Tags conversations
// @Produce json
// @Success 200 {array} models.Conversation
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /conversations [get]
func (h *ConversationHandler) ListConversations(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	conversations, err := h.conversationService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, conversations)
}

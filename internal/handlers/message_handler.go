package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masq-social/masq-service/internal/models"
	"github.com/masq-social/masq-service/internal/services"
	"github.com/masq-social/masq-service/internal/utils"
)

type MessageHandler struct {
	BaseHandler
	messageService services.MessageService
}

func NewMessageHandler(messageService services.MessageService, logger utils.Logger) *MessageHandler {
	return &MessageHandler{
		BaseHandler:    NewBaseHandler(logger),
		messageService: messageService,
	}
}

// SendMessage stores a direct message
// @Summary Send message
// @Description Sends a direct message to another user
// @Tags messages
// @Accept json
// @Produce json
// @Param message body models.SendMessageRequest true "Message data"
// @Success 201 {object} models.Message
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /messages [post]
func (h *MessageHandler) SendMessage(c *gin.Context) {
	h.LogRequest(c, "Sending message")

	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	message, err := h.messageService.Send(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetThread returns the thread with one counterpart and marks it read
// @Summary Message thread
// @Description Returns all messages with the given user, oldest first, and marks their messages as read
// @Tags messages
// @Produce json
// @Param user_id path uint true "Counterpart user ID"
// @Success 200 {array} models.Message
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /messages/{user_id} [get]
func (h *MessageHandler) GetThread(c *gin.Context) {
	otherID := h.parseIDParam(c, "user_id")
	if otherID == 0 {
		return
	}

	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	h.LogRequest(c, "Getting message thread", "counterpart_id", otherID)

	messages, err := h.messageService.Thread(c.Request.Context(), userID, otherID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, messages)
}

// GetUnreadCount returns how many messages await the caller
// @Summary Unread count
// @Tags messages
// @Produce json
// @Success 200 {object} models.UnreadCountResponse
// @Failure 401 {object} ErrorResponse
// @Router /messages/unread/count [get]
func (h *MessageHandler) GetUnreadCount(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	count, err := h.messageService.UnreadCount(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.UnreadCountResponse{Count: count})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/masq-social/masq-service/internal/models"
	"github.com/masq-social/masq-service/internal/services"
	"github.com/masq-social/masq-service/internal/utils"
)

type GuessHandler struct {
	BaseHandler
	guessService services.GuessService
}

func NewGuessHandler(guessService services.GuessService, logger utils.Logger) *GuessHandler {
	return &GuessHandler{
		BaseHandler:  NewBaseHandler(logger),
		guessService: guessService,
	}
}

// SubmitGuess records a guess at another user's real identity
// @Summary Submit guess
// @Description Records the guess; the target's real name is included in the response only when the guess is correct
// @Tags guesses
// @Accept json
// @Produce json
// @Param guess body models.GuessRequest true "Guess data"
// @Success 201 {object} models.GuessResult
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /guess [post]
func (h *GuessHandler) SubmitGuess(c *gin.Context) {
	h.LogRequest(c, "Submitting guess")

	var req models.GuessRequest
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

	result, err := h.guessService.Submit(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// ListGuesses returns the caller's guess history
// @Summary Guess history
// @Description Returns guesses the caller made and guesses aimed at them, newest first
// @Tags guesses
// @Produce json
// @Success 200 {array} models.Guess
// @Failure 401 {object} ErrorResponse
// @Router /guesses [get]
func (h *GuessHandler) ListGuesses(c *gin.Context) {
	userID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	guesses, err := h.guessService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, guesses)
}

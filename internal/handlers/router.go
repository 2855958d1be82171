package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/masq-social/masq-service/internal/services"
	"github.com/masq-social/masq-service/internal/utils"
)

type HandlerManager struct {
	authHandler         *AuthHandler
	userHandler         *UserHandler
	messageHandler      *MessageHandler
	conversationHandler *ConversationHandler
	guessHandler        *GuessHandler
	exportHandler       *ExportHandler
	authMiddleware      *SessionAuthMiddleware
	serviceManager      services.ServiceManager
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	sessionTTL time.Duration,
	logger utils.Logger,
) *HandlerManager {
	authMiddleware := NewSessionAuthMiddleware(serviceManager.Auth(), serviceManager.User(), logger)

	return &HandlerManager{
		authHandler:         NewAuthHandler(serviceManager.Auth(), serviceManager.User(), sessionTTL, logger),
		userHandler:         NewUserHandler(serviceManager.User(), logger),
		messageHandler:      NewMessageHandler(serviceManager.Message(), logger),
		conversationHandler: NewConversationHandler(serviceManager.Conversation(), logger),
		guessHandler:        NewGuessHandler(serviceManager.Guess(), logger),
		exportHandler:       NewExportHandler(serviceManager.Export(), logger),
		authMiddleware:      authMiddleware,
		serviceManager:      serviceManager,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	api := router.Group("/api")
	{
		// Session management, open to anyone
		auth := api.Group("/auth")
		{
			auth.POST("/register", hm.authHandler.Register)
			auth.POST("/login", hm.authHandler.Login)
		}

		// Everything else requires a session
		protected := api.Group("")
		protected.Use(hm.authMiddleware.RequireAuth())
		{
			protected.POST("/auth/logout", hm.authHandler.Logout)
			protected.GET("/auth/me", hm.authHandler.Me)

			protected.GET("/users", hm.userHandler.ListUsers)
			protected.GET("/conversations", hm.conversationHandler.ListConversations)

			messages := protected.Group("/messages")
			{
				messages.POST("", hm.messageHandler.SendMessage)
				messages.GET("/unread/count", hm.messageHandler.GetUnreadCount)
				messages.GET("/:user_id", hm.messageHandler.GetThread)
			}

			protected.POST("/guess", hm.guessHandler.SubmitGuess)
			protected.GET("/guesses", hm.guessHandler.ListGuesses)

			protected.GET("/export", hm.exportHandler.ExportActivity)
		}
	}

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		status := http.StatusOK
		health := gin.H{
			"status":  "healthy",
			"service": "masq-service",
		}
		if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
			status = http.StatusServiceUnavailable
			health["status"] = "unhealthy"
		}
		c.JSON(status, health)
	})
}

package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the Gin engine with all routes configured. CORS is wide
// open so the dashboard frontend can be served from anywhere.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		api.GET("/health", h.Health)
		api.POST("/message", h.ProcessMessage)
		api.GET("/logs", h.GetLogs)
		api.DELETE("/logs", h.ClearLogs)
		api.GET("/conversations", h.GetConversations)
		api.GET("/conversations/:email", h.GetConversationByEmail)
		api.DELETE("/conversations", h.ClearConversations)
	}

	return router
}

package http

import (
	"github.com/gin-gonic/gin"
)

// SetupRouter sets up the Gin router for the development backend
func SetupRouter(issuer *Issuer) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger())

	// Create handlers
	handlers := NewVerificationHandlers(issuer)

	verification := router.Group("/api/verification")
	{
		verification.POST("/session", handlers.CreateSession)
		verification.GET("/session/:token", handlers.GetSession)
		verification.POST("/session/verify", handlers.Verify)
	}

	return router
}

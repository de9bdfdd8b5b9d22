package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lil-gargs/portal/core"
)

// VerificationHandlers contains the HTTP handlers for the verification endpoints
type VerificationHandlers struct {
	issuer *Issuer
}

// NewVerificationHandlers creates new verification handlers
func NewVerificationHandlers(issuer *Issuer) *VerificationHandlers {
	return &VerificationHandlers{
		issuer: issuer,
	}
}

// CreateSession issues a new verification session and its token
func (h *VerificationHandlers) CreateSession(c *gin.Context) {
	var req struct {
		DiscordID     string                 `json:"discordId" binding:"required"`
		GuildID       string                 `json:"guildId" binding:"required"`
		WalletAddress string                 `json:"walletAddress" binding:"required"`
		Username      string                 `json:"username"`
		Contracts     []core.ContractSummary `json:"contracts"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	token, session, err := h.issuer.Issue(SessionSeed{
		DiscordID:     req.DiscordID,
		GuildID:       req.GuildID,
		WalletAddress: req.WalletAddress,
		Username:      req.Username,
		Contracts:     req.Contracts,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"status":    session.Status,
		"expiresAt": session.ExpiresAt,
		"message":   session.Message,
	})
}

// GetSession resolves a session by its token
func (h *VerificationHandlers) GetSession(c *gin.Context) {
	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	session, err := h.issuer.Get(token)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found or expired"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"session": session,
	})
}

// Verify checks a submitted signature against the session's challenge
func (h *VerificationHandlers) Verify(c *gin.Context) {
	var req struct {
		Token     string `json:"token" binding:"required"`
		Signature string `json:"signature" binding:"required"`
		Username  string `json:"username"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	result, err := h.issuer.Verify(req.Token, req.Signature, req.Username)
	if err != nil {
		statusCode := http.StatusInternalServerError
		errorMsg := "Verification failed"

		// Map specific errors to appropriate status codes
		switch {
		case errors.Is(err, core.ErrSessionNotFound):
			statusCode = http.StatusNotFound
			errorMsg = "Session not found or expired"
		case errors.Is(err, core.ErrSessionExpired):
			statusCode = http.StatusGone
			errorMsg = "Session has expired"
		case errors.Is(err, core.ErrInvalidSignature):
			statusCode = http.StatusUnprocessableEntity
			errorMsg = "Invalid signature"
		case errors.Is(err, core.ErrValidation):
			statusCode = http.StatusUnprocessableEntity
			errorMsg = err.Error()
		}

		c.JSON(statusCode, gin.H{"error": errorMsg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"verification": result})
}

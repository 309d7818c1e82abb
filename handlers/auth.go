package handlers

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"invoice-extract/config"
	"invoice-extract/logger"
	"invoice-extract/middleware"
)

// LoginInput is the body of POST /login.
type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler issues admin tokens for the configured account.
type AuthHandler struct {
	admin  config.AdminConfig
	logger *zap.Logger
}

func NewAuthHandler(admin config.AdminConfig, log *zap.Logger) *AuthHandler {
	return &AuthHandler{admin: admin, logger: log}
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	log := logger.FromGin(c, h.logger)
	if subtle.ConstantTimeCompare([]byte(input.Username), []byte(h.admin.Username)) != 1 {
		log.Warn("login rejected", zap.String("username", input.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(h.admin.PasswordHash), []byte(input.Password)); err != nil {
		log.Warn("login rejected", zap.String("username", input.Username))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
		return
	}

	token, expiresAt, err := middleware.GenerateToken(h.admin.JWTSecret, h.admin.Username, h.admin.TokenTTL)
	if err != nil {
		log.Error("failed to issue token", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": expiresAt,
		"user":       gin.H{"username": h.admin.Username},
	})
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"orderbot-backend/internal/config"
	"orderbot-backend/internal/domains/auth/model"
	"orderbot-backend/internal/shared/response"
	"orderbot-backend/pkg/jwt"
	"orderbot-backend/pkg/logger"
)

// AuthHandler issues admin tokens against the configured credentials.
type AuthHandler struct {
	cfg        config.AdminConfig
	jwtManager *jwt.Manager
	expirySecs int
}

func NewAuthHandler(cfg config.AdminConfig, jwtManager *jwt.Manager, expiryHours int) *AuthHandler {
	return &AuthHandler{
		cfg:        cfg,
		jwtManager: jwtManager,
		expirySecs: expiryHours * 3600,
	}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if req.Username != h.cfg.Username ||
		bcrypt.CompareHashAndPassword([]byte(h.cfg.PasswordHash), []byte(req.Password)) != nil {
		logger.Warn("admin login rejected", map[string]interface{}{"username": req.Username})
		response.Unauthorized(c, "invalid credentials")
		return
	}

	token, err := h.jwtManager.GenerateToken(req.Username, "admin")
	if err != nil {
		logger.Error("token generation failed", err)
		response.InternalServerError(c, "failed to issue token")
		return
	}

	response.Success(c, http.StatusOK, model.LoginResponse{
		Token:     token,
		ExpiresIn: h.expirySecs,
	})
}

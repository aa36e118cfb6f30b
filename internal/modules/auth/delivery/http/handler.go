package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"learnly.id/gamification/internal/modules/auth/dto"
	authService "learnly.id/gamification/internal/modules/auth/service"
	"learnly.id/gamification/pkg/validator"
)

type AuthHandler struct {
	service authService.AuthService
}

func NewAuthHandler(service authService.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	resp, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

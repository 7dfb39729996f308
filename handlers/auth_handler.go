package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ipss-cms/helper"
	"ipss-cms/models"
	"ipss-cms/services"
)

type AuthHandler struct {
	authService services.AuthService
	Helper      *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService, h *helper.HTTPHelper) *AuthHandler {
	return &AuthHandler{authService: authService, Helper: h}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login efetuado com sucesso",
		"token":   response.Token,
		"user":    response.User,
	})
}

func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := helper.CurrentUser(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "Utilizador não encontrado ou inativo")
		return
	}
	h.Helper.SendSuccess(c, "", user)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	user, ok := helper.CurrentUser(c)
	if !ok {
		h.Helper.SendUnauthorizedError(c, "Utilizador não encontrado ou inativo")
		return
	}

	var req models.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}
	if err := h.authService.ChangePassword(c.Request.Context(), user, req); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Password alterada com sucesso", nil)
}

// Logout only acknowledges; tokens are stateless and the client drops them.
func (h *AuthHandler) Logout(c *gin.Context) {
	h.Helper.SendSuccess(c, "Sessão terminada", nil)
}

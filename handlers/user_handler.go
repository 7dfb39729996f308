package handlers

import (
	"github.com/gin-gonic/gin"

	"ipss-cms/helper"
	"ipss-cms/models"
	"ipss-cms/services"
)

type UserHandler struct {
	userService services.UserService
	Helper      *helper.HTTPHelper
}

func NewUserHandler(userService services.UserService, h *helper.HTTPHelper) *UserHandler {
	return &UserHandler{userService: userService, Helper: h}
}

func (h *UserHandler) List(c *gin.Context) {
	users, err := h.userService.List(c.Request.Context())
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "", users)
}

func (h *UserHandler) Get(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	user, err := h.userService.Get(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "", user)
}

func (h *UserHandler) Create(c *gin.Context) {
	actor, _ := helper.CurrentUser(c)
	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req, actor)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendCreated(c, "Utilizador criado com sucesso", user)
}

func (h *UserHandler) Update(c *gin.Context) {
	actor, _ := helper.CurrentUser(c)
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	payload, ok := bindPayload(c, h.Helper)
	if !ok {
		return
	}

	user, err := h.userService.Update(c.Request.Context(), id, payload, actor)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Utilizador atualizado com sucesso", user)
}

func (h *UserHandler) Delete(c *gin.Context) {
	actor, _ := helper.CurrentUser(c)
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.userService.Delete(c.Request.Context(), id, actor); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Utilizador eliminado com sucesso", nil)
}

func (h *UserHandler) ToggleStatus(c *gin.Context) {
	actor, _ := helper.CurrentUser(c)
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.ToggleStatus(c.Request.Context(), id, actor)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	msg := "Utilizador desativado com sucesso"
	if user.Active {
		msg = "Utilizador ativado com sucesso"
	}
	h.Helper.SendSuccess(c, msg, user)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"ipss-cms/helper"
	"ipss-cms/models"
	"ipss-cms/services"
)

type SocialResponseHandler struct {
	service services.SocialResponseService
	Helper  *helper.HTTPHelper
}

func NewSocialResponseHandler(service services.SocialResponseService, h *helper.HTTPHelper) *SocialResponseHandler {
	return &SocialResponseHandler{service: service, Helper: h}
}

func (h *SocialResponseHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), helper.IsAuthenticated(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "", items)
}

func (h *SocialResponseHandler) Get(c *gin.Context) {
	item, err := h.service.Get(c.Request.Context(), c.Param("id"), helper.IsAuthenticated(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "", item)
}

func (h *SocialResponseHandler) Create(c *gin.Context) {
	var req models.CreateSocialResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}

	item, err := h.service.Create(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendCreated(c, "Resposta social criada com sucesso", item)
}

func (h *SocialResponseHandler) Update(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	payload, ok := bindPayload(c, h.Helper)
	if !ok {
		return
	}

	item, err := h.service.Update(c.Request.Context(), id, payload, actorID(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Resposta social atualizada com sucesso", item)
}

func (h *SocialResponseHandler) Delete(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Resposta social eliminada com sucesso", nil)
}

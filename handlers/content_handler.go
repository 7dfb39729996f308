package handlers

import (
	"github.com/gin-gonic/gin"

	"ipss-cms/helper"
	"ipss-cms/models"
	"ipss-cms/services"
)

type ContentHandler struct {
	contentService services.ContentService
	Helper         *helper.HTTPHelper
}

func NewContentHandler(contentService services.ContentService, h *helper.HTTPHelper) *ContentHandler {
	return &ContentHandler{contentService: contentService, Helper: h}
}

func (h *ContentHandler) List(c *gin.Context) {
	items, err := h.contentService.List(c.Request.Context(), c.Query("secao"), helper.IsAuthenticated(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "", items)
}

func (h *ContentHandler) Get(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	item, err := h.contentService.Get(c.Request.Context(), id, helper.IsAuthenticated(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "", item)
}

func (h *ContentHandler) Create(c *gin.Context) {
	var req models.CreateContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}

	item, err := h.contentService.Create(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendCreated(c, "Conteúdo criado com sucesso", item)
}

func (h *ContentHandler) Update(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	payload, ok := bindPayload(c, h.Helper)
	if !ok {
		return
	}

	item, err := h.contentService.Update(c.Request.Context(), id, payload, actorID(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Conteúdo atualizado com sucesso", item)
}

func (h *ContentHandler) Delete(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.contentService.Delete(c.Request.Context(), id); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Conteúdo eliminado com sucesso", nil)
}

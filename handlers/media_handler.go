package handlers

import (
	"github.com/gin-gonic/gin"

	"ipss-cms/helper"
	"ipss-cms/models"
	"ipss-cms/services"
)

type MediaHandler struct {
	mediaService services.MediaService
	Helper       *helper.HTTPHelper
}

func NewMediaHandler(mediaService services.MediaService, h *helper.HTTPHelper) *MediaHandler {
	return &MediaHandler{mediaService: mediaService, Helper: h}
}

func (h *MediaHandler) List(c *gin.Context) {
	var params models.MediaListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}
	owner, err := services.ParseOwner(params.OwnerKind, params.OwnerID)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}

	items, err := h.mediaService.List(c.Request.Context(), owner)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "", items)
}

func (h *MediaHandler) Upload(c *gin.Context) {
	var form models.MediaUploadForm
	if err := c.ShouldBind(&form); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}

	media, err := h.mediaService.Upload(c.Request.Context(), form, formFile(c), actorID(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendCreated(c, "Ficheiro carregado com sucesso", media)
}

func (h *MediaHandler) AddLink(c *gin.Context) {
	var req models.MediaLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}

	media, err := h.mediaService.AddLink(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendCreated(c, "Link adicionado com sucesso", media)
}

func (h *MediaHandler) Update(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	payload, ok := bindPayload(c, h.Helper)
	if !ok {
		return
	}

	media, err := h.mediaService.Update(c.Request.Context(), id, payload)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Media atualizada com sucesso", media)
}

func (h *MediaHandler) Delete(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.mediaService.Delete(c.Request.Context(), id); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Media eliminada com sucesso", nil)
}

package handlers

import (
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"ipss-cms/helper"
	"ipss-cms/models"
	"ipss-cms/services"
)

// uploadField is the multipart field carrying the file.
const uploadField = "ficheiro"

func formFile(c *gin.Context) *multipart.FileHeader {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		return nil
	}
	return fh
}

type TransparencyHandler struct {
	transparencyService services.TransparencyService
	Helper              *helper.HTTPHelper
}

func NewTransparencyHandler(transparencyService services.TransparencyService, h *helper.HTTPHelper) *TransparencyHandler {
	return &TransparencyHandler{transparencyService: transparencyService, Helper: h}
}

func (h *TransparencyHandler) List(c *gin.Context) {
	var params models.TransparencyListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}
	docs, err := h.transparencyService.List(c.Request.Context(), params, helper.IsAuthenticated(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "", docs)
}

func (h *TransparencyHandler) Get(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	doc, err := h.transparencyService.Get(c.Request.Context(), id, helper.IsAuthenticated(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "", doc)
}

func (h *TransparencyHandler) Create(c *gin.Context) {
	var form models.TransparencyForm
	if err := c.ShouldBind(&form); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}

	doc, err := h.transparencyService.Create(c.Request.Context(), form, formFile(c), actorID(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendCreated(c, "Documento criado com sucesso", doc)
}

func (h *TransparencyHandler) Update(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	payload, ok := bindPayload(c, h.Helper)
	if !ok {
		return
	}

	doc, err := h.transparencyService.Update(c.Request.Context(), id, payload, actorID(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Documento atualizado com sucesso", doc)
}

func (h *TransparencyHandler) ReplaceFile(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	doc, err := h.transparencyService.ReplaceFile(c.Request.Context(), id, formFile(c), actorID(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Ficheiro substituído com sucesso", doc)
}

func (h *TransparencyHandler) Delete(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.transparencyService.Delete(c.Request.Context(), id); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Documento eliminado com sucesso", nil)
}

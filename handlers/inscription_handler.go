package handlers

import (
	"github.com/gin-gonic/gin"

	"ipss-cms/helper"
	"ipss-cms/models"
	"ipss-cms/services"
)

type InscriptionHandler struct {
	inscriptionService services.InscriptionService
	Helper             *helper.HTTPHelper
}

func NewInscriptionHandler(inscriptionService services.InscriptionService, h *helper.HTTPHelper) *InscriptionHandler {
	return &InscriptionHandler{inscriptionService: inscriptionService, Helper: h}
}

// Submit returns the public handler for one enrolment form.
func (h *InscriptionHandler) Submit(kind models.InscriptionKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.InscriptionRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			h.Helper.SendValidationError(c, err)
			return
		}

		inscription, err := h.inscriptionService.Submit(c.Request.Context(), kind, req)
		if err != nil {
			h.Helper.SendError(c, err)
			return
		}
		h.Helper.SendCreated(c, "Inscrição submetida com sucesso", gin.H{
			"id":         inscription.ID,
			"referencia": inscription.Reference,
			"estado":     inscription.Status,
		})
	}
}

func (h *InscriptionHandler) List(c *gin.Context) {
	var params models.InscriptionListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}
	params.Normalize()

	inscriptions, total, err := h.inscriptionService.List(c.Request.Context(), params)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendPaginated(c, inscriptions, params.Limit, params.Page, int(total))
}

func (h *InscriptionHandler) Get(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	inscription, err := h.inscriptionService.Get(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "", inscription)
}

func (h *InscriptionHandler) UpdateStatus(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	var req models.UpdateInscriptionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}

	inscription, err := h.inscriptionService.UpdateStatus(c.Request.Context(), id, req, actorID(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Estado da inscrição atualizado", inscription)
}

func (h *InscriptionHandler) Delete(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.inscriptionService.Delete(c.Request.Context(), id); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Inscrição eliminada com sucesso", nil)
}

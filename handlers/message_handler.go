package handlers

import (
	"github.com/gin-gonic/gin"

	"ipss-cms/helper"
	"ipss-cms/models"
	"ipss-cms/services"
)

type MessageHandler struct {
	messageService services.MessageService
	Helper         *helper.HTTPHelper
}

func NewMessageHandler(messageService services.MessageService, h *helper.HTTPHelper) *MessageHandler {
	return &MessageHandler{messageService: messageService, Helper: h}
}

// SubmitContact answers the same way whether or not the post was a
// suppressed duplicate.
func (h *MessageHandler) SubmitContact(c *gin.Context) {
	var req models.ContactFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}
	if _, err := h.messageService.Submit(c.Request.Context(), req); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendCreated(c, "Mensagem enviada com sucesso. Entraremos em contacto brevemente.", nil)
}

func (h *MessageHandler) List(c *gin.Context) {
	var params models.MessageListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}
	params.Normalize()

	messages, total, unread, err := h.messageService.List(c.Request.Context(), params)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendPaginated(c, gin.H{"mensagens": messages, "nao_lidas": unread}, params.Limit, params.Page, int(total))
}

func (h *MessageHandler) Get(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	msg, err := h.messageService.Get(c.Request.Context(), id)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "", msg)
}

func (h *MessageHandler) Update(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	payload, ok := bindPayload(c, h.Helper)
	if !ok {
		return
	}

	msg, err := h.messageService.Update(c.Request.Context(), id, payload)
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Mensagem atualizada com sucesso", msg)
}

func (h *MessageHandler) Delete(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.messageService.Delete(c.Request.Context(), id); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Mensagem eliminada com sucesso", nil)
}

package handlers

import (
	"github.com/gin-gonic/gin"

	"ipss-cms/helper"
	"ipss-cms/models"
	"ipss-cms/services"
)

type SectionHandler struct {
	sectionService services.SectionService
	Helper         *helper.HTTPHelper
}

func NewSectionHandler(sectionService services.SectionService, h *helper.HTTPHelper) *SectionHandler {
	return &SectionHandler{sectionService: sectionService, Helper: h}
}

func (h *SectionHandler) List(c *gin.Context) {
	sections, err := h.sectionService.List(c.Request.Context(), c.Query("pagina"), helper.IsAuthenticated(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "", sections)
}

func (h *SectionHandler) Get(c *gin.Context) {
	section, err := h.sectionService.Get(c.Request.Context(), c.Param("id"), helper.IsAuthenticated(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "", section)
}

func (h *SectionHandler) Create(c *gin.Context) {
	var req models.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}

	section, err := h.sectionService.Create(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendCreated(c, "Secção criada com sucesso", section)
}

func (h *SectionHandler) Update(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	payload, ok := bindPayload(c, h.Helper)
	if !ok {
		return
	}

	section, err := h.sectionService.Update(c.Request.Context(), id, payload, actorID(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Secção atualizada com sucesso", section)
}

func (h *SectionHandler) Delete(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.sectionService.Delete(c.Request.Context(), id, actorID(c)); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Secção desativada com sucesso", nil)
}

func (h *SectionHandler) ListItems(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	items, err := h.sectionService.ListItems(c.Request.Context(), id, helper.IsAuthenticated(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "", items)
}

func (h *SectionHandler) CreateItem(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	var req models.CreateSectionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}

	item, err := h.sectionService.CreateItem(c.Request.Context(), id, req, actorID(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendCreated(c, "Item criado com sucesso", item)
}

func (h *SectionHandler) UpdateItem(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.Helper.ParseID(c, "itemId")
	if !ok {
		return
	}
	payload, ok := bindPayload(c, h.Helper)
	if !ok {
		return
	}

	item, err := h.sectionService.UpdateItem(c.Request.Context(), id, itemID, payload, actorID(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Item atualizado com sucesso", item)
}

func (h *SectionHandler) DeleteItem(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	itemID, ok := h.Helper.ParseID(c, "itemId")
	if !ok {
		return
	}
	if err := h.sectionService.DeleteItem(c.Request.Context(), id, itemID, actorID(c)); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Item desativado com sucesso", nil)
}

func (h *SectionHandler) ReorderItems(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	var req models.ReorderItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}

	items, err := h.sectionService.ReorderItems(c.Request.Context(), id, req, actorID(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Ordem atualizada com sucesso", items)
}

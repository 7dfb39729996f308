package handlers

import (
	"github.com/gin-gonic/gin"

	"ipss-cms/helper"
	"ipss-cms/models"
	"ipss-cms/services"
)

type NewsHandler struct {
	newsService services.NewsService
	Helper      *helper.HTTPHelper
}

func NewNewsHandler(newsService services.NewsService, h *helper.HTTPHelper) *NewsHandler {
	return &NewsHandler{newsService: newsService, Helper: h}
}

func (h *NewsHandler) List(c *gin.Context) {
	var params models.NewsListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}
	params.Normalize()

	news, total, err := h.newsService.List(c.Request.Context(), params, helper.IsAuthenticated(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendPaginated(c, news, params.Limit, params.Page, int(total))
}

func (h *NewsHandler) Get(c *gin.Context) {
	news, err := h.newsService.Get(c.Request.Context(), c.Param("id"), helper.IsAuthenticated(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "", news)
}

func (h *NewsHandler) Create(c *gin.Context) {
	var req models.CreateNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}

	news, err := h.newsService.Create(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendCreated(c, "Notícia criada com sucesso", news)
}

func (h *NewsHandler) Update(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	payload, ok := bindPayload(c, h.Helper)
	if !ok {
		return
	}

	news, err := h.newsService.Update(c.Request.Context(), id, payload, actorID(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Notícia atualizada com sucesso", news)
}

func (h *NewsHandler) Delete(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.newsService.Delete(c.Request.Context(), id); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Notícia eliminada com sucesso", nil)
}

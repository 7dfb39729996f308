package handlers

import (
	"github.com/gin-gonic/gin"

	"ipss-cms/helper"
	"ipss-cms/models"
	"ipss-cms/services"
)

type ProjectHandler struct {
	projectService services.ProjectService
	Helper         *helper.HTTPHelper
}

func NewProjectHandler(projectService services.ProjectService, h *helper.HTTPHelper) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, Helper: h}
}

func (h *ProjectHandler) List(c *gin.Context) {
	projects, err := h.projectService.List(c.Request.Context(), helper.IsAuthenticated(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "", projects)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	project, err := h.projectService.Get(c.Request.Context(), c.Param("id"), helper.IsAuthenticated(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "", project)
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var req models.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendValidationError(c, err)
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), req, actorID(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendCreated(c, "Projeto criado com sucesso", project)
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	payload, ok := bindPayload(c, h.Helper)
	if !ok {
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), id, payload, actorID(c))
	if err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Projeto atualizado com sucesso", project)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := h.Helper.ParseID(c, "id")
	if !ok {
		return
	}
	if err := h.projectService.Delete(c.Request.Context(), id); err != nil {
		h.Helper.SendError(c, err)
		return
	}
	h.Helper.SendSuccess(c, "Projeto eliminado com sucesso", nil)
}

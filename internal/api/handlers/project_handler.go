package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/init-club/Init-Website-sub000/internal/models"
	"github.com/init-club/Init-Website-sub000/internal/services"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

type ProjectHandler struct {
	svc services.ProjectService
}

func NewProjectHandler(svc services.ProjectService) *ProjectHandler {
	return &ProjectHandler{svc: svc}
}

func (h *ProjectHandler) ListActive(c *gin.Context) {
	out, err := h.svc.ListActive(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// Graveyard lists archived projects, newest burial first.
func (h *ProjectHandler) Graveyard(c *gin.Context) {
	out, err := h.svc.ListGraveyard(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type UpdateProjectRequest struct {
	Title       *string   `json:"title,omitempty"`
	Description *string   `json:"description,omitempty"`
	RepoURL     *string   `json:"repo_url,omitempty"`
	TechStack   *[]string `json:"tech_stack,omitempty"`
	Status      *string   `json:"status,omitempty"`
	Epitaph     *string   `json:"epitaph,omitempty"`
}

// Update applies a partial metadata edit on top of the stored project.
func (h *ProjectHandler) Update(c *gin.Context) {
	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "ProjectHandler.Update", "invalid request body", err))
		return
	}

	existing, err := h.svc.Get(c.Request.Context(), c.Param("project_id"))
	if err != nil {
		writeError(c, err)
		return
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}
	if req.RepoURL != nil {
		existing.RepoURL = *req.RepoURL
	}
	if req.TechStack != nil {
		existing.TechStack = *req.TechStack
	}
	if req.Status != nil {
		existing.Status = models.ProjectStatus(*req.Status)
	}
	if req.Epitaph != nil {
		existing.Epitaph = *req.Epitaph
	}

	updated, err := h.svc.UpdateMeta(c.Request.Context(), existing)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

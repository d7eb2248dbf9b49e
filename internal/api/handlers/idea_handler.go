package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/init-club/Init-Website-sub000/internal/models"
	"github.com/init-club/Init-Website-sub000/internal/services"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

type IdeaHandler struct {
	svc services.IdeaService
}

func NewIdeaHandler(svc services.IdeaService) *IdeaHandler {
	return &IdeaHandler{svc: svc}
}

func (h *IdeaHandler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type PostIdeaRequest struct {
	Title string   `json:"title" binding:"required"`
	Pitch string   `json:"pitch"`
	Tags  []string `json:"tags"`
}

func (h *IdeaHandler) Post(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req PostIdeaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "IdeaHandler.Post", "invalid request body", err))
		return
	}

	i, err := h.svc.Post(c.Request.Context(), sess.UserID, &models.Idea{
		Title: req.Title,
		Pitch: req.Pitch,
		Tags:  req.Tags,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, i)
}

func (h *IdeaHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("idea_id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

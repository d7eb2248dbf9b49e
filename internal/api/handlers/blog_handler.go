package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/init-club/Init-Website-sub000/internal/models"
	pgrepo "github.com/init-club/Init-Website-sub000/internal/repositories/postgres"
	"github.com/init-club/Init-Website-sub000/internal/services"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

type BlogHandler struct {
	svc services.BlogService
}

func NewBlogHandler(svc services.BlogService) *BlogHandler {
	return &BlogHandler{svc: svc}
}

func (h *BlogHandler) ListPublished(c *gin.Context) {
	out, err := h.svc.ListPublished(c.Request.Context(), pgrepo.BlogFilter{
		Search: c.Query("q"),
		Tag:    c.Query("tag"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

func (h *BlogHandler) Get(c *gin.Context) {
	b, err := h.svc.Get(c.Request.Context(), c.Param("blog_id"))
	if err != nil {
		writeError(c, err)
		return
	}
	// Unpublished posts are only visible in the review queue.
	if b.Status != models.BlogPublished {
		writeError(c, utils.E(utils.CodeNotFound, "BlogHandler.Get", "blog not found", nil))
		return
	}
	c.JSON(http.StatusOK, b)
}

type SubmitBlogRequest struct {
	Title    string          `json:"title" binding:"required"`
	Summary  string          `json:"summary"`
	CoverURL string          `json:"cover_url"`
	Tags     []string        `json:"tags"`
	Content  json.RawMessage `json:"content"`
}

func (h *BlogHandler) Submit(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req SubmitBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "BlogHandler.Submit", "invalid request body", err))
		return
	}

	b, err := h.svc.Submit(c.Request.Context(), sess.UserID, &models.Blog{
		Title:    req.Title,
		Summary:  req.Summary,
		CoverURL: req.CoverURL,
		Tags:     req.Tags,
		Content:  datatypes.JSON(req.Content),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

func (h *BlogHandler) ListPending(c *gin.Context) {
	out, err := h.svc.ListPending(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

type ReviewBlogRequest struct {
	Approve bool `json:"approve"`
}

func (h *BlogHandler) Review(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req ReviewBlogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "BlogHandler.Review", "invalid request body", err))
		return
	}

	if err := h.svc.Review(c.Request.Context(), c.Param("blog_id"), sess.UserID, req.Approve); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

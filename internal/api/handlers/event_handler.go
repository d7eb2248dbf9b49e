package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/init-club/Init-Website-sub000/internal/models"
	"github.com/init-club/Init-Website-sub000/internal/services"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

type EventHandler struct {
	svc services.EventService
}

func NewEventHandler(svc services.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

// List returns upcoming and past events in one response, the way the events
// page renders them.
func (h *EventHandler) List(c *gin.Context) {
	upcoming, err := h.svc.ListUpcoming(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	past, err := h.svc.ListPast(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"upcoming": upcoming, "past": past})
}

type EventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	BannerURL   string    `json:"banner_url"`
	StartsAt    time.Time `json:"starts_at" binding:"required"`
	EndsAt      time.Time `json:"ends_at" binding:"required"`
}

func (h *EventHandler) Create(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "EventHandler.Create", "invalid request body", err))
		return
	}

	e, err := h.svc.Create(c.Request.Context(), &models.Event{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		BannerURL:   req.BannerURL,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (h *EventHandler) Update(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "EventHandler.Update", "invalid request body", err))
		return
	}

	e := &models.Event{
		ID:          c.Param("event_id"),
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		BannerURL:   req.BannerURL,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
	if err := h.svc.Update(c.Request.Context(), e); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("event_id")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

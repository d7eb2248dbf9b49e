package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/init-club/Init-Website-sub000/internal/models"
	"github.com/init-club/Init-Website-sub000/internal/services"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

type MemberHandler struct {
	svc services.MemberService
}

func NewMemberHandler(svc services.MemberService) *MemberHandler {
	return &MemberHandler{svc: svc}
}

func (h *MemberHandler) Me(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	m, err := h.svc.GetMe(c.Request.Context(), sess.UserID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

type CompleteProfileRequest struct {
	FullName string           `json:"full_name" binding:"required"`
	Bio      string           `json:"bio"`
	Skills   []string         `json:"skills"`
	Socials  *json.RawMessage `json:"socials,omitempty"`
}

// CompleteProfile finishes onboarding. Identity fields come from the
// session, never the body; the github login and avatar are whatever GitHub
// said they were.
func (h *MemberHandler) CompleteProfile(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	var req CompleteProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, "MemberHandler.CompleteProfile", "invalid request body", err))
		return
	}

	m := &models.Member{
		UserID:      sess.UserID,
		GithubLogin: sess.Name,
		FullName:    req.FullName,
		AvatarURL:   sess.AvatarURL,
		Bio:         req.Bio,
		Skills:      req.Skills,
	}
	if req.Socials != nil {
		m.Socials = datatypes.JSON(*req.Socials)
	}

	if err := h.svc.CompleteProfile(c.Request.Context(), m); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, m)
}

func (h *MemberHandler) List(c *gin.Context) {
	out, err := h.svc.List(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

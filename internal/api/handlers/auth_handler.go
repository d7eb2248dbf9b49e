package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/init-club/Init-Website-sub000/internal/auth"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

type AuthHandler struct {
	gotrue  *auth.Client
	state   *auth.StateSigner
	watcher *auth.Watcher
	siteURL string
	log     *logrus.Logger
}

func NewAuthHandler(gotrue *auth.Client, state *auth.StateSigner, watcher *auth.Watcher, siteURL string, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{gotrue: gotrue, state: state, watcher: watcher, siteURL: siteURL, log: log}
}

// Login starts the GitHub OAuth dance with a full-page redirect to GoTrue.
// Nothing is returned to the caller on the success path; navigation takes
// over.
func (h *AuthHandler) Login(c *gin.Context) {
	returnTo := c.Query("return_to")
	if !strings.HasPrefix(returnTo, "/") {
		returnTo = "/"
	}

	target := h.gotrue.AuthorizeURL("github", h.siteURL+"/auth/callback", h.state.Sign(returnTo))
	c.Redirect(http.StatusFound, target)
}

// Callback lands after GoTrue finishes with GitHub. The tokens themselves
// ride the URL fragment straight to the client; this endpoint validates the
// state, announces the sign-in and sends the browser on.
func (h *AuthHandler) Callback(c *gin.Context) {
	returnTo, err := h.state.Verify(c.Query("state"))
	if err != nil {
		h.log.WithError(err).Warn("oauth callback with bad state")
		c.Redirect(http.StatusFound, "/")
		return
	}

	if err := h.watcher.Publish(c.Request.Context(), auth.Event{Kind: auth.EventSignedIn}); err != nil {
		h.log.WithError(err).Warn("failed to publish sign-in event")
	}
	c.Redirect(http.StatusFound, returnTo)
}

// Logout revokes the session and then reports the redirect target. The
// revocation is awaited first: navigation must not race a live token.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	if err := h.gotrue.SignOut(c.Request.Context(), sess.AccessToken); err != nil {
		writeError(c, err)
		return
	}

	if err := h.watcher.Publish(c.Request.Context(), auth.Event{Kind: auth.EventSignedOut, UserID: sess.UserID}); err != nil {
		h.log.WithError(err).Warn("failed to publish sign-out event")
	}
	c.JSON(http.StatusOK, gin.H{"redirect": "/"})
}

// Refreshed lets the client report a token refresh so every instance
// re-runs its membership checks for this identity.
func (h *AuthHandler) Refreshed(c *gin.Context) {
	sess, ok := requireSession(c)
	if !ok {
		return
	}

	if err := h.watcher.Publish(c.Request.Context(), auth.Event{Kind: auth.EventTokenRefreshed, UserID: sess.UserID}); err != nil {
		writeError(c, utils.E(utils.CodeUnavailable, "AuthHandler.Refreshed", "failed to publish event", err))
		return
	}
	c.Status(http.StatusNoContent)
}

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/init-club/Init-Website-sub000/config"
	"github.com/init-club/Init-Website-sub000/internal/auth"
	"github.com/init-club/Init-Website-sub000/internal/gate"
	"github.com/init-club/Init-Website-sub000/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

type stubStatus struct {
	rows  []models.MemberStatus
	err   error
	calls int
}

func (s *stubStatus) MyStatus(context.Context, string) ([]models.MemberStatus, error) {
	s.calls++
	return s.rows, s.err
}

type stubRevoker struct{ calls int }

func (s *stubRevoker) SignOut(context.Context, string) error {
	s.calls++
	return nil
}

type stubNotifier struct{ msgs []string }

func (s *stubNotifier) Notify(_ context.Context, _, msg string) {
	s.msgs = append(s.msgs, msg)
}

func withSession(sess *models.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess != nil {
			c.Set(sessionKey, sess)
		}
		c.Next()
	}
}

func okHandler(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": true}) }

func doRequest(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) apiError {
	t.Helper()
	var e apiError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func memberSession() *models.Session {
	return &models.Session{UserID: "5f7e0c0a-0000-4000-8000-000000000001", AccessToken: "tok"}
}

func TestRequireMembershipDenies(t *testing.T) {
	status := &stubStatus{} // zero rows
	revoker := &stubRevoker{}
	notifier := &stubNotifier{}
	g := gate.NewMembershipGate(status, revoker, notifier, testLogger())

	r := gin.New()
	r.GET("/members/me", withSession(memberSession()), RequireMembership(g), okHandler)

	w := doRequest(r, http.MethodGet, "/members/me")

	assert.Equal(t, http.StatusForbidden, w.Code)
	e := decodeError(t, w)
	assert.Equal(t, gate.RootPath, e.Redirect)
	assert.NotEmpty(t, e.Message)
	assert.Equal(t, 1, revoker.calls)
	assert.Len(t, notifier.msgs, 1)
}

func TestRequireMembershipFailsOpenOnTransportError(t *testing.T) {
	status := &stubStatus{err: errors.New("connection reset")}
	revoker := &stubRevoker{}
	g := gate.NewMembershipGate(status, revoker, &stubNotifier{}, testLogger())

	r := gin.New()
	r.GET("/members/me", withSession(memberSession()), RequireMembership(g), okHandler)

	w := doRequest(r, http.MethodGet, "/members/me")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, revoker.calls)
}

func TestRequireMembershipRedirectsIncompleteProfile(t *testing.T) {
	status := &stubStatus{rows: []models.MemberStatus{{Role: models.RoleMember, ProfileCompleted: false}}}
	g := gate.NewMembershipGate(status, &stubRevoker{}, &stubNotifier{}, testLogger())

	r := gin.New()
	r.GET("/members/me", withSession(memberSession()), RequireMembership(g), okHandler)
	r.POST("/profile-setup", withSession(memberSession()), RequireMembership(g), okHandler)

	w := doRequest(r, http.MethodGet, "/members/me")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, gate.ProfileSetupPath, decodeError(t, w).Redirect)

	// Profile setup itself must stay reachable or onboarding deadlocks.
	w = doRequest(r, http.MethodPost, "/profile-setup")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireMembershipAllowsCompleteProfile(t *testing.T) {
	status := &stubStatus{rows: []models.MemberStatus{{Role: models.RoleMember, ProfileCompleted: true}}}
	g := gate.NewMembershipGate(status, &stubRevoker{}, &stubNotifier{}, testLogger())

	r := gin.New()
	r.GET("/members/me", withSession(memberSession()), RequireMembership(g), okHandler)

	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/members/me").Code)
}

func TestRequireReviewer(t *testing.T) {
	tests := []struct {
		name     string
		sess     *models.Session
		rows     []models.MemberStatus
		wantCode int
		wantCall int
	}{
		{"no session redirects without backend call", nil, nil, http.StatusForbidden, 0},
		{"plain member forbidden", memberSession(), []models.MemberStatus{{Role: models.RoleMember, ProfileCompleted: true}}, http.StatusForbidden, 1},
		{"semi_admin allowed", memberSession(), []models.MemberStatus{{Role: models.RoleSemiAdmin, ProfileCompleted: true}}, http.StatusOK, 1},
		{"admin allowed", memberSession(), []models.MemberStatus{{Role: models.RoleAdmin, ProfileCompleted: true}}, http.StatusOK, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status := &stubStatus{rows: tt.rows}
			g := gate.NewRoleGate(status, testLogger())

			r := gin.New()
			r.GET("/admin/blogs/pending", withSession(tt.sess), RequireReviewer(g), okHandler)

			w := doRequest(r, http.MethodGet, "/admin/blogs/pending")
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantCall, status.calls)
			if tt.wantCode == http.StatusForbidden {
				assert.Equal(t, gate.RootPath, decodeError(t, w).Redirect)
			}
		})
	}
}

func TestAuthenticateAndRequireSession(t *testing.T) {
	const secret = "test-secret"
	verifier := auth.NewTokenVerifier(config.Supabase{JWTSecret: secret})

	r := gin.New()
	r.Use(Authenticate(verifier))
	r.GET("/public", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"signed_in": Session(c) != nil})
	})
	r.GET("/private", RequireSession(), okHandler)

	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "5f7e0c0a-0000-4000-8000-000000000001",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	// No token: public renders, private rejects.
	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/public").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, http.MethodGet, "/private").Code)

	// Garbage token reads as no session rather than an error.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer nonsense")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Valid token opens the private route.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+raw)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

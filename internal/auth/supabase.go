package auth

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/init-club/Init-Website-sub000/config"
	"github.com/init-club/Init-Website-sub000/internal/utils"
)

// Client talks to the project's GoTrue instance. Only two operations are
// needed server-side: building the OAuth authorize redirect and revoking a
// session.
type Client struct {
	baseURL string
	anonKey string
	http    *http.Client
}

func NewClient(cfg config.Supabase) *Client {
	return &Client{
		baseURL: cfg.ProjectURL,
		anonKey: cfg.AnonKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// AuthorizeURL builds the full-page redirect that starts the OAuth dance.
// GoTrue handles the provider handshake and sends the browser back to
// redirectTo with tokens in the fragment.
func (c *Client) AuthorizeURL(provider, redirectTo, state string) string {
	q := url.Values{}
	q.Set("provider", provider)
	if redirectTo != "" {
		q.Set("redirect_to", redirectTo)
	}
	if state != "" {
		q.Set("state", state)
	}
	return c.baseURL + "/auth/v1/authorize?" + q.Encode()
}

// SignOut revokes the session behind accessToken. The caller must await it
// before any navigation that depends on the session being gone.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	const op = "auth.Client.SignOut"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/v1/logout", nil)
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to build request", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("apikey", c.anonKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return utils.E(utils.CodeUnavailable, op, "logout request failed", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNoContent || resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized:
		// Token already dead; the session is as signed-out as it gets.
		return nil
	case resp.StatusCode >= 500:
		return utils.E(utils.CodeUnavailable, op, "identity provider error", nil)
	default:
		return utils.E(utils.CodeInternal, op, "unexpected logout response "+resp.Status, nil)
	}
}

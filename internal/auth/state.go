package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// StateSigner signs the OAuth state parameter so the callback can prove the
// flow started here. Payload is the post-login return path.
type StateSigner struct {
	key []byte
	ttl time.Duration
}

func NewStateSigner(key string) *StateSigner {
	return &StateSigner{key: []byte(key), ttl: 10 * time.Minute}
}

func (s *StateSigner) Sign(returnTo string) string {
	ts := strconv.FormatInt(time.Now().Unix(), 10)
	payload := returnTo + "|" + ts
	mac := s.mac(payload)
	return base64.RawURLEncoding.EncodeToString([]byte(payload + "|" + mac))
}

// Verify returns the embedded return path. Tampered or expired states fail.
func (s *StateSigner) Verify(state string) (string, error) {
	raw, err := base64.RawURLEncoding.DecodeString(state)
	if err != nil {
		return "", fmt.Errorf("malformed state: %w", err)
	}
	// mac and timestamp are the last two segments; the return path itself
	// may contain the separator.
	i := strings.LastIndex(string(raw), "|")
	if i < 0 {
		return "", fmt.Errorf("malformed state")
	}
	rest, mac := string(raw[:i]), string(raw[i+1:])
	j := strings.LastIndex(rest, "|")
	if j < 0 {
		return "", fmt.Errorf("malformed state")
	}
	returnTo, ts := rest[:j], rest[j+1:]

	if !hmac.Equal([]byte(mac), []byte(s.mac(returnTo+"|"+ts))) {
		return "", fmt.Errorf("state signature mismatch")
	}

	sec, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return "", fmt.Errorf("malformed state timestamp")
	}
	if time.Since(time.Unix(sec, 0)) > s.ttl {
		return "", fmt.Errorf("state expired")
	}
	return returnTo, nil
}

func (s *StateSigner) mac(payload string) string {
	h := hmac.New(sha256.New, s.key)
	h.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(h.Sum(nil))
}

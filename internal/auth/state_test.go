package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStateSignerRoundTrip(t *testing.T) {
	s := NewStateSigner("test-key")

	state := s.Sign("/blogs/draft-42")
	returnTo, err := s.Verify(state)

	require.NoError(t, err)
	assert.Equal(t, "/blogs/draft-42", returnTo)
}

func TestStateSignerRejectsTampering(t *testing.T) {
	s := NewStateSigner("test-key")
	state := s.Sign("/events")

	_, err := s.Verify(state + "x")
	assert.Error(t, err)

	_, err = NewStateSigner("other-key").Verify(state)
	assert.Error(t, err)

	_, err = s.Verify("not-base64-%%%")
	assert.Error(t, err)
}

func TestStateSignerRejectsExpired(t *testing.T) {
	s := NewStateSigner("test-key")
	s.ttl = time.Nanosecond

	state := s.Sign("/")
	time.Sleep(time.Millisecond)

	_, err := s.Verify(state)
	assert.Error(t, err)
}

func TestStateSignerPathWithSeparator(t *testing.T) {
	s := NewStateSigner("test-key")

	state := s.Sign("/search?q=a|b")
	returnTo, err := s.Verify(state)

	require.NoError(t, err)
	assert.Equal(t, "/search?q=a|b", returnTo)
}

package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinswap/api/internal/pkg/gemini"
)

func TestChatService_Reply(t *testing.T) {
	gen := &fakeGenerator{reply: "Bring them to any collection point."}
	s := NewChatService(gen)

	_, err := s.Reply(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyMessage)

	reply, err := s.Reply(context.Background(), " Where do I drop batteries? ")
	require.NoError(t, err)
	assert.Equal(t, "Bring them to any collection point.", reply)
	assert.Contains(t, gen.prompt, "PinSwap")
	assert.Contains(t, gen.prompt, "User question: Where do I drop batteries?")

	gen.err = gemini.ErrMissingAPIKey
	_, err = s.Reply(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrChatNotConfigured)
}

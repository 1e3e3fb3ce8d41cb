package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pinswap/api/internal/pkg/gemini"
)

var (
	ErrEmptyMessage      = errors.New("missing message")
	ErrChatNotConfigured = gemini.ErrMissingAPIKey
	ErrChatUpstream      = gemini.ErrUpstream
)

const siteContext = `You are the virtual assistant of PinSwap, an eco-friendly platform for collecting used batteries.

ABOUT PINSWAP:
- People bring used batteries to collection points shown on the map
- Users earn points by handing in batteries and by checking in at locations
- Points can be exchanged for discount vouchers offered by businesses

MAIN FEATURES:
1. Battery collection: scan a photo of the batteries to identify their type and compute points
2. Collection map: find the nearest collection points
3. QR check-in: scan the QR code at a location to earn bonus points (50 points per check-in, once per day per location)
4. Vouchers: spend points on discount vouchers
5. Leaderboard: see user rankings by batteries collected and by points
6. History: review past collections and voucher exchanges

USER ROLES:
- Citizen: collects batteries, earns points, redeems vouchers, checks in
- Business: creates and manages its own vouchers, registers collection points
- Admin: manages the whole system, approves businesses, locks accounts

HOW POINTS WORK:
- Each battery type is worth a different number of points depending on size and toxicity
- Location check-in: 50 points each
- Points can be exchanged for vouchers

WHEN ANSWERING:
- Be short, friendly and easy to follow
- Focus on PinSwap features and how to use them
- Encourage users to protect the environment
- If a question is unrelated to PinSwap, politely decline and steer back to relevant topics`

type ContentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type ChatService struct {
	generator ContentGenerator
}

func NewChatService(generator ContentGenerator) *ChatService {
	return &ChatService{
		generator: generator,
	}
}

// Reply answers a visitor's question in the context of the site.
func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return "", ErrEmptyMessage
	}

	reply, err := s.generator.GenerateContent(ctx, buildPrompt(message))
	if err != nil {
		return "", fmt.Errorf("s.generator.GenerateContent -> %w", err)
	}

	return reply, nil
}

func buildPrompt(message string) string {
	return siteContext + "\n\nUser question: " + message + "\n\nAnswer (short and easy to understand):"
}

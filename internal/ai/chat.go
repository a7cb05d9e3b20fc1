package ai

import (
	"context"
)

type Turn struct {
	Role string `json:"role"` // "user" or "model"
	Text string `json:"text"`
}

const (
	chatKeyFallback = "Sorry, I couldn't get a response due to an API key configuration issue. Please check the setup instructions and restart the app."
	chatFallback    = "Sorry, I encountered an error. Please try again."
)

// Chat sends the prior turns plus the latest prompt and returns the model
// reply. Chat degrades gracefully: every failure yields a fixed fallback
// message instead of an error.
func (g *Gateway) Chat(ctx context.Context, prompt string, history []Turn) string {
	if !g.configured() {
		g.logger.Printf("ai: chat skipped: %v", ErrNotConfigured)
		return chatKeyFallback
	}

	contents := make([]content, 0, len(history)+1)
	for _, turn := range history {
		contents = append(contents, content{
			Role:  turn.Role,
			Parts: []part{{Text: turn.Text}},
		})
	}
	contents = append(contents, content{
		Role:  "user",
		Parts: []part{{Text: prompt}},
	})

	resp, err := g.generateContent(ctx, generateRequest{Contents: contents})
	if err != nil {
		g.logger.Printf("ai: chat failed: %v", err)
		return chatFallback
	}

	text := resp.text()
	if text == "" {
		return chatFallback
	}

	return text
}

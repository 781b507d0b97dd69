package ports

import (
	"context"
)

// ChatMessage is one role-tagged message in a conversation.
type ChatMessage struct {
	Role    string // "system", "user" or "assistant"
	Content string
}

// ChatRequest describes a chat-completion call.
type ChatRequest struct {
	Messages    []ChatMessage
	Model       string  // Empty selects the client's configured default
	Temperature float64 // Sampling temperature
	MaxTokens   int     // Upper bound on generated tokens
}

// ChatClient abstracts a chat-completion API.
// The pipeline only consumes the final concatenated text; streaming
// exists so callers can display tokens as they arrive.
type ChatClient interface {
	// Complete performs a blocking completion and returns the full text.
	Complete(ctx context.Context, req ChatRequest) (string, error)

	// CompleteStream performs a streaming completion, invoking onDelta
	// for each incremental chunk, and returns the concatenated text.
	// onDelta may be nil.
	CompleteStream(ctx context.Context, req ChatRequest, onDelta func(delta string)) (string, error)
}

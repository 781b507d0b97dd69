package mocks

import (
	"context"

	"github.com/user/reportsnap/pkg/ports"
)

// ChatClient is a mock implementation of ports.ChatClient.
type ChatClient struct {
	CompleteFunc       func(ctx context.Context, req ports.ChatRequest) (string, error)
	CompleteStreamFunc func(ctx context.Context, req ports.ChatRequest, onDelta func(string)) (string, error)

	// LastRequest records the most recent request for assertions.
	LastRequest ports.ChatRequest
}

func (m *ChatClient) Complete(ctx context.Context, req ports.ChatRequest) (string, error) {
	m.LastRequest = req
	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	return "", nil
}

func (m *ChatClient) CompleteStream(ctx context.Context, req ports.ChatRequest, onDelta func(string)) (string, error) {
	m.LastRequest = req
	if m.CompleteStreamFunc != nil {
		return m.CompleteStreamFunc(ctx, req, onDelta)
	}
	// Fall back to the blocking behavior so tests only stub one path.
	return m.Complete(ctx, req)
}

// Ensure ChatClient implements ports.ChatClient
var _ ports.ChatClient = (*ChatClient)(nil)

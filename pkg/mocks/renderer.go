// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/user/reportsnap/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
type Renderer struct {
	NameValue  string
	RenderFunc func(ctx context.Context, htmlPath, pngPath string, opts ports.ShotOptions) error

	// Calls counts Render invocations.
	Calls int
}

func (m *Renderer) Name() string {
	if m.NameValue != "" {
		return m.NameValue
	}
	return "mock"
}

func (m *Renderer) Render(ctx context.Context, htmlPath, pngPath string, opts ports.ShotOptions) error {
	m.Calls++
	if m.RenderFunc != nil {
		return m.RenderFunc(ctx, htmlPath, pngPath, opts)
	}
	return nil
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

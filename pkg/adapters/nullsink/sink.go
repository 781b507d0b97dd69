// Package nullsink provides a no-op debug sink implementation.
package nullsink

import (
	"github.com/user/reportsnap/pkg/ports"
)

// Sink is a no-op implementation of ports.DebugSink.
// It discards all debug output.
type Sink struct{}

// New creates a new null sink.
func New() *Sink {
	return &Sink{}
}

// Enabled returns false as this sink discards all output.
func (s *Sink) Enabled() bool {
	return false
}

// SaveRawResponse does nothing.
func (s *Sink) SaveRawResponse(data []byte) error {
	return nil
}

// SaveExtractedHTML does nothing.
func (s *Sink) SaveExtractedHTML(data []byte) error {
	return nil
}

// SaveAttemptsJSON does nothing.
func (s *Sink) SaveAttemptsJSON(data []byte) error {
	return nil
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)

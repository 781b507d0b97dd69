package mocks

import (
	"github.com/user/reportsnap/pkg/ports"
)

// DebugSink is a mock implementation of ports.DebugSink that records
// everything saved to it.
type DebugSink struct {
	EnabledValue bool

	RawResponse   []byte
	ExtractedHTML []byte
	AttemptsJSON  []byte
}

func (m *DebugSink) Enabled() bool {
	return m.EnabledValue
}

func (m *DebugSink) SaveRawResponse(data []byte) error {
	m.RawResponse = data
	return nil
}

func (m *DebugSink) SaveExtractedHTML(data []byte) error {
	m.ExtractedHTML = data
	return nil
}

func (m *DebugSink) SaveAttemptsJSON(data []byte) error {
	m.AttemptsJSON = data
	return nil
}

// Ensure DebugSink implements ports.DebugSink
var _ ports.DebugSink = (*DebugSink)(nil)

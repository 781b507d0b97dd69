// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"path/filepath"

	"github.com/user/reportsnap/pkg/ports"
)

// Sink saves debug output to files under a base directory.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
}

// New creates a new file sink.
func New(baseDir string, fs ports.FileSystem) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveRawResponse saves the full model response text.
func (s *Sink) SaveRawResponse(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "response.txt"), data)
}

// SaveExtractedHTML saves the HTML document recovered from the response.
func (s *Sink) SaveExtractedHTML(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "extracted.html"), data)
}

// SaveAttemptsJSON saves the renderer attempt records as JSON.
func (s *Sink) SaveAttemptsJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "attempts.json"), data)
}

// Ensure Sink implements ports.DebugSink
var _ ports.DebugSink = (*Sink)(nil)

// Package wkhtmltoimage captures HTML files as PNG images by invoking
// the wkhtmltoimage binary.
package wkhtmltoimage

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"github.com/user/reportsnap/pkg/ports"
	"github.com/user/reportsnap/pkg/render"
)

// defaultBinary is the command name looked up on PATH when no explicit
// binary path is configured.
const defaultBinary = "wkhtmltoimage"

// quality passed to the converter; 100 keeps the PNG lossless.
const quality = "100"

// Renderer implements ports.Renderer by shelling out to wkhtmltoimage.
type Renderer struct {
	binary string
	logger ports.Logger
}

// New creates a new wkhtmltoimage renderer. binary may be empty to use
// the PATH lookup.
func New(binary string, logger ports.Logger) *Renderer {
	if binary == "" {
		binary = defaultBinary
	}
	return &Renderer{
		binary: binary,
		logger: logger.WithComponent("wkhtmltoimage"),
	}
}

// Name identifies the backend.
func (r *Renderer) Name() string {
	return "wkhtmltoimage"
}

// Render invokes the converter as a subprocess. A missing binary is
// reported as unavailability so the selector moves on; the caller
// verifies the output file afterwards.
func (r *Renderer) Render(ctx context.Context, htmlPath, pngPath string, opts ports.ShotOptions) error {
	if _, err := exec.LookPath(r.binary); err != nil {
		return fmt.Errorf("%w: %s not installed", render.ErrBackendUnavailable, r.binary)
	}

	runCtx, cancel := context.WithTimeout(ctx, time.Duration(opts.TimeoutMs)*time.Millisecond)
	defer cancel()

	cmd := exec.CommandContext(runCtx, r.binary,
		"--quality", quality,
		"--width", fmt.Sprintf("%d", opts.ViewportWidth),
		htmlPath, pngPath,
	)

	r.logger.Debug("Running %s", cmd.String())
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s failed: %w (output: %s)", r.binary, err, output)
	}
	return nil
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

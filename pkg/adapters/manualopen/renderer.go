// Package manualopen is the terminal rendering fallback: it opens the
// HTML file in the user's default browser so a screenshot can be taken
// by hand, and always reports the render itself as failed.
package manualopen

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/user/reportsnap/pkg/ports"
)

type Renderer struct {
	logger ports.Logger
}

func NewRenderer(logger ports.Logger) *Renderer {
	return &Renderer{logger: logger}
}

func (r *Renderer) Name() string { return "manual-open" }

func (r *Renderer) Render(ctx context.Context, htmlPath, pngPath string, opts ports.ShotOptions) error {
	name, args := openCommand(htmlPath)
	if name == "" {
		return fmt.Errorf("no browser opener for %s", runtime.GOOS)
	}
	if err := exec.CommandContext(ctx, name, args...).Start(); err != nil {
		return fmt.Errorf("open default browser: %w", err)
	}
	r.logger.Warn("opened %s in the default browser, take the screenshot manually", htmlPath)
	return fmt.Errorf("automatic rendering unavailable, opened %s for manual capture", htmlPath)
}

func openCommand(path string) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{path}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", path}
	case "linux":
		return "xdg-open", []string{path}
	}
	return "", nil
}

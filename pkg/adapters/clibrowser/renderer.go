package clibrowser

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/user/reportsnap/pkg/ports"
	"github.com/user/reportsnap/pkg/render"
)

// InstalledRenderer captures screenshots with a browser found at one
// of the vendors' well-known installation paths.
type InstalledRenderer struct {
	fs     ports.FileSystem
	logger ports.Logger
}

func NewInstalledRenderer(fs ports.FileSystem, logger ports.Logger) *InstalledRenderer {
	return &InstalledRenderer{fs: fs, logger: logger}
}

func (r *InstalledRenderer) Name() string { return "cli-browser" }

func (r *InstalledRenderer) Render(ctx context.Context, htmlPath, pngPath string, opts ports.ShotOptions) error {
	for _, v := range vendors {
		for _, path := range v.installPaths() {
			if _, err := os.Stat(path); err != nil {
				continue
			}
			r.logger.Debug("found %s at %s", v.name, path)
			return capture(ctx, r.fs, r.logger, path, v.syntax, htmlPath, pngPath, opts)
		}
	}
	return fmt.Errorf("%w: no installed browser found", render.ErrBackendUnavailable)
}

// PathRenderer captures screenshots with a browser command resolved
// from PATH. It is a separate fallback tier behind InstalledRenderer
// because PATH entries may be wrapper scripts that ignore CLI flags.
type PathRenderer struct {
	fs     ports.FileSystem
	logger ports.Logger
}

func NewPathRenderer(fs ports.FileSystem, logger ports.Logger) *PathRenderer {
	return &PathRenderer{fs: fs, logger: logger}
}

func (r *PathRenderer) Name() string { return "path-browser" }

func (r *PathRenderer) Render(ctx context.Context, htmlPath, pngPath string, opts ports.ShotOptions) error {
	for _, v := range vendors {
		for _, cmd := range v.commands {
			path, err := exec.LookPath(cmd)
			if err != nil {
				continue
			}
			r.logger.Debug("found %s command %s at %s", v.name, cmd, path)
			return capture(ctx, r.fs, r.logger, path, v.syntax, htmlPath, pngPath, opts)
		}
	}
	return fmt.Errorf("%w: no browser command on PATH", render.ErrBackendUnavailable)
}

// capture runs the browser with the vendor's preferred screenshot
// syntax, then retries once with the alternate syntax when no output
// file appeared. Some builds silently accept the wrong form and exit
// zero, so the file check is the only reliable signal.
func capture(ctx context.Context, fs ports.FileSystem, logger ports.Logger, executable string, syntax screenshotSyntax, htmlPath, pngPath string, opts ports.ShotOptions) error {
	err := runOnce(ctx, executable, syntax, htmlPath, pngPath, opts)
	if exists, existsErr := fs.Exists(pngPath); existsErr == nil && exists {
		return nil
	}
	if err != nil {
		logger.Warn("browser screenshot failed: %v", err)
	}
	logger.Debug("no output file, retrying with alternate screenshot syntax")
	if err := runOnce(ctx, executable, syntax.other(), htmlPath, pngPath, opts); err != nil {
		return fmt.Errorf("browser screenshot retry: %w", err)
	}
	if exists, existsErr := fs.Exists(pngPath); existsErr != nil || !exists {
		return fmt.Errorf("browser exited without producing %s", pngPath)
	}
	return nil
}

func runOnce(ctx context.Context, executable string, syntax screenshotSyntax, htmlPath, pngPath string, opts ports.ShotOptions) error {
	runCtx, cancel := context.WithTimeout(ctx, time.Duration(opts.TimeoutMs)*time.Millisecond)
	defer cancel()

	args := []string{
		"--headless",
		"--disable-gpu",
		fmt.Sprintf("--window-size=%d,%d", opts.ViewportWidth, opts.ViewportHeight),
	}
	args = append(args, syntax.screenshotArgs(pngPath)...)
	args = append(args, htmlPath)

	cmd := exec.CommandContext(runCtx, executable, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("%s: %w (%s)", executable, err, string(out))
	}
	return nil
}

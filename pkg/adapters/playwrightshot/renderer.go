// Package playwrightshot captures HTML files as PNG images using a
// Playwright-driven Chromium instance.
package playwrightshot

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/user/reportsnap/pkg/ports"
	"github.com/user/reportsnap/pkg/render"
)

// canvasWaitMs bounds the wait for a canvas element to appear when the
// document scripts one. Expiry is not fatal.
const canvasWaitMs = 5000

// imagesLoadedScript resolves once every <img> on the page reports
// complete, or on the window load event otherwise.
const imagesLoadedScript = `
() => {
	return new Promise((resolve) => {
		const allImagesLoaded = Array.from(document.images).every(img => img.complete);
		if (allImagesLoaded) {
			resolve();
		} else {
			window.addEventListener('load', resolve);
		}
	});
}
`

// Renderer implements ports.Renderer using playwright-go. Every call
// launches and tears down its own Chromium process; nothing is shared
// between concurrent captures.
type Renderer struct {
	fs     ports.FileSystem
	logger ports.Logger
}

// New creates a new Playwright renderer.
func New(fs ports.FileSystem, logger ports.Logger) *Renderer {
	return &Renderer{
		fs:     fs,
		logger: logger.WithComponent("playwright"),
	}
}

// Name identifies the backend.
func (r *Renderer) Name() string {
	return "playwright"
}

// Render navigates a fresh Chromium page to the HTML file and captures
// a screenshot. Load waits are best-effort: a navigation or
// network-idle timeout is logged and the capture proceeds with
// whatever the page managed to draw.
func (r *Renderer) Render(ctx context.Context, htmlPath, pngPath string, opts ports.ShotOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	pw, err := playwright.Run()
	if err != nil {
		// Driver or browsers not installed on this host.
		return fmt.Errorf("%w: playwright: %v", render.ErrBackendUnavailable, err)
	}
	defer pw.Stop()

	absHTML, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("resolve html path: %w", err)
	}
	absPNG, err := filepath.Abs(pngPath)
	if err != nil {
		return fmt.Errorf("resolve png path: %w", err)
	}

	// Local-file access must be allowed so the report can reference
	// sibling assets; web security is off for the same reason.
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Args: []string{
			"--disable-web-security",
			"--allow-file-access-from-files",
		},
	})
	if err != nil {
		return fmt.Errorf("%w: launch chromium: %v", render.ErrBackendUnavailable, err)
	}
	defer browser.Close()

	page, err := browser.NewPage(playwright.BrowserNewPageOptions{
		Viewport: &playwright.Size{
			Width:  opts.ViewportWidth,
			Height: opts.ViewportHeight,
		},
		DeviceScaleFactor: playwright.Float(opts.ScaleFactor),
	})
	if err != nil {
		return fmt.Errorf("new page: %w", err)
	}

	fileURL := "file://" + absHTML
	r.logger.Debug("Navigating to %s", fileURL)

	if _, err := page.Goto(fileURL, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(opts.TimeoutMs)),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	}); err != nil {
		r.logger.Warn("Page load timed out or failed, continuing anyway: %s", err)
	} else if err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(float64(opts.TimeoutMs)),
	}); err != nil {
		r.logger.Warn("Network idle wait timed out, continuing anyway: %s", err)
	}

	// Fixed settle delay so scripted content finishes drawing.
	if opts.WaitTimeMs > 0 {
		page.WaitForTimeout(float64(opts.WaitTimeMs))
	}

	// Charts render into canvases; give them a bounded extra wait.
	if r.sourceHasCanvas(absHTML) {
		if _, err := page.WaitForSelector("canvas", playwright.PageWaitForSelectorOptions{
			Timeout: playwright.Float(canvasWaitMs),
		}); err != nil {
			r.logger.Warn("Canvas element did not appear: %s", err)
		}
	}

	if _, err := page.Evaluate(imagesLoadedScript); err != nil {
		r.logger.Warn("Image load check failed: %s", err)
	}

	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:           playwright.String(absPNG),
		FullPage:       playwright.Bool(opts.FullPage),
		OmitBackground: playwright.Bool(false),
	}); err != nil {
		return fmt.Errorf("screenshot: %w", err)
	}

	return nil
}

// sourceHasCanvas reports whether the HTML document contains a canvas
// element. Reading the source is cheaper than querying the DOM when
// the page never had one.
func (r *Renderer) sourceHasCanvas(absHTML string) bool {
	content, err := r.fs.ReadFile(absHTML)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(content)), "<canvas")
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

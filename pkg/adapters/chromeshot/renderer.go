package chromeshot

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"

	"github.com/user/reportsnap/pkg/ports"
	"github.com/user/reportsnap/pkg/render"
)

// canvasWait bounds the wait for a canvas element when the document
// scripts one. Expiry is not fatal.
const canvasWait = 5 * time.Second

// imagesCompleteExpr is polled until every <img> reports loaded.
const imagesCompleteExpr = `Array.from(document.images).every(img => img.complete)`

// fullScreenshotQuality is the capture quality for full-page shots.
// PNG output ignores it below 100, so keep it lossless.
const fullScreenshotQuality = 100

// Renderer implements ports.Renderer using chromedp. Each call runs an
// isolated Chrome process that is torn down before returning.
type Renderer struct {
	chromePath string
	fs         ports.FileSystem
	logger     ports.Logger
}

// New creates a new chromedp renderer. chromePath may be empty, in
// which case CHROME_PATH and system default locations are searched.
func New(chromePath string, fs ports.FileSystem, logger ports.Logger) *Renderer {
	return &Renderer{
		chromePath: chromePath,
		fs:         fs,
		logger:     logger.WithComponent("chromedp"),
	}
}

// Name identifies the backend.
func (r *Renderer) Name() string {
	return "chromedp"
}

// Render opens the HTML file in a fresh headless Chrome and captures a
// screenshot. Navigation and readiness waits are bounded and
// best-effort; their expiry degrades to capturing whatever rendered.
func (r *Renderer) Render(ctx context.Context, htmlPath, pngPath string, opts ports.ShotOptions) error {
	chromePath := ResolveChromePath(r.chromePath)
	if chromePath == "" {
		return fmt.Errorf("%w: chrome not found, set CHROME_PATH or install Chrome/Chromium", render.ErrBackendUnavailable)
	}

	absHTML, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("resolve html path: %w", err)
	}

	chromedpOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.ExecPath(chromePath),
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		// The report references local sibling assets via file://.
		chromedp.Flag("disable-web-security", true),
		chromedp.Flag("allow-file-access-from-files", true),
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, chromedpOpts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	fileURL := "file://" + absHTML
	r.logger.Debug("Navigating to %s", fileURL)

	// Navigation under a bounded deadline. Expiry only warns; the
	// browser context stays usable for the capture below.
	navCtx, navCancel := context.WithTimeout(browserCtx, time.Duration(opts.TimeoutMs)*time.Millisecond)
	err = chromedp.Run(navCtx,
		chromedp.EmulateViewport(
			int64(opts.ViewportWidth),
			int64(opts.ViewportHeight),
			chromedp.EmulateScale(opts.ScaleFactor),
		),
		// Transparent pages capture black otherwise.
		emulation.SetDefaultBackgroundColorOverride().
			WithColor(&cdp.RGBA{R: 255, G: 255, B: 255, A: 1}),
		chromedp.Navigate(fileURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	navCancel()
	if err != nil {
		r.logger.Warn("Page load timed out or failed, continuing anyway: %s", err)
	}

	// Fixed settle delay so scripted content finishes drawing.
	if opts.WaitTimeMs > 0 {
		if err := chromedp.Run(browserCtx,
			chromedp.Sleep(time.Duration(opts.WaitTimeMs)*time.Millisecond),
		); err != nil {
			return fmt.Errorf("settle wait: %w", err)
		}
	}

	if r.sourceHasCanvas(absHTML) {
		canvasCtx, canvasCancel := context.WithTimeout(browserCtx, canvasWait)
		if err := chromedp.Run(canvasCtx,
			chromedp.WaitReady("canvas", chromedp.ByQuery),
		); err != nil {
			r.logger.Warn("Canvas element did not appear: %s", err)
		}
		canvasCancel()
	}

	// Wait for all images to finish loading, bounded.
	var imagesLoaded bool
	pollCtx, pollCancel := context.WithTimeout(browserCtx, canvasWait)
	if err := chromedp.Run(pollCtx,
		chromedp.Poll(imagesCompleteExpr, &imagesLoaded),
	); err != nil {
		r.logger.Warn("Image load check failed: %s", err)
	}
	pollCancel()

	var buf []byte
	if opts.FullPage {
		err = chromedp.Run(browserCtx, chromedp.FullScreenshot(&buf, fullScreenshotQuality))
	} else {
		err = chromedp.Run(browserCtx, chromedp.CaptureScreenshot(&buf))
	}
	if err != nil {
		return fmt.Errorf("capture screenshot: %w", err)
	}

	if err := r.fs.WriteFile(pngPath, buf); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// sourceHasCanvas reports whether the HTML document contains a canvas element.
func (r *Renderer) sourceHasCanvas(absHTML string) bool {
	content, err := r.fs.ReadFile(absHTML)
	if err != nil {
		return false
	}
	return strings.Contains(strings.ToLower(string(content)), "<canvas")
}

// Ensure Renderer implements ports.Renderer
var _ ports.Renderer = (*Renderer)(nil)

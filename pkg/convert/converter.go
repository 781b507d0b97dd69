// Package convert orchestrates turning HTML content or files into PNG
// images under a managed output directory tree.
package convert

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/user/reportsnap/pkg/ports"
	"github.com/user/reportsnap/pkg/render"
)

// Request describes one conversion. Exactly one of Content or HTMLPath
// supplies the source document; HTMLPath wins when both are set.
type Request struct {
	// Content is inline HTML, written to a temporary file before
	// rendering.
	Content string

	// HTMLPath is an existing HTML file to render.
	HTMLPath string

	// PNGPath is the full output path. Takes precedence over ImageName.
	PNGPath string

	// ImageName is a bare file name placed in the image directory.
	// A .png extension is appended when missing.
	ImageName string

	// KeepHTML disables removal of the temporary file written for
	// Content after a successful conversion.
	KeepHTML bool

	// Options tune the screenshot. Zero values select defaults.
	Options render.Options
}

// Converter renders conversion requests through a backend selector,
// managing the output, image and HTML directories.
type Converter struct {
	outputDir string
	imageDir  string
	htmlDir   string
	selector  *render.Selector
	fs        ports.FileSystem
	logger    ports.Logger
}

// New creates a Converter rooted at outputDir. Relative imageDir and
// htmlDir are resolved against outputDir; all three are created.
func New(outputDir, imageDir, htmlDir string, selector *render.Selector, fs ports.FileSystem, logger ports.Logger) (*Converter, error) {
	if outputDir == "" {
		outputDir = "output"
	}
	if imageDir == "" {
		imageDir = "images"
	}
	if htmlDir == "" {
		htmlDir = "html_files"
	}
	if !filepath.IsAbs(imageDir) {
		imageDir = filepath.Join(outputDir, imageDir)
	}
	if !filepath.IsAbs(htmlDir) {
		htmlDir = filepath.Join(outputDir, htmlDir)
	}

	c := &Converter{
		outputDir: outputDir,
		imageDir:  imageDir,
		htmlDir:   htmlDir,
		selector:  selector,
		fs:        fs,
		logger:    logger,
	}
	for _, dir := range []string{outputDir, imageDir, htmlDir} {
		if err := fs.MkdirAll(dir); err != nil {
			return nil, fmt.Errorf("create output directory %s: %w", dir, err)
		}
	}
	c.logger.Debug("output directory: %s, images: %s, html: %s", outputDir, imageDir, htmlDir)
	return c, nil
}

// ImageDir returns the directory PNG files are placed in by default.
func (c *Converter) ImageDir() string { return c.imageDir }

// HTMLDir returns the directory temporary HTML files are written to.
func (c *Converter) HTMLDir() string { return c.htmlDir }

// Convert runs the request synchronously.
func (c *Converter) Convert(ctx context.Context, req Request) render.Result {
	if req.HTMLPath != "" {
		return c.convertFile(ctx, req)
	}
	if req.Content != "" {
		return c.convertContent(ctx, req)
	}
	return render.Failure(fmt.Sprintf("%v: no HTML content or file provided", render.ErrInvalidArgument))
}

// ConvertAsync runs the request in a goroutine, delivering the result
// on the returned channel.
func (c *Converter) ConvertAsync(ctx context.Context, req Request) <-chan render.Result {
	ch := make(chan render.Result, 1)
	go func() {
		defer close(ch)
		ch <- c.Convert(ctx, req)
	}()
	return ch
}

func (c *Converter) convertContent(ctx context.Context, req Request) render.Result {
	timestamp := time.Now().Format("20060102_150405")
	htmlPath := filepath.Join(c.htmlDir, fmt.Sprintf("temp_%s.html", timestamp))

	imageName := req.ImageName
	if imageName == "" {
		imageName = fmt.Sprintf("image_%s.png", timestamp)
	}
	pngPath := req.PNGPath
	if pngPath == "" {
		pngPath = filepath.Join(c.imageDir, ensurePNG(imageName))
	}

	if err := c.fs.WriteFile(htmlPath, []byte(req.Content)); err != nil {
		return render.Failure(fmt.Sprintf("write temporary HTML file: %v", err))
	}
	c.logger.Debug("saved HTML content to %s", htmlPath)

	result := c.selector.Render(ctx, htmlPath, pngPath, req.Options)

	if result.Success && !req.KeepHTML {
		if err := c.fs.Remove(htmlPath); err != nil {
			c.logger.Warn("failed to remove temporary HTML file %s: %v", htmlPath, err)
		}
	}
	return result
}

func (c *Converter) convertFile(ctx context.Context, req Request) render.Result {
	pngPath := req.PNGPath
	switch {
	case pngPath != "":
		if dir := filepath.Dir(pngPath); dir != "." {
			if err := c.fs.MkdirAll(dir); err != nil {
				return render.Failure(fmt.Sprintf("create output directory: %v", err))
			}
		}
	case req.ImageName != "":
		pngPath = filepath.Join(c.imageDir, ensurePNG(req.ImageName))
	default:
		base := filepath.Base(req.HTMLPath)
		name := strings.TrimSuffix(base, filepath.Ext(base))
		pngPath = filepath.Join(c.imageDir, name+".png")
	}

	return c.selector.Render(ctx, req.HTMLPath, pngPath, req.Options)
}

func ensurePNG(name string) string {
	if strings.HasSuffix(strings.ToLower(name), ".png") {
		return name
	}
	return name + ".png"
}

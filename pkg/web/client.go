package web

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/user/reportsnap/pkg/ports"
)

// Client delegates conversions to a remote instance of this service,
// for deployments that split report generation and rendering onto
// separate hosts.
type Client struct {
	baseURL string
	client  *http.Client
	logger  ports.Logger
}

// NewClient creates a conversion service client.
func NewClient(baseURL string, logger ports.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		logger:  logger,
	}
}

// Convert submits a conversion request and returns the remote image
// path. The remote path is only meaningful when both sides share a
// filesystem.
func (c *Client) Convert(ctx context.Context, req ConversionRequest) (string, error) {
	if req.HTMLContent == "" && req.HTMLFilePath == "" {
		return "", fmt.Errorf("either html_content or html_file_path is required")
	}
	if req.HTMLFilePath != "" {
		abs, err := filepath.Abs(req.HTMLFilePath)
		if err != nil {
			return "", fmt.Errorf("resolve html path: %w", err)
		}
		req.HTMLFilePath = abs
	}
	if req.PNGFilePath != "" {
		abs, err := filepath.Abs(req.PNGFilePath)
		if err != nil {
			return "", fmt.Errorf("resolve png path: %w", err)
		}
		req.PNGFilePath = abs
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshal conversion request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/convert", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("conversion service request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read conversion response: %w", err)
	}

	var convResp ConversionResponse
	if err := json.Unmarshal(respBody, &convResp); err != nil {
		return "", fmt.Errorf("conversion service error (%d): %s", resp.StatusCode, string(respBody))
	}
	if !convResp.Success {
		msg := convResp.Error
		if msg == "" {
			msg = fmt.Sprintf("status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("conversion service: %s", msg)
	}

	c.logger.Debug("remote conversion produced %s", convResp.ImagePath)
	return convResp.ImagePath, nil
}

// Health checks the remote service.
func (c *Client) Health(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("conversion service unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("conversion service unhealthy: status %d", resp.StatusCode)
	}
	return nil
}

// Render lets the client stand in as a rendering backend, so a local
// backend chain can end with a remote conversion service.
func (c *Client) Render(ctx context.Context, htmlPath, pngPath string, opts ports.ShotOptions) error {
	fullPage := opts.FullPage
	_, err := c.Convert(ctx, ConversionRequest{
		HTMLFilePath: htmlPath,
		PNGFilePath:  pngPath,
		Options: &RenderOptions{
			Width:      opts.ViewportWidth,
			Height:     opts.ViewportHeight,
			Scale:      opts.ScaleFactor,
			TimeoutMs:  opts.TimeoutMs,
			WaitTimeMs: opts.WaitTimeMs,
			FullPage:   &fullPage,
		},
	})
	return err
}

// Name implements ports.Renderer.
func (c *Client) Name() string { return "remote-service" }

var _ ports.Renderer = (*Client)(nil)

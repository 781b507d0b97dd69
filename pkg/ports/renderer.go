package ports

import (
	"context"
)

// ShotOptions configures a single HTML-to-PNG capture.
// Zero values are filled with defaults by render.Options.Normalized;
// backends may assume all fields are populated.
type ShotOptions struct {
	ViewportWidth  int     // Browser viewport width in CSS pixels
	ViewportHeight int     // Browser viewport height in CSS pixels
	ScaleFactor    float64 // Device pixel ratio multiplier; higher = sharper output
	TimeoutMs      int     // Max wait for navigation/network-idle in milliseconds
	WaitTimeMs     int     // Fixed settle delay after load in milliseconds
	FullPage       bool    // Capture the entire scrollable page instead of the viewport
}

// Renderer abstracts one concrete strategy for turning an HTML file
// into a PNG image. Each call owns its browser or subprocess for the
// duration of the attempt; implementations are not pooled.
type Renderer interface {
	// Name identifies the backend in logs and attempt records.
	Name() string

	// Render captures htmlPath into a PNG at pngPath.
	// A nil error does not by itself mean success; the caller verifies
	// that the destination file exists after the attempt.
	Render(ctx context.Context, htmlPath, pngPath string, opts ShotOptions) error
}

// Package render selects among rendering backends to turn an HTML file
// into a PNG image.
package render

import (
	"github.com/user/reportsnap/pkg/ports"
)

// Default capture settings. These mirror the defaults of the report
// layout the templates are written for.
const (
	DefaultViewportWidth  = 1200
	DefaultViewportHeight = 800
	DefaultScaleFactor    = 1.5
	DefaultTimeoutMs      = 60000
	DefaultWaitTimeMs     = 5000
)

// Options configures a capture. The zero value means "use defaults";
// callers override any subset.
type Options struct {
	ViewportWidth  int
	ViewportHeight int
	ScaleFactor    float64
	TimeoutMs      int
	WaitTimeMs     int
	FullPage       *bool // nil defaults to true
}

// Normalized returns ShotOptions with every zero field replaced by its
// default, ready to hand to a backend.
func (o Options) Normalized() ports.ShotOptions {
	s := ports.ShotOptions{
		ViewportWidth:  o.ViewportWidth,
		ViewportHeight: o.ViewportHeight,
		ScaleFactor:    o.ScaleFactor,
		TimeoutMs:      o.TimeoutMs,
		WaitTimeMs:     o.WaitTimeMs,
		FullPage:       true,
	}
	if s.ViewportWidth <= 0 {
		s.ViewportWidth = DefaultViewportWidth
	}
	if s.ViewportHeight <= 0 {
		s.ViewportHeight = DefaultViewportHeight
	}
	if s.ScaleFactor <= 0 {
		s.ScaleFactor = DefaultScaleFactor
	}
	if s.TimeoutMs <= 0 {
		s.TimeoutMs = DefaultTimeoutMs
	}
	if s.WaitTimeMs < 0 {
		s.WaitTimeMs = 0
	} else if s.WaitTimeMs == 0 {
		s.WaitTimeMs = DefaultWaitTimeMs
	}
	if o.FullPage != nil {
		s.FullPage = *o.FullPage
	}
	return s
}

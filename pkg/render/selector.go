package render

import (
	"context"
	"fmt"

	"github.com/user/reportsnap/pkg/ports"
)

// Selector tries an ordered list of rendering backends until one
// produces the destination file. Success is judged by the file
// existing after the attempt, not by the backend's return value, so a
// browser that silently wrote nothing still falls through to the next
// strategy.
type Selector struct {
	backends []ports.Renderer
	fs       ports.FileSystem
	logger   ports.Logger
}

// NewSelector creates a Selector over the given backends, tried in
// slice order.
func NewSelector(backends []ports.Renderer, fs ports.FileSystem, logger ports.Logger) *Selector {
	return &Selector{
		backends: backends,
		fs:       fs,
		logger:   logger.WithComponent("render"),
	}
}

// Render attempts each backend in priority order. A backend error is
// recorded and swallowed; only exhaustion of the whole chain surfaces
// as a failed Result. The returned Result always carries the full
// attempt history.
func (s *Selector) Render(ctx context.Context, htmlPath, pngPath string, opts Options) Result {
	if htmlPath == "" {
		return Failure(ErrInvalidArgument.Error())
	}
	if exists, err := s.fs.Exists(htmlPath); err != nil || !exists {
		return Failure(fmt.Sprintf("%s: %s", ErrSourceNotFound.Error(), htmlPath))
	}

	shot := opts.Normalized()

	var attempts []Attempt
	for _, backend := range s.backends {
		s.logger.Debug("Trying backend %s", backend.Name())

		err := backend.Render(ctx, htmlPath, pngPath, shot)
		if err != nil {
			s.logger.Warn("Backend %s failed: %s", backend.Name(), err)
		}

		exists, existsErr := s.fs.Exists(pngPath)
		if existsErr == nil && exists {
			attempt := Attempt{Backend: backend.Name()}
			if err != nil {
				// The file appeared despite the error; keep the
				// diagnostic for the record.
				attempt.Error = err.Error()
			}
			attempts = append(attempts, attempt)
			s.logger.Info("Backend %s produced %s", backend.Name(), pngPath)
			return Result{
				Success:    true,
				OutputPath: pngPath,
				Attempts:   attempts,
			}
		}

		msg := "no output file produced"
		if err != nil {
			msg = err.Error()
		}
		attempts = append(attempts, Attempt{Backend: backend.Name(), Error: msg})
	}

	return Result{
		Success:  false,
		Message:  ErrAllBackendsFailed.Error(),
		Attempts: attempts,
	}
}

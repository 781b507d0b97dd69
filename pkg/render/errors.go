package render

import "errors"

// Sentinel errors for render and conversion operations.
var (
	// ErrInvalidArgument means neither HTML content nor a source path
	// was supplied. Fatal to the call, never retried.
	ErrInvalidArgument = errors.New("either html content or an html file path is required")

	// ErrSourceNotFound means the referenced HTML file does not exist.
	ErrSourceNotFound = errors.New("html source file not found")

	// ErrBackendUnavailable means a backend could not run at all, for
	// example a missing binary. The selector logs it and moves on.
	ErrBackendUnavailable = errors.New("rendering backend unavailable")

	// ErrAllBackendsFailed means every backend was tried and none
	// produced the destination file.
	ErrAllBackendsFailed = errors.New("all rendering backends failed")

	// ErrRenderTimeout marks a bounded wait that expired. It is
	// recorded but never aborts a conversion; backends proceed with
	// whatever the page managed to draw.
	ErrRenderTimeout = errors.New("render wait timed out")
)

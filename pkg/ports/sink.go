package ports

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate processing artifacts for troubleshooting
// a report run without cluttering the output directories.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveRawResponse saves the full model response text.
	SaveRawResponse(data []byte) error

	// SaveExtractedHTML saves the HTML document recovered from the response.
	SaveExtractedHTML(data []byte) error

	// SaveAttemptsJSON saves the renderer attempt records as JSON.
	SaveAttemptsJSON(data []byte) error
}

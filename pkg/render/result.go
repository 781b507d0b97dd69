package render

// Attempt records one backend try within a conversion.
type Attempt struct {
	Backend string `json:"backend"`
	Error   string `json:"error,omitempty"` // Empty on success
}

// Result is the outcome of a render or conversion call.
// Success implies OutputPath names a file that existed at the moment of
// return; failure implies OutputPath is empty.
type Result struct {
	Success    bool      `json:"success"`
	OutputPath string    `json:"output_path,omitempty"`
	Message    string    `json:"message,omitempty"`
	Attempts   []Attempt `json:"attempts,omitempty"`
}

// Failure builds a failed Result with the given diagnostic message.
func Failure(message string) Result {
	return Result{Success: false, Message: message}
}

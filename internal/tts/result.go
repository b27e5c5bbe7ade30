package tts

import "time"

// ProcessingResult reports the outcome of a single synthesis call. It is
// created fresh per call and never mutated afterwards.
type ProcessingResult struct {
	// OutputFile is the path the audio was written to. Empty on failure,
	// since no file is committed.
	OutputFile string
	// Success reports whether audio was synthesized and written.
	Success bool
	// ErrorMessage holds the failure cause when Success is false.
	ErrorMessage string
	// Duration is the wall-clock time from entry to write completion.
	Duration time.Duration
}

func failureResult(duration time.Duration, err error) *ProcessingResult {
	return &ProcessingResult{
		Success:      false,
		ErrorMessage: err.Error(),
		Duration:     duration,
	}
}

package usecase

import "errors"

// Error definitions shared by the chat and prediction usecases
var (
	ErrEmptyMessage       = errors.New("message is empty")
	ErrGenerationFailed   = errors.New("generation failed")
	ErrHistoryUnavailable = errors.New("chat history is not configured")
	ErrModelNotLoaded     = errors.New("model not loaded")
	ErrInvalidRequest     = errors.New("invalid request")
)

// InferenceError wraps a failure raised while running the loaded model
type InferenceError struct {
	Err error
}

func (e *InferenceError) Error() string { return "inference error: " + e.Err.Error() }

func (e *InferenceError) Unwrap() error { return e.Err }

// ReloadError wraps a failed model reload
type ReloadError struct {
	Err error
}

func (e *ReloadError) Error() string { return "reload failed: " + e.Err.Error() }

func (e *ReloadError) Unwrap() error { return e.Err }

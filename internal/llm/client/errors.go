package llmclient

import "errors"

var (
	// ErrInvalidJSON means the provider returned text that is not the
	// requested JSON object. The attempt failed; the caller may retry.
	ErrInvalidJSON = errors.New("llmclient: invalid json from LLM")

	// ErrNotConfigured means the provider credentials or model are missing.
	ErrNotConfigured = errors.New("llmclient: provider not configured")
)

// PermanentError indicates an error that will not resolve with retries.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}

package domain

import "errors"

var (
	ErrInvalidData      = errors.New("invalid data")
	ErrInvalidBlockType = errors.New("invalid block type")
	ErrUnknownList      = errors.New("unknown list")
	ErrUnknownHandle    = errors.New("unknown record handle")
	ErrHandleMismatch   = errors.New("handle belongs to another list")
	ErrRequestFailed    = errors.New("request failed")
)

// RequestFailedError is reported to fetch callbacks. Err is set when the URL
// itself could not be parsed.
type RequestFailedError struct {
	URL string
	Err error
}

func (e *RequestFailedError) Error() string {
	if e.Err != nil {
		return "Request failed: " + e.URL + ": " + e.Err.Error()
	}
	return "Request failed: " + e.URL
}

func (e *RequestFailedError) Unwrap() error {
	return e.Err
}

func (e *RequestFailedError) Is(target error) bool {
	return target == ErrRequestFailed
}

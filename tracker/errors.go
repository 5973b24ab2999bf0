package tracker

import "fmt"

// TrackError is a custom error type for instrumentation errors
type TrackError struct {
	Message string
}

func (e TrackError) Error() string {
	return fmt.Sprintf("tracker error: %s", e.Message)
}

// ErrInvalidConfig creates an error for invalid configuration
func ErrInvalidConfig(msg string) error {
	return TrackError{Message: fmt.Sprintf("invalid config: %s", msg)}
}

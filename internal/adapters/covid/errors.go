package covid

import "fmt"

// apiError represents a non-success response from the disease API.
type apiError struct {
	StatusCode int
	Message    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("covid: %s (status %d)", e.Message, e.StatusCode)
}

type ClientError struct {
	Message string
	Err     error
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("covid client: %s: %v", e.Message, e.Err)
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

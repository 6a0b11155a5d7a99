package flu

import "fmt"

// apiError represents a non-success response from the epidata API.
type apiError struct {
	StatusCode int
	Message    string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("flu: %s (status %d)", e.Message, e.StatusCode)
}

type ClientError struct {
	Message string
	Err     error
}

func (e *ClientError) Error() string {
	return fmt.Sprintf("flu client: %s: %v", e.Message, e.Err)
}

func (e *ClientError) Unwrap() error {
	return e.Err
}

package remote

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is a non-success answer of the remote API. Message is the API's
// own text, empty when it sent none, and is safe to show to the console user.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote api: %d %s", e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("remote api: %d %s", e.Status, e.Message)
}

// MalformedResponseError reports a response body that does not match the
// schema expected for the endpoint.
type MalformedResponseError struct {
	Endpoint string
	Reason   string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("remote api: malformed response from %s: %s", e.Endpoint, e.Reason)
}

func malformed(endpoint, format string, args ...any) error {
	return &MalformedResponseError{Endpoint: endpoint, Reason: fmt.Sprintf(format, args...)}
}

// IsUnauthorized reports whether err is a 401 from the remote API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

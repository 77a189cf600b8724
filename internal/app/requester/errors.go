package requester

import "fmt"

// TransportError is a failure below HTTP: connection refused, DNS, timeout.
type TransportError struct {
	URL string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport error for %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ProtocolError is a response with a non-2xx status.
type ProtocolError struct {
	URL        string
	StatusCode int
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.StatusCode, e.URL)
}

package jinakit

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingAPIKey is returned by NewClient when no API key was given
	// and the JINA_API_KEY environment variable is not set.
	ErrMissingAPIKey = errors.New("jinakit: no API key provided and JINA_API_KEY is not set")

	// ErrEmptyBatch is returned when EncodeBatch is called with no texts.
	ErrEmptyBatch = errors.New("jinakit: batch must contain at least one text")
)

// TransportError covers connection failures and non-2xx HTTP responses.
// It is the only error kind the retry policy treats as transient.
type TransportError struct {
	StatusCode int // zero when the request never reached the server
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("jinakit: embeddings request failed with status %d", e.StatusCode)
	}
	return fmt.Sprintf("jinakit: embeddings request failed: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError is a response that parsed fine but has no data collection.
// Detail carries the service's own explanation when one was provided.
// It is never retried.
type ServiceError struct {
	Detail string
}

func (e *ServiceError) Error() string {
	return "jinakit: " + e.Detail
}

// RetryExhaustedError wraps the last transport error once every retry
// attempt has been used up.
type RetryExhaustedError struct {
	Attempts uint
	Err      error
}

func (e *RetryExhaustedError) Error() string {
	return fmt.Sprintf("jinakit: giving up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *RetryExhaustedError) Unwrap() error { return e.Err }

// ResponseShapeError reports a data collection whose length does not match
// the submitted batch. No partial result is returned alongside it.
type ResponseShapeError struct {
	Want int
	Got  int
}

func (e *ResponseShapeError) Error() string {
	return fmt.Sprintf("jinakit: expected %d embeddings, service returned %d", e.Want, e.Got)
}

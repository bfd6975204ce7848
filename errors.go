package ollamaclient

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure modes.
// These can be checked with errors.Is().
var (
	// ErrTooManyMessages indicates a history-aware call was given more than
	// one new message. History-aware calls carry at most one new turn; prior
	// turns come from the history store.
	ErrTooManyMessages = errors.New("ollamaclient: request carries more than one new message")

	// ErrNoMessage indicates a successful response arrived without the
	// expected assistant message.
	ErrNoMessage = errors.New("ollamaclient: response contains no message")
)

// StatusError reports a non-success HTTP status from the server.
// Body holds the response body text when it could be read, otherwise a
// description of the read failure.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ollamaclient: server returned status %d: %s", e.StatusCode, e.Body)
}

// TransportError reports that the request could not be sent or the response
// body could not be read at all.
type TransportError struct {
	Op  string // "send" or "read"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("ollamaclient: %s failed: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// DecodeError reports that a response body, or one streamed frame, did not
// parse into the expected shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("ollamaclient: decode response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// IsStatusError checks if an error is a non-success status from the server.
func IsStatusError(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr)
}

// IsTransportError checks if an error is a network-level send or read failure.
func IsTransportError(err error) bool {
	var transportErr *TransportError
	return errors.As(err, &transportErr)
}

// IsDecodeError checks if an error is a response shape mismatch.
func IsDecodeError(err error) bool {
	var decodeErr *DecodeError
	return errors.As(err, &decodeErr)
}

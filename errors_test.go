package ollamaclient

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestStatusError_Message(t *testing.T) {
	err := &StatusError{StatusCode: 500, Body: "model failed to load"}

	if !strings.Contains(err.Error(), "500") {
		t.Errorf("error %q does not mention the status code", err.Error())
	}
	if !strings.Contains(err.Error(), "model failed to load") {
		t.Errorf("error %q does not carry the body", err.Error())
	}
}

func TestTransportError_Unwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &TransportError{Op: "send", Err: cause}

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}

func TestDecodeError_Unwrap(t *testing.T) {
	err := &DecodeError{Err: ErrNoMessage}

	if !errors.Is(err, ErrNoMessage) {
		t.Error("expected errors.Is to reach ErrNoMessage")
	}
}

func TestErrorPredicates(t *testing.T) {
	statusErr := fmt.Errorf("call failed: %w", &StatusError{StatusCode: 404, Body: "missing"})
	transportErr := fmt.Errorf("call failed: %w", &TransportError{Op: "read", Err: errors.New("eof")})
	decodeErr := fmt.Errorf("call failed: %w", &DecodeError{Err: errors.New("bad json")})

	tests := []struct {
		name      string
		err       error
		status    bool
		transport bool
		decode    bool
	}{
		{"status", statusErr, true, false, false},
		{"transport", transportErr, false, true, false},
		{"decode", decodeErr, false, false, true},
		{"nil", nil, false, false, false},
		{"plain", errors.New("other"), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStatusError(tt.err); got != tt.status {
				t.Errorf("IsStatusError = %v, want %v", got, tt.status)
			}
			if got := IsTransportError(tt.err); got != tt.transport {
				t.Errorf("IsTransportError = %v, want %v", got, tt.transport)
			}
			if got := IsDecodeError(tt.err); got != tt.decode {
				t.Errorf("IsDecodeError = %v, want %v", got, tt.decode)
			}
		})
	}
}

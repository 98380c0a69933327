// Package chainerr defines the error kinds shared by the SOCKS wire
// codecs, the proxy-chain establisher, and the session state machine.
package chainerr

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Codecs and the establisher return these directly
// (or via errors.As for RequestFailedError below); callers compare with
// errors.Is/errors.As rather than string-matching a log line.
var (
	// ErrUnsupportedVersion is returned when the first byte from a client
	// is neither 0x04 nor 0x05.
	ErrUnsupportedVersion = errors.New("unsupported socks version")

	// ErrProtocolError is returned when a frame field violates the
	// variant's invariants: reserved byte nonzero, wrong version in a
	// reply, or an unrecognized command code.
	ErrProtocolError = errors.New("socks protocol error")

	// ErrUnsupportedCommand is returned for a SOCKS5 ATYP other than
	// IPv4, or any other well-formed but unimplemented feature.
	ErrUnsupportedCommand = errors.New("unsupported socks command or address type")

	// ErrUnsupportedAuthMethod is returned when a SOCKS5 client does not
	// offer the "no authentication" method.
	ErrUnsupportedAuthMethod = errors.New("client did not offer no-authentication method")

	// ErrAuthRejected is returned when a SOCKS5 upstream hop does not
	// select the "no authentication" method.
	ErrAuthRejected = errors.New("upstream hop rejected no-authentication method")
)

// RequestFailedError reports a non-success reply code from a SOCKS4 or
// SOCKS5 hop. Code carries the raw wire value (SOCKS4 CD or SOCKS5 REP).
type RequestFailedError struct {
	Code byte
}

func (e *RequestFailedError) Error() string {
	return fmt.Sprintf("request failed with code %d", e.Code)
}

// NewRequestFailed builds a RequestFailedError for the given wire code.
func NewRequestFailed(code byte) error {
	return &RequestFailedError{Code: code}
}

// AsRequestFailed reports whether err is (or wraps) a RequestFailedError
// and, if so, returns its code.
func AsRequestFailed(err error) (byte, bool) {
	var rf *RequestFailedError
	if errors.As(err, &rf) {
		return rf.Code, true
	}
	return 0, false
}

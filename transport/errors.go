package transport

import (
	"errors"
	"fmt"
)

// ConnectivityError reports that a request failed at the transport level
// (connection lost, dial failure) rather than being rejected by the
// service.
type ConnectivityError struct {
	Method string
	Err    error
}

// Error implements error.
func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("connectivity lost during %s: %v", e.Method, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *ConnectivityError) Unwrap() error { return e.Err }

// IsConnectivity reports whether err is (or wraps) a ConnectivityError.
func IsConnectivity(err error) bool {
	var ce *ConnectivityError

	return errors.As(err, &ce)
}

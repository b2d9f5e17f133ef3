// Package errors holds the sentinel errors shared across the messaging layer.
// Parsing and integrity failures carry structured context and live next to
// the types that raise them.
package errors

import sterrors "errors"

var (
	ErrNotConnected    = sterrors.New("rfbus: not connected, call Connect first")
	ErrConnClosed      = sterrors.New("rfbus: connection is closed")
	ErrHandlerRequired = sterrors.New("rfbus: message handler is required")
	ErrSubjectRequired = sterrors.New("rfbus: subject is required")
)

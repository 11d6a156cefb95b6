package transport

import "errors"

// Transport errors.
var (
	// ErrNoConn is returned when no packet connection is configured.
	ErrNoConn = errors.New("transport: no packet connection configured")

	// ErrNoHandler is returned when no handler is configured.
	ErrNoHandler = errors.New("transport: no handler configured")

	// ErrAlreadyStarted is returned when Start is called twice.
	ErrAlreadyStarted = errors.New("transport: already started")

	// ErrClosed is returned when the demux has been closed.
	ErrClosed = errors.New("transport: closed")

	// ErrInvalidAddress is returned when a send address is missing.
	ErrInvalidAddress = errors.New("transport: invalid address")
)

// maxDatagramSize bounds the read buffer. A STUN message never exceeds
// the 16-bit length field plus its header, which fits comfortably.
const maxDatagramSize = 64 << 10

package conn

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Op names the lifecycle step an Error originates from.
type Op string

const (
	OpResolve    Op = "resolve"
	OpSocket     Op = "socket"
	OpSetsockopt Op = "setsockopt"
	OpBind       Op = "bind"
	OpListen     Op = "listen"
	OpConnect    Op = "connect"
	OpAccept     Op = "accept"
	OpRead       Op = "read"
	OpWrite      Op = "write"
	OpReadLine   Op = "readline"
	OpClose      Op = "close"
	OpAddress    Op = "address"
)

var (
	// ErrNotConnected reports I/O attempted before a handle exists.
	ErrNotConnected = errors.New("socket is not connected")

	// ErrAlreadyConnected reports a second Connect on a connector.
	// Connectors are single-use: a failed attempt spends them too.
	ErrAlreadyConnected = errors.New("socket already exists")

	// ErrLineNotFound reports that a full lookahead window, or the
	// remainder of a closing stream, held no line terminator.
	ErrLineNotFound = errors.New("line not found")

	// ErrInvalidAddr reports a peer address that cannot be formatted.
	ErrInvalidAddr = errors.New("invalid peer address")

	// ErrUnknownNetwork reports a network name this package does not
	// dial or listen on.
	ErrUnknownNetwork = errors.New("unknown network")
)

// Error ties a failing step to the endpoint it was working against and
// the underlying cause, usually a unix.Errno or a resolver error.
// errors.Is sees through it:
//
//	errors.Is(err, unix.ECONNREFUSED)
type Error struct {
	Op   Op
	Net  string
	Addr string
	Err  error
}

func (e *Error) Error() string {
	s := string(e.Op)
	if e.Net != "" {
		s += " " + e.Net
	}
	if e.Addr != "" {
		s += " " + e.Addr
	}
	return s + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Temporary reports whether the failing call may be retried with some
// hope of success. Accept loops use it to tell a peer that vanished
// mid-handshake (carry on) from descriptor or buffer exhaustion
// (stop and let the operator intervene).
func (e *Error) Temporary() bool {
	var errno unix.Errno
	if !errors.As(e.Err, &errno) {
		return false
	}
	switch errno {
	case unix.ECONNABORTED, unix.EINTR, unix.EAGAIN:
		return true
	}
	return false
}

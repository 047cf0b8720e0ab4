package conn

import (
	"io"
	"net"
)

const (
	// LineEnd terminates every line produced by WriteLine.
	LineEnd = "\r\n"

	// LookaheadWindow bounds how many bytes ReadLine inspects before it
	// gives up on finding a terminator. A line, terminator included,
	// must fit in the window.
	LookaheadWindow = 4096

	// Backlog is the pending-connection queue depth requested when a
	// Server starts listening. Deep enough that bursty dialers are not
	// refused while the accept loop catches up.
	Backlog = 10000

	// Auto stands for "let the library pick the address": the wildcard
	// address when binding, loopback when connecting.
	Auto = "[auto]"
)

// Conn is one established byte channel with CRLF framing on top.
// Every socket kind in this package satisfies it.
type Conn interface {
	io.ReadWriteCloser
	ReadLine() (string, error)
	WriteLine(string) (int, error)
	LocalAddr() net.Addr
	RemoteAddr() net.Addr
	Address() (net.Addr, net.Addr)
}

// Listener accepts inbound Conns on a bound local endpoint.
type Listener interface {
	io.Closer
	Accept() (Conn, error)
	Network() string
	Address() net.Addr
}

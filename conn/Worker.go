package conn

import (
	"net"
	"net/netip"
	"strings"
)

// Worker is the server-side end of one accepted connection: a Socket
// plus the peer address captured by accept. Workers outlive the Server
// that produced them.
type Worker struct {
	Socket
	peer netip.AddrPort
}

// Peer returns the address captured at accept time.
func (worker *Worker) Peer() netip.AddrPort {
	return worker.peer
}

// ClientHostname reverse-resolves the peer address through the platform
// resolver.
func (worker *Worker) ClientHostname() (string, error) {
	if !worker.peer.IsValid() {
		return "", &Error{Op: OpResolve, Net: worker.network, Err: ErrInvalidAddr}
	}
	names, err := net.LookupAddr(worker.peer.Addr().String())
	if err != nil {
		return "", &Error{Op: OpResolve, Net: worker.network, Addr: worker.peer.String(), Err: err}
	}
	if len(names) == 0 {
		return "", &Error{Op: OpResolve, Net: worker.network, Addr: worker.peer.String(), Err: ErrInvalidAddr}
	}
	return strings.TrimSuffix(names[0], "."), nil
}

// ClientAddr formats the peer address in dotted-decimal form, without
// the port.
func (worker *Worker) ClientAddr() (string, error) {
	if !worker.peer.IsValid() {
		return "", &Error{Op: OpAddress, Net: worker.network, Err: ErrInvalidAddr}
	}
	return worker.peer.Addr().String(), nil
}

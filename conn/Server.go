package conn

import (
	"net"

	"golang.org/x/sys/unix"
)

// Server owns a listening socket. Connect binds and starts listening;
// AcceptWorker then yields one Worker per inbound connection. Like
// Client, a Server is single-use.
type Server struct {
	Socket
	ep   *Endpoint
	used bool
}

// NewServer returns an inbound connector. Listening works on "tcp4";
// other networks fail during Connect when the OS refuses to listen.
func NewServer(network string) *Server {
	server := &Server{}
	server.network = network
	return server
}

// Connect resolves name:port passively, binds the socket with address
// reuse enabled and starts listening with a Backlog-deep queue. Address
// reuse lets a restarted server take the port back while the previous
// instance's connections still linger in teardown.
func (server *Server) Connect(name string, port int) error {
	if server.used {
		return &Error{Op: OpConnect, Net: server.network, Addr: name, Err: ErrAlreadyConnected}
	}
	server.used = true
	fd, ep, err := establish(server.network, name, port, true, server)
	if err != nil {
		return err
	}
	server.ep = ep
	server.attach(fd, ep.Network)
	return nil
}

func (server *Server) finishConnect(fd int, ep *Endpoint) error {
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		return &Error{Op: OpSetsockopt, Net: ep.Network, Addr: ep.String(), Err: err}
	}
	if err := unix.Bind(fd, ep.sockaddr()); err != nil {
		return &Error{Op: OpBind, Net: ep.Network, Addr: ep.String(), Err: err}
	}
	if err := unix.Listen(fd, Backlog); err != nil {
		return &Error{Op: OpListen, Net: ep.Network, Addr: ep.String(), Err: err}
	}
	return nil
}

// AcceptWorker blocks for the next inbound connection and wraps it in a
// Worker carrying the peer address captured at accept time. A failure
// is per-call and leaves the Server listening; check Temporary on the
// returned *Error before abandoning the loop.
func (server *Server) AcceptWorker() (*Worker, error) {
	for {
		fd := int(server.fd.Load())
		if fd <= 0 {
			return nil, &Error{Op: OpAccept, Net: server.network, Err: ErrNotConnected}
		}
		nfd, sa, err := unix.Accept(fd)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			addr := ""
			if server.laddr.IsValid() {
				addr = server.laddr.String()
			}
			return nil, &Error{Op: OpAccept, Net: server.network, Addr: addr, Err: err}
		}
		unix.CloseOnExec(nfd)
		worker := &Worker{peer: sockaddrToAddrPort(sa)}
		worker.mode = server.mode
		worker.attach(nfd, server.network)
		return worker, nil
	}
}

// Accept adapts AcceptWorker to the Listener interface.
func (server *Server) Accept() (Conn, error) {
	worker, err := server.AcceptWorker()
	if err != nil {
		return nil, err
	}
	return worker, nil
}

// Endpoint returns the resolved local endpoint, nil before a
// successful Connect.
func (server *Server) Endpoint() *Endpoint {
	return server.ep
}

// Address reports the bound local address, completing the Listener
// interface.
func (server *Server) Address() net.Addr {
	return server.LocalAddr()
}

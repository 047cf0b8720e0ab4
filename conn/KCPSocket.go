package conn

import (
	"bufio"
	"io"
	"net"

	"github.com/pkg/errors"
	"github.com/xtaci/kcp-go/v5"
)

// FEC profile shared by both ends of a KCP channel.
const (
	kcpDataShards   = 10
	kcpParityShards = 3
)

// KCPSocket carries the line protocol over a KCP session, for paths
// where TCP's loss recovery is too slow. Same framing, same lookahead
// window as Socket.
type KCPSocket struct {
	session *kcp.UDPSession
	reader  *bufio.Reader
	mode    LineMode
}

func newKCPSocket(session *kcp.UDPSession) *KCPSocket {
	return &KCPSocket{
		session: session,
		reader:  bufio.NewReaderSize(session, LookaheadWindow),
	}
}

// Session exposes the underlying KCP session for tuning.
func (socket *KCPSocket) Session() *kcp.UDPSession {
	return socket.session
}

func (socket *KCPSocket) SetLineMode(mode LineMode) {
	socket.mode = mode
}

func (socket *KCPSocket) Close() error {
	return socket.session.Close()
}

func (socket *KCPSocket) Read(p []byte) (n int, err error) {
	return socket.reader.Read(p)
}

func (socket *KCPSocket) Write(p []byte) (n int, err error) {
	return socket.session.Write(p)
}

func (socket *KCPSocket) ReadLine() (string, error) {
	line, err := readLine(socket.reader, socket.mode)
	if err == io.EOF {
		return "", nil
	}
	if err == ErrLineNotFound {
		return "", &Error{Op: OpReadLine, Net: "kcp4", Addr: socket.session.RemoteAddr().String(), Err: err}
	}
	if err != nil {
		return "", &Error{Op: OpRead, Net: "kcp4", Addr: socket.session.RemoteAddr().String(), Err: err}
	}
	return line, nil
}

func (socket *KCPSocket) WriteLine(s string) (int, error) {
	n, err := socket.session.Write(append([]byte(s), LineEnd...))
	if err != nil {
		return n, &Error{Op: OpWrite, Net: "kcp4", Addr: socket.session.RemoteAddr().String(), Err: err}
	}
	return n, nil
}

func (socket *KCPSocket) RemoteAddr() net.Addr {
	return socket.session.RemoteAddr()
}

func (socket *KCPSocket) LocalAddr() net.Addr {
	return socket.session.LocalAddr()
}

func (socket *KCPSocket) Address() (net.Addr, net.Addr) {
	return socket.session.LocalAddr(), socket.session.RemoteAddr()
}

// KCPListener accepts KCP sessions the way Server accepts TCP
// connections.
type KCPListener struct {
	listener *kcp.Listener
}

func (listener *KCPListener) AcceptKCP() (*KCPSocket, error) {
	session, err := listener.listener.AcceptKCP()
	if err != nil {
		return nil, &Error{Op: OpAccept, Net: "kcp4", Addr: listener.listener.Addr().String(), Err: err}
	}
	return newKCPSocket(session), nil
}

func (listener *KCPListener) Accept() (Conn, error) {
	socket, err := listener.AcceptKCP()
	if err != nil {
		return nil, err
	}
	return socket, nil
}

func (listener *KCPListener) Close() error {
	return listener.listener.Close()
}

func (listener *KCPListener) Network() string {
	return "kcp4"
}

func (listener *KCPListener) Address() net.Addr {
	return listener.listener.Addr()
}

// NewKCPSocket dials a KCP endpoint. Resolution follows the same rules
// as Client.Connect.
func NewKCPSocket(name string, port int) (Conn, error) {
	ep, err := resolveEndpoint("kcp4", name, port, false)
	if err != nil {
		return nil, err
	}
	session, err := kcp.DialWithOptions(ep.String(), nil, kcpDataShards, kcpParityShards)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return newKCPSocket(session), nil
}

// NewKCPListener binds a KCP listener on name:port.
func NewKCPListener(name string, port int) (Listener, error) {
	ep, err := resolveEndpoint("kcp4", name, port, true)
	if err != nil {
		return nil, err
	}
	listener, err := kcp.ListenWithOptions(ep.String(), nil, kcpDataShards, kcpParityShards)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &KCPListener{listener: listener}, nil
}

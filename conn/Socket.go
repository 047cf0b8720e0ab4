package conn

import (
	"bufio"
	"io"
	"net"
	"net/netip"
	"sync/atomic"

	"golang.org/x/sys/unix"
)

// Socket owns exactly one socket descriptor and layers the lookahead
// window for line reading over it. The zero value has no channel; a
// descriptor arrives through Connect (on Client and Server) or through
// acceptance (Worker). Sockets have pointer semantics: copying one
// would alias the descriptor, so don't.
//
// A Socket is not safe for concurrent use of the same operation from
// two goroutines. Close is the exception and may race anything.
type Socket struct {
	fd      atomic.Int32
	network string
	laddr   netip.AddrPort
	raddr   netip.AddrPort
	mode    LineMode
	br      *bufio.Reader
}

// fdReader feeds the lookahead window straight from the descriptor.
type fdReader struct {
	socket *Socket
}

func (r *fdReader) Read(p []byte) (int, error) {
	for {
		fd := int(r.socket.fd.Load())
		if fd <= 0 {
			return 0, ErrNotConnected
		}
		n, _, err := unix.Recvfrom(fd, p, 0)
		if err == unix.EINTR {
			continue
		}
		if err != nil {
			return 0, err
		}
		if n == 0 && len(p) > 0 {
			return 0, io.EOF
		}
		return n, nil
	}
}

// attach takes ownership of fd and snapshots the channel's addresses.
func (socket *Socket) attach(fd int, network string) {
	socket.network = network
	socket.br = bufio.NewReaderSize(&fdReader{socket: socket}, LookaheadWindow)
	socket.fd.Store(int32(fd))
	if sa, err := unix.Getsockname(fd); err == nil {
		socket.laddr = sockaddrToAddrPort(sa)
	}
	if sa, err := unix.Getpeername(fd); err == nil {
		socket.raddr = sockaddrToAddrPort(sa)
	}
}

func (socket *Socket) opErr(op Op, err error) error {
	addr := ""
	if socket.raddr.IsValid() {
		addr = socket.raddr.String()
	}
	return &Error{Op: op, Net: socket.network, Addr: addr, Err: err}
}

// Read fills p with up to len(p) bytes, draining the lookahead window
// before touching the descriptor. A graceful close by the peer reports
// io.EOF.
func (socket *Socket) Read(p []byte) (n int, err error) {
	if socket.fd.Load() <= 0 {
		return 0, socket.opErr(OpRead, ErrNotConnected)
	}
	n, err = socket.br.Read(p)
	if err != nil && err != io.EOF {
		err = socket.opErr(OpRead, err)
	}
	return
}

// Peek blocks until at least one byte is available, then copies up to
// len(p) buffered bytes into p without consuming them.
func (socket *Socket) Peek(p []byte) (n int, err error) {
	if socket.fd.Load() <= 0 {
		return 0, socket.opErr(OpRead, ErrNotConnected)
	}
	if len(p) == 0 {
		return 0, nil
	}
	if _, err = socket.br.Peek(1); err != nil {
		if err == io.EOF {
			return 0, io.EOF
		}
		return 0, socket.opErr(OpRead, err)
	}
	n = socket.br.Buffered()
	if n > len(p) {
		n = len(p)
	}
	window, _ := socket.br.Peek(n)
	copy(p, window)
	return n, nil
}

// Write sends p in a single call, no partial-write retry.
func (socket *Socket) Write(p []byte) (n int, err error) {
	fd := int(socket.fd.Load())
	if fd <= 0 {
		return 0, socket.opErr(OpWrite, ErrNotConnected)
	}
	for {
		n, err = unix.Write(fd, p)
		if err == unix.EINTR {
			continue
		}
		break
	}
	if err != nil {
		return 0, socket.opErr(OpWrite, err)
	}
	return n, nil
}

// ReadLine returns the next line with its terminator stripped. A peer
// that closed before sending anything yields ("", nil); closing
// mid-line, or LookaheadWindow bytes without a terminator, yield
// ErrLineNotFound.
func (socket *Socket) ReadLine() (string, error) {
	if socket.fd.Load() <= 0 {
		return "", socket.opErr(OpReadLine, ErrNotConnected)
	}
	line, err := readLine(socket.br, socket.mode)
	if err == io.EOF {
		return "", nil
	}
	if err == ErrLineNotFound {
		return "", socket.opErr(OpReadLine, err)
	}
	if err != nil {
		return "", socket.opErr(OpRead, err)
	}
	return line, nil
}

// WriteLine appends LineEnd to s and writes it. The returned count
// includes the terminator.
func (socket *Socket) WriteLine(s string) (int, error) {
	return socket.Write(append([]byte(s), LineEnd...))
}

// SetLineMode switches how ReadLine recognizes terminators. Set it
// before reading; a Server passes its mode on to accepted Workers.
func (socket *Socket) SetLineMode(mode LineMode) {
	socket.mode = mode
}

// CloseWrite half-closes the channel: the peer reads end-of-stream
// while this end keeps reading. Blocked reads on the peer's side wake
// up, which is what makes two-way piping unwind cleanly.
func (socket *Socket) CloseWrite() error {
	fd := int(socket.fd.Load())
	if fd <= 0 {
		return socket.opErr(OpClose, ErrNotConnected)
	}
	if err := unix.Shutdown(fd, unix.SHUT_WR); err != nil {
		return &Error{Op: OpClose, Net: socket.network, Err: err}
	}
	return nil
}

// Close releases the descriptor exactly once. Further closes are no-ops
// and further I/O fails with ErrNotConnected.
func (socket *Socket) Close() error {
	fd := socket.fd.Swap(0)
	if fd <= 0 {
		return nil
	}
	if err := unix.Close(int(fd)); err != nil {
		return &Error{Op: OpClose, Net: socket.network, Err: err}
	}
	return nil
}

// Dup clones the channel into an independently owned Socket with its
// own descriptor and a fresh, empty lookahead window; bytes already
// buffered here do not travel.
func (socket *Socket) Dup() (*Socket, error) {
	fd := int(socket.fd.Load())
	if fd <= 0 {
		return nil, socket.opErr(OpSocket, ErrNotConnected)
	}
	nfd, err := unix.Dup(fd)
	if err != nil {
		return nil, socket.opErr(OpSocket, err)
	}
	unix.CloseOnExec(nfd)
	dup := &Socket{mode: socket.mode}
	dup.attach(nfd, socket.network)
	return dup, nil
}

// Fd exposes the descriptor, 0 when no channel exists.
func (socket *Socket) Fd() int {
	return int(socket.fd.Load())
}

// Network reports the network the socket was established on.
func (socket *Socket) Network() string {
	return socket.network
}

func (socket *Socket) LocalAddr() net.Addr {
	return socket.netAddr(socket.laddr)
}

func (socket *Socket) RemoteAddr() net.Addr {
	return socket.netAddr(socket.raddr)
}

func (socket *Socket) Address() (net.Addr, net.Addr) {
	return socket.LocalAddr(), socket.RemoteAddr()
}

func (socket *Socket) netAddr(ap netip.AddrPort) net.Addr {
	if !ap.IsValid() {
		return nil
	}
	if socket.network == "udp4" {
		return net.UDPAddrFromAddrPort(ap)
	}
	return net.TCPAddrFromAddrPort(ap)
}

func sockaddrToAddrPort(sa unix.Sockaddr) netip.AddrPort {
	if sa4, ok := sa.(*unix.SockaddrInet4); ok {
		return netip.AddrPortFrom(netip.AddrFrom4(sa4.Addr), uint16(sa4.Port))
	}
	return netip.AddrPort{}
}

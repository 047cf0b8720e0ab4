package conn

import (
	"bufio"
	"io"
	"net"

	"github.com/pkg/errors"
	"golang.org/x/crypto/ssh"

	"snet/utils/common"
)

// SSHConfig describes the intermediate ssh server a connection is
// tunnelled through.
type SSHConfig struct {
	Addr     string // ssh server host; empty reuses the target host
	Port     int    // ssh server port, 22 when zero
	User     string
	Password string // password auth, used when KeyFile is empty
	KeyFile  string // private key auth, preferred when set
}

// SSHSocket carries the line protocol over a channel tunnelled through
// an ssh connection.
type SSHSocket struct {
	sshClient *ssh.Client
	socket    net.Conn
	reader    *bufio.Reader
	mode      LineMode
}

func (socket *SSHSocket) SetLineMode(mode LineMode) {
	socket.mode = mode
}

func (socket *SSHSocket) Read(p []byte) (n int, err error) {
	return socket.reader.Read(p)
}

func (socket *SSHSocket) Write(p []byte) (n int, err error) {
	return socket.socket.Write(p)
}

// Close tears down the tunnelled channel first and the ssh connection
// after, reporting the first failure.
func (socket *SSHSocket) Close() error {
	err := socket.socket.Close()
	if cerr := socket.sshClient.Close(); err == nil {
		err = cerr
	}
	return err
}

func (socket *SSHSocket) ReadLine() (string, error) {
	line, err := readLine(socket.reader, socket.mode)
	if err == io.EOF {
		return "", nil
	}
	if err == ErrLineNotFound {
		return "", &Error{Op: OpReadLine, Net: "ssh4", Addr: socket.socket.RemoteAddr().String(), Err: err}
	}
	if err != nil {
		return "", &Error{Op: OpRead, Net: "ssh4", Addr: socket.socket.RemoteAddr().String(), Err: err}
	}
	return line, nil
}

func (socket *SSHSocket) WriteLine(s string) (int, error) {
	n, err := socket.socket.Write(append([]byte(s), LineEnd...))
	if err != nil {
		return n, &Error{Op: OpWrite, Net: "ssh4", Addr: socket.socket.RemoteAddr().String(), Err: err}
	}
	return n, nil
}

func (socket *SSHSocket) RemoteAddr() net.Addr {
	return socket.socket.RemoteAddr()
}

func (socket *SSHSocket) LocalAddr() net.Addr {
	return socket.socket.LocalAddr()
}

func (socket *SSHSocket) Address() (net.Addr, net.Addr) {
	return socket.socket.LocalAddr(), socket.socket.RemoteAddr()
}

// NewSSHSocket connects to name:port through the ssh server in cfg.
func NewSSHSocket(name string, port int, cfg SSHConfig) (Conn, error) {
	auth, err := sshAuth(cfg)
	if err != nil {
		return nil, err
	}
	host := cfg.Addr
	if host == "" {
		host = name
	}
	sshPort := cfg.Port
	if sshPort == 0 {
		sshPort = 22
	}
	hop, err := resolveEndpoint("tcp4", host, sshPort, false)
	if err != nil {
		return nil, err
	}
	client, err := ssh.Dial("tcp4", hop.String(), &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            auth,
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}
	target, err := resolveEndpoint("tcp4", name, port, false)
	if err != nil {
		_ = client.Close()
		return nil, err
	}
	tunnelled, err := client.Dial("tcp4", target.String())
	if err != nil {
		_ = client.Close()
		return nil, errors.WithStack(err)
	}
	return &SSHSocket{
		sshClient: client,
		socket:    tunnelled,
		reader:    bufio.NewReaderSize(tunnelled, LookaheadWindow),
	}, nil
}

func sshAuth(cfg SSHConfig) ([]ssh.AuthMethod, error) {
	if cfg.KeyFile == "" {
		return []ssh.AuthMethod{ssh.Password(cfg.Password)}, nil
	}
	pem, err := common.LoadFile(cfg.KeyFile)
	if err != nil {
		return nil, err
	}
	signer, err := ssh.ParsePrivateKey(pem)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return []ssh.AuthMethod{ssh.PublicKeys(signer)}, nil
}

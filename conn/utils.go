package conn

import "strings"

// Dial establishes an outbound Conn on the given network: "tcp4",
// "udp4" or "kcp4". SSH tunnelling needs credentials and keeps its own
// constructor, NewSSHSocket.
func Dial(network, name string, port int) (Conn, error) {
	switch strings.ToLower(network) {
	case "", "tcp4", "udp4":
		client := NewClient(strings.ToLower(network))
		if err := client.Connect(name, port); err != nil {
			return nil, err
		}
		return client, nil
	case "kcp4":
		return NewKCPSocket(name, port)
	default:
		return nil, &Error{Op: OpResolve, Net: network, Addr: name, Err: ErrUnknownNetwork}
	}
}

// NewListener binds an inbound Listener on the given network: "tcp4"
// or "kcp4". Name Auto or "" binds the wildcard address.
func NewListener(network, name string, port int) (Listener, error) {
	switch strings.ToLower(network) {
	case "", "tcp4":
		server := NewServer(strings.ToLower(network))
		if err := server.Connect(name, port); err != nil {
			return nil, err
		}
		return server, nil
	case "kcp4":
		return NewKCPListener(name, port)
	default:
		return nil, &Error{Op: OpResolve, Net: network, Addr: name, Err: ErrUnknownNetwork}
	}
}

// GetAvailablePort reserves an ephemeral port, releases it and returns
// its number. The usual caveat applies: the port can be taken again
// between the release and the caller's own bind.
func GetAvailablePort(network string) (int, error) {
	switch strings.ToLower(network) {
	case "", "tcp4":
		server := NewServer("tcp4")
		if err := server.Connect(Auto, 0); err != nil {
			return 0, err
		}
		defer server.Close()
		return int(server.laddr.Port()), nil
	case "udp4", "kcp4":
		client := NewClient("udp4")
		if err := client.Connect("127.0.0.1", 9); err != nil {
			return 0, err
		}
		defer client.Close()
		return int(client.laddr.Port()), nil
	default:
		return 0, &Error{Op: OpResolve, Net: network, Err: ErrUnknownNetwork}
	}
}

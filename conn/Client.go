package conn

import "golang.org/x/sys/unix"

// Client establishes outbound connections: "tcp4" streams or connected
// "udp4" datagram channels. A Client is single-use; allocate one per
// connection.
type Client struct {
	Socket
	ep   *Endpoint
	used bool
}

// NewClient returns an outbound connector for the given network,
// "tcp4" or "udp4". Empty means "tcp4".
func NewClient(network string) *Client {
	client := &Client{}
	client.network = network
	return client
}

// Connect resolves name:port and dials it. The attempt is all or
// nothing; whether it succeeds or fails, a second call reports
// ErrAlreadyConnected.
func (client *Client) Connect(name string, port int) error {
	if client.used {
		return &Error{Op: OpConnect, Net: client.network, Addr: name, Err: ErrAlreadyConnected}
	}
	client.used = true
	fd, ep, err := establish(client.network, name, port, false, client)
	if err != nil {
		return err
	}
	client.ep = ep
	client.attach(fd, ep.Network)
	return nil
}

// Endpoint returns the resolved remote endpoint, nil before a
// successful Connect.
func (client *Client) Endpoint() *Endpoint {
	return client.ep
}

func (client *Client) finishConnect(fd int, ep *Endpoint) error {
	if err := unix.Connect(fd, ep.sockaddr()); err != nil {
		return &Error{Op: OpConnect, Net: ep.Network, Addr: ep.String(), Err: err}
	}
	return nil
}

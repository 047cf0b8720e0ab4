package conn

import "golang.org/x/sys/unix"

// finisher is the role-specific tail of the shared establishment
// sequence: an outbound connector dials the resolved address, an
// inbound one binds and listens on it.
type finisher interface {
	finishConnect(fd int, ep *Endpoint) error
}

// establish runs resolve -> socket(2) -> finish. All or nothing: any
// failure closes the half-made descriptor and returns the step's error.
func establish(network, name string, port int, passive bool, fin finisher) (int, *Endpoint, error) {
	ep, err := resolveEndpoint(network, name, port, passive)
	if err != nil {
		return 0, nil, err
	}
	fd, err := unix.Socket(ep.Family, ep.Type, ep.Protocol)
	if err != nil {
		return 0, nil, &Error{Op: OpSocket, Net: ep.Network, Addr: ep.String(), Err: err}
	}
	unix.CloseOnExec(fd)
	if err := fin.finishConnect(fd, ep); err != nil {
		_ = unix.Close(fd)
		return 0, nil, err
	}
	return fd, ep, nil
}

package nat

import (
	"net/netip"
	"time"

	"github.com/pion/stun"
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"snet/conn"
	"snet/utils/log"
)

var errTimedOut = errors.New("timed out waiting for response")

// ExternalEndpoint sends one STUN binding request from a connected UDP
// socket and returns the XOR-MAPPED-ADDRESS the server saw, i.e. the
// address this host's traffic appears from after NAT. The socket has no
// deadline of its own, so the wait is bounded here.
func ExternalEndpoint(server string, port int, timeout time.Duration) (netip.AddrPort, error) {
	client := conn.NewClient("udp4")
	if err := client.Connect(server, port); err != nil {
		return netip.AddrPort{}, err
	}
	defer client.Close()
	log.Debug("STUN binding request to %s via %s", client.RemoteAddr(), client.LocalAddr())

	request := stun.MustBuild(stun.TransactionID, stun.BindingRequest)
	if _, err := client.Write(request.Raw); err != nil {
		return netip.AddrPort{}, err
	}

	msgChan := make(chan *stun.Message, 1)
	errChan := make(chan error, 1)
	go func() {
		buf := make([]byte, 1024)
		n, err := client.Read(buf)
		if err != nil {
			errChan <- err
			return
		}
		message := &stun.Message{Raw: buf[:n]}
		if err := message.Decode(); err != nil {
			errChan <- errors.WithStack(err)
			return
		}
		msgChan <- message
	}()

	select {
	case message := <-msgChan:
		return mappedAddress(message)
	case err := <-errChan:
		return netip.AddrPort{}, err
	case <-time.After(timeout):
		// A blocked recv does not notice Close; shutting the read side
		// down wakes the reader so it exits with the probe.
		_ = unix.Shutdown(client.Fd(), unix.SHUT_RD)
		return netip.AddrPort{}, errTimedOut
	}
}

func mappedAddress(message *stun.Message) (netip.AddrPort, error) {
	var xorAddr stun.XORMappedAddress
	if err := xorAddr.GetFrom(message); err != nil {
		return netip.AddrPort{}, errors.Wrap(err, "no XOR-MAPPED-ADDRESS in response")
	}
	addr, ok := netip.AddrFromSlice(xorAddr.IP)
	if !ok {
		return netip.AddrPort{}, errors.New("malformed XOR-MAPPED-ADDRESS")
	}
	return netip.AddrPortFrom(addr.Unmap(), uint16(xorAddr.Port)), nil
}

package conn

import (
	"errors"
	"net"
	"net/netip"
	"strconv"

	"golang.org/x/sys/unix"
)

// Endpoint is a resolved IPv4 address and port together with the
// transport triple handed to socket(2). Connectors create one per
// Connect and it never changes afterwards.
type Endpoint struct {
	Network  string
	Family   int
	Type     int
	Protocol int
	Addr     netip.Addr
	Port     int
	Passive  bool
}

// String renders the endpoint as host:port.
func (ep *Endpoint) String() string {
	return net.JoinHostPort(ep.Addr.String(), strconv.Itoa(ep.Port))
}

func (ep *Endpoint) sockaddr() *unix.SockaddrInet4 {
	sa := &unix.SockaddrInet4{Port: ep.Port}
	sa.Addr = ep.Addr.As4()
	return sa
}

// resolveEndpoint turns a (name, port) pair into a concrete Endpoint.
// An empty name or Auto picks the wildcard address for passive use and
// loopback for active use. Numeric literals skip the resolver; anything
// else goes through a forward lookup and the first IPv4 candidate wins.
func resolveEndpoint(network, name string, port int, passive bool) (*Endpoint, error) {
	ep := &Endpoint{
		Network: network,
		Family:  unix.AF_INET,
		Port:    port,
		Passive: passive,
	}
	switch network {
	case "", "tcp4":
		ep.Network = "tcp4"
		ep.Type = unix.SOCK_STREAM
		ep.Protocol = unix.IPPROTO_TCP
	case "udp4", "kcp4":
		ep.Type = unix.SOCK_DGRAM
		ep.Protocol = unix.IPPROTO_UDP
	default:
		return nil, &Error{Op: OpResolve, Net: network, Addr: name, Err: ErrUnknownNetwork}
	}

	host := name
	if host == Auto {
		host = ""
	}
	if host == "" {
		if passive {
			ep.Addr = netip.IPv4Unspecified()
		} else {
			ep.Addr = netip.AddrFrom4([4]byte{127, 0, 0, 1})
		}
		return ep, nil
	}
	if addr, err := netip.ParseAddr(host); err == nil {
		addr = addr.Unmap()
		if !addr.Is4() {
			return nil, &Error{Op: OpResolve, Net: ep.Network, Addr: host, Err: errors.New("not an IPv4 address")}
		}
		ep.Addr = addr
		return ep, nil
	}
	ips, err := net.LookupIP(host)
	if err != nil {
		return nil, &Error{Op: OpResolve, Net: ep.Network, Addr: host, Err: err}
	}
	for _, ip := range ips {
		if ip4 := ip.To4(); ip4 != nil {
			ep.Addr = netip.AddrFrom4([4]byte(ip4))
			return ep, nil
		}
	}
	return nil, &Error{Op: OpResolve, Net: ep.Network, Addr: host, Err: errors.New("no IPv4 address for host")}
}

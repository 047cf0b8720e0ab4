package conn

import (
	"errors"
	"net"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetAvailablePort(t *testing.T) {
	require := require.New(t)

	port, err := GetAvailablePort("tcp4")
	require.Nil(err)
	require.True(port > 0 && port < 65536)

	// The reservation is released, so the port binds again.
	server := NewServer("tcp4")
	err = server.Connect(Auto, port)
	require.Nil(err)
	require.Nil(server.Close())

	port, err = GetAvailablePort("udp4")
	require.Nil(err)
	require.True(port > 0 && port < 65536)

	port, err = GetAvailablePort("kcp4")
	require.Nil(err)
	require.True(port > 0 && port < 65536)

	_, err = GetAvailablePort("ipx")
	require.True(errors.Is(err, ErrUnknownNetwork))
}

func TestDialUnknownNetwork(t *testing.T) {
	require := require.New(t)

	_, err := Dial("ipx", "127.0.0.1", 80)
	require.True(errors.Is(err, ErrUnknownNetwork))

	_, err = NewListener("ssh4", Auto, 0)
	require.True(errors.Is(err, ErrUnknownNetwork))
}

func TestDialAndListenerRoundtrip(t *testing.T) {
	require := require.New(t)

	listener, err := NewListener("tcp4", "127.0.0.1", 0)
	require.Nil(err)
	defer listener.Close()
	require.Equal("tcp4", listener.Network())
	port := listener.Address().(*net.TCPAddr).Port

	wait := make(chan struct{})
	go func() {
		accepted, err := listener.Accept()
		require.Nil(err)
		defer accepted.Close()
		line, err := accepted.ReadLine()
		require.Nil(err)
		_, err = accepted.WriteLine(line)
		require.Nil(err)
		wait <- struct{}{}
	}()

	socket, err := Dial("tcp4", "127.0.0.1", port)
	require.Nil(err)
	defer socket.Close()

	_, err = socket.WriteLine("interface plumbing")
	require.Nil(err)
	line, err := socket.ReadLine()
	require.Nil(err)
	require.Equal("interface plumbing", line)
	<-wait
}

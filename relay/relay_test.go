package relay

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"snet/conn"
)

// startEcho runs a one-connection echo server and returns its port.
func startEcho(t *testing.T) int {
	t.Helper()
	server := conn.NewServer("tcp4")
	if err := server.Connect("127.0.0.1", 0); err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = server.Close() })
	go func() {
		worker, err := server.AcceptWorker()
		if err != nil {
			return
		}
		defer worker.Close()
		for {
			line, err := worker.ReadLine()
			if err != nil || line == "" {
				return
			}
			if _, err := worker.WriteLine(line); err != nil {
				return
			}
		}
	}()
	return server.Address().(*net.TCPAddr).Port
}

func TestServiceRun(t *testing.T) {
	require := require.New(t)

	RemoteType = "tcp4"
	RemoteAddr = "127.0.0.1"
	RemotePort = startEcho(t)

	front := conn.NewServer("tcp4")
	err := front.Connect("127.0.0.1", 0)
	require.Nil(err)
	defer front.Close()

	done := make(chan struct{})
	go func() {
		downstream, err := front.AcceptWorker()
		require.Nil(err)
		service := &Service{Downstream: downstream}
		service.run()
		done <- struct{}{}
	}()

	user := conn.NewClient("tcp4")
	err = user.Connect("127.0.0.1", front.Address().(*net.TCPAddr).Port)
	require.Nil(err)
	defer user.Close()

	_, err = user.WriteLine("through the relay")
	require.Nil(err)
	line, err := user.ReadLine()
	require.Nil(err)
	require.Equal("through the relay", line)

	// Half-closing the user side unwinds the whole chain.
	require.Nil(user.CloseWrite())
	line, err = user.ReadLine()
	require.Nil(err)
	require.Equal("", line)
	<-done
}

func TestPipeBothDirections(t *testing.T) {
	require := require.New(t)

	left := conn.NewServer("tcp4")
	err := left.Connect("127.0.0.1", 0)
	require.Nil(err)
	defer left.Close()
	right := conn.NewServer("tcp4")
	err = right.Connect("127.0.0.1", 0)
	require.Nil(err)
	defer right.Close()

	piped := make(chan struct{})
	go func() {
		a, err := left.AcceptWorker()
		require.Nil(err)
		b, err := right.AcceptWorker()
		require.Nil(err)
		Pipe(a, b)
		_ = a.Close()
		_ = b.Close()
		piped <- struct{}{}
	}()

	one := conn.NewClient("tcp4")
	err = one.Connect("127.0.0.1", left.Address().(*net.TCPAddr).Port)
	require.Nil(err)
	defer one.Close()
	two := conn.NewClient("tcp4")
	err = two.Connect("127.0.0.1", right.Address().(*net.TCPAddr).Port)
	require.Nil(err)
	defer two.Close()

	_, err = one.WriteLine("left to right")
	require.Nil(err)
	line, err := two.ReadLine()
	require.Nil(err)
	require.Equal("left to right", line)

	_, err = two.WriteLine("right to left")
	require.Nil(err)
	line, err = one.ReadLine()
	require.Nil(err)
	require.Equal("right to left", line)

	require.Nil(one.CloseWrite())
	line, err = two.ReadLine()
	require.Nil(err)
	require.Equal("", line)
	require.Nil(two.CloseWrite())
	line, err = one.ReadLine()
	require.Nil(err)
	require.Equal("", line)
	<-piped
}

func TestInitConf(t *testing.T) {
	require := require.New(t)

	savedAddr, savedPort := RemoteAddr, RemotePort
	defer func() { RemoteAddr, RemotePort = savedAddr, savedPort }()

	RemoteAddr, RemotePort = "", 0
	require.NotNil(InitConf())
	RemoteAddr = "127.0.0.1"
	require.NotNil(InitConf())
	RemotePort = 7007
	require.Nil(InitConf())
}

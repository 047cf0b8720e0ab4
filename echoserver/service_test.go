package echoserver

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"

	"snet/conn"
)

func TestServiceEchoesUntilEmptyLine(t *testing.T) {
	require := require.New(t)

	server := conn.NewServer("tcp4")
	err := server.Connect("127.0.0.1", 0)
	require.Nil(err)
	defer server.Close()

	done := make(chan struct{})
	go func() {
		worker, err := server.AcceptWorker()
		require.Nil(err)
		service := &Service{Worker: worker}
		service.run()
		done <- struct{}{}
	}()

	client := conn.NewClient("tcp4")
	err = client.Connect("127.0.0.1", server.Address().(*net.TCPAddr).Port)
	require.Nil(err)
	defer client.Close()

	for _, payload := range []string{"one", "two", "three"} {
		_, err = client.WriteLine(payload)
		require.Nil(err)
		line, err := client.ReadLine()
		require.Nil(err)
		require.Equal(payload, line)
	}

	// The empty line ends the session; the server closes its side.
	_, err = client.WriteLine("")
	require.Nil(err)
	<-done
	line, err := client.ReadLine()
	require.Nil(err)
	require.Equal("", line)
}

func TestServiceEndsWhenPeerCloses(t *testing.T) {
	require := require.New(t)

	server := conn.NewServer("tcp4")
	err := server.Connect("127.0.0.1", 0)
	require.Nil(err)
	defer server.Close()

	done := make(chan struct{})
	go func() {
		worker, err := server.AcceptWorker()
		require.Nil(err)
		service := &Service{Worker: worker}
		service.run()
		done <- struct{}{}
	}()

	client := conn.NewClient("tcp4")
	err = client.Connect("127.0.0.1", server.Address().(*net.TCPAddr).Port)
	require.Nil(err)
	require.Nil(client.Close())
	<-done
}

func TestInitConf(t *testing.T) {
	require := require.New(t)

	ServerPort = 7007
	LineMode = ""
	require.Nil(InitConf())
	require.Equal(conn.LineCRLF, lineMode)

	LineMode = "loose"
	require.Nil(InitConf())
	require.Equal(conn.LineLoose, lineMode)

	LineMode = "dos"
	require.NotNil(InitConf())

	LineMode = "crlf"
	ServerPort = 0
	require.NotNil(InitConf())
	ServerPort = 7007
}

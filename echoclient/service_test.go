package echoclient

import (
	"net"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"snet/conn"
)

func TestRegisterService(t *testing.T) {
	require := require.New(t)

	require.NotNil(InitConf())

	RegisterService("alpha", "tcp4", "127.0.0.1", 7007, "hi", 2)
	require.Nil(InitConf())
	require.Panics(func() {
		RegisterService("alpha", "tcp4", "127.0.0.1", 7007, "hi", 2)
	})
	delete(services, "alpha")
}

func TestServiceSession(t *testing.T) {
	require := require.New(t)

	server := conn.NewServer("tcp4")
	err := server.Connect("127.0.0.1", 0)
	require.Nil(err)
	defer server.Close()

	// Echo until the empty end-of-session line, counting payload lines.
	counted := make(chan int, 1)
	go func() {
		worker, err := server.AcceptWorker()
		require.Nil(err)
		defer worker.Close()
		count := 0
		for {
			line, err := worker.ReadLine()
			require.Nil(err)
			if line == "" {
				counted <- count
				return
			}
			count++
			_, err = worker.WriteLine(line)
			require.Nil(err)
		}
	}()

	service := &Service{
		Name:       "session",
		Network:    "tcp4",
		ServerAddr: "127.0.0.1",
		ServerPort: server.Address().(*net.TCPAddr).Port,
		Count:      3,
	}
	var wait sync.WaitGroup
	wait.Add(1)
	service.run(&wait)
	wait.Wait()

	require.Equal(3, <-counted)
}

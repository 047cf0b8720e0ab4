package conn

import (
	"errors"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

func TestErrorFormat(t *testing.T) {
	require := require.New(t)

	err := &Error{Op: OpConnect, Net: "tcp4", Addr: "192.0.2.7:80", Err: unix.ECONNREFUSED}
	require.Equal("connect tcp4 192.0.2.7:80: connection refused", err.Error())

	err = &Error{Op: OpAccept, Net: "tcp4", Err: ErrNotConnected}
	require.Equal("accept tcp4: socket is not connected", err.Error())

	err = &Error{Op: OpResolve, Err: ErrUnknownNetwork}
	require.Equal("resolve: unknown network", err.Error())
}

func TestErrorUnwrap(t *testing.T) {
	require := require.New(t)

	err := error(&Error{Op: OpBind, Net: "tcp4", Addr: "0.0.0.0:80", Err: unix.EADDRINUSE})
	require.True(errors.Is(err, unix.EADDRINUSE))

	var cerr *Error
	require.True(errors.As(err, &cerr))
	require.Equal(OpBind, cerr.Op)
}

func TestErrorTemporary(t *testing.T) {
	require := require.New(t)

	cases := []struct {
		cause error
		want  bool
	}{
		{unix.ECONNABORTED, true},
		{unix.EINTR, true},
		{unix.EAGAIN, true},
		{unix.ECONNREFUSED, false},
		{unix.EMFILE, false},
		{ErrLineNotFound, false},
		// Temporary sees through wrapping layers.
		{pkgerrors.Wrap(unix.ECONNABORTED, "accept"), true},
	}
	for _, c := range cases {
		err := &Error{Op: OpAccept, Net: "tcp4", Err: c.cause}
		require.Equal(c.want, err.Temporary(), "cause %v", c.cause)
	}
}

func TestConnectRefused(t *testing.T) {
	require := require.New(t)

	port, err := GetAvailablePort("tcp4")
	require.Nil(err)

	client := NewClient("tcp4")
	err = client.Connect("127.0.0.1", port)
	require.NotNil(err)
	require.True(errors.Is(err, unix.ECONNREFUSED))
	var cerr *Error
	require.True(errors.As(err, &cerr))
	require.Equal(OpConnect, cerr.Op)
	require.False(cerr.Temporary())
}

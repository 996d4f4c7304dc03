package dummy

import (
	"errors"
	"io"
	"testing"

	"github.com/indigo-web/reactor/transport"
	"github.com/stretchr/testify/require"
)

func TestSocket(t *testing.T) {
	t.Run("replay", func(t *testing.T) {
		pieces := [][]byte{[]byte("Hello"), []byte("world!")}
		sock := NewSocket(pieces...)
		buff := make([]byte, 64)

		for _, piece := range pieces {
			n, err := sock.Read(buff)
			require.NoError(t, err)
			require.Equal(t, string(piece), string(buff[:n]))
		}

		_, err := sock.Read(buff)
		require.ErrorIs(t, err, transport.ErrWouldBlock)
	})

	t.Run("small buffer", func(t *testing.T) {
		sock := NewSocket([]byte("Hello")).EOF()
		buff := make([]byte, 3)

		n, err := sock.Read(buff)
		require.NoError(t, err)
		require.Equal(t, "Hel", string(buff[:n]))
		n, err = sock.Read(buff)
		require.NoError(t, err)
		require.Equal(t, "lo", string(buff[:n]))
		_, err = sock.Read(buff)
		require.ErrorIs(t, err, io.EOF)
	})

	t.Run("nil piece blocks", func(t *testing.T) {
		sock := NewSocket(nil, []byte("a"))
		buff := make([]byte, 8)
		_, err := sock.Read(buff)
		require.ErrorIs(t, err, transport.ErrWouldBlock)
		n, err := sock.Read(buff)
		require.NoError(t, err)
		require.Equal(t, 1, n)
	})

	t.Run("failure", func(t *testing.T) {
		failure := errors.New("connection reset")
		sock := NewSocket().Fail(failure)
		_, err := sock.Read(make([]byte, 8))
		require.ErrorIs(t, err, failure)
	})

	t.Run("partial writes", func(t *testing.T) {
		sock := NewSocket().WriteLimit(4).BlockWrites(1)
		_, err := sock.Write([]byte("Hello, world!"))
		require.ErrorIs(t, err, transport.ErrWouldBlock)

		n, err := sock.Write([]byte("Hello, world!"))
		require.NoError(t, err)
		require.Equal(t, 4, n)
		require.Equal(t, "Hell", sock.Written())
	})

	t.Run("closed", func(t *testing.T) {
		sock := NewSocket([]byte("data"))
		require.NoError(t, sock.Close())
		require.True(t, sock.Closed())
		_, err := sock.Read(make([]byte, 8))
		require.Error(t, err)
		_, err = sock.Write([]byte("data"))
		require.Error(t, err)
	})
}

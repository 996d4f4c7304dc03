//go:build linux

package tcp

import (
	"errors"
	"io"

	"github.com/indigo-web/reactor/transport"
	"golang.org/x/sys/unix"
)

var _ transport.Socket = new(socket)

// socket is a non-blocking connected fd. Interrupted calls are retried in place.
type socket struct {
	fd     int
	remote string
}

func newSocket(fd int, sa unix.Sockaddr) *socket {
	return &socket{
		fd:     fd,
		remote: toAddr(sa).String(),
	}
}

func (s *socket) Read(b []byte) (int, error) {
	for {
		n, err := unix.Read(s.fd, b)
		switch {
		case err == nil:
			if n == 0 {
				return 0, io.EOF
			}

			return n, nil
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN):
			return 0, transport.ErrWouldBlock
		default:
			return 0, err
		}
	}
}

func (s *socket) Write(b []byte) (int, error) {
	for {
		n, err := unix.Write(s.fd, b)
		switch {
		case err == nil:
			return n, nil
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN):
			return 0, transport.ErrWouldBlock
		default:
			return 0, err
		}
	}
}

func (s *socket) Close() error {
	return unix.Close(s.fd)
}

func (s *socket) Remote() string {
	return s.remote
}

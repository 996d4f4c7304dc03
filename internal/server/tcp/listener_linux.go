//go:build linux

package tcp

import (
	"fmt"
	"net"

	"github.com/indigo-web/reactor/config"
	"golang.org/x/sys/unix"
)

// listen creates a non-blocking socket listening on all the interfaces.
func listen(cfg config.NET) (int, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return -1, fmt.Errorf("socket: %w", err)
	}

	if err = unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		_ = unix.Close(fd)
		return -1, fmt.Errorf("setsockopt SO_REUSEADDR: %w", err)
	}

	if err = unix.Bind(fd, &unix.SockaddrInet4{Port: int(cfg.Port)}); err != nil {
		_ = unix.Close(fd)
		return -1, fmt.Errorf("bind :%d: %w", cfg.Port, err)
	}

	if err = unix.Listen(fd, cfg.Backlog); err != nil {
		_ = unix.Close(fd)
		return -1, fmt.Errorf("listen: %w", err)
	}

	return fd, nil
}

// sockname returns the local address the fd is bound to.
func sockname(fd int) (net.Addr, error) {
	sa, err := unix.Getsockname(fd)
	if err != nil {
		return nil, fmt.Errorf("getsockname: %w", err)
	}

	return toAddr(sa), nil
}

func toAddr(sa unix.Sockaddr) net.Addr {
	switch addr := sa.(type) {
	case *unix.SockaddrInet4:
		return &net.TCPAddr{IP: net.IP(addr.Addr[:]).To16(), Port: addr.Port}
	case *unix.SockaddrInet6:
		return &net.TCPAddr{IP: net.IP(addr.Addr[:]), Port: addr.Port}
	default:
		return &net.TCPAddr{}
	}
}

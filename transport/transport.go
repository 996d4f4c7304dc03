package transport

import (
	"errors"
)

// ErrWouldBlock is returned by non-blocking sockets when the operation cannot progress
// without waiting. It's never fatal.
var ErrWouldBlock = errors.New("operation would block")

// Socket is a non-blocking stream connection. Read returns io.EOF once the peer
// has closed its side and nothing is left to read.
type Socket interface {
	Read(b []byte) (int, error)
	Write(b []byte) (int, error)
	Close() error
	Remote() string
}

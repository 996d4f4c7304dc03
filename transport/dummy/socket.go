package dummy

import (
	"io"

	"github.com/indigo-web/reactor/transport"
)

var _ transport.Socket = new(Socket)

// Socket replays the data it was initialised with, one piece per read. A nil piece
// makes the corresponding read fail with transport.ErrWouldBlock. When the pieces are
// exhausted, reads either keep blocking or report io.EOF, if set to. It also tracks
// all the written data, and can be told to accept writes only partially.
type Socket struct {
	closed     bool
	eof        bool
	failure    error
	pointer    int
	tmp        []byte
	data       [][]byte
	written    []byte
	writeLimit int
	blocks     int
	remote     string
}

func NewSocket(data ...[]byte) *Socket {
	return &Socket{
		data:   data,
		remote: "127.0.0.1:4242",
	}
}

func (s *Socket) Read(b []byte) (n int, err error) {
	if s.closed {
		return 0, io.ErrClosedPipe
	}

	if len(s.tmp) > 0 {
		n = copy(b, s.tmp)
		s.tmp = s.tmp[n:]

		return n, nil
	}

	if s.pointer >= len(s.data) {
		switch {
		case s.failure != nil:
			return 0, s.failure
		case s.eof:
			return 0, io.EOF
		default:
			return 0, transport.ErrWouldBlock
		}
	}

	piece := s.data[s.pointer]
	s.pointer++

	if piece == nil {
		return 0, transport.ErrWouldBlock
	}

	n = copy(b, piece)
	s.tmp = piece[n:]

	return n, nil
}

func (s *Socket) Write(p []byte) (int, error) {
	if s.closed {
		return 0, io.ErrClosedPipe
	}

	if s.blocks > 0 {
		s.blocks--
		return 0, transport.ErrWouldBlock
	}

	if s.writeLimit > 0 && len(p) > s.writeLimit {
		p = p[:s.writeLimit]
	}

	s.written = append(s.written, p...)

	return len(p), nil
}

func (s *Socket) Close() error {
	s.closed = true
	return nil
}

func (s *Socket) Remote() string {
	return s.remote
}

// Push appends more pieces to be read.
func (s *Socket) Push(data ...[]byte) *Socket {
	s.data = append(s.data, data...)
	return s
}

// EOF makes reads report io.EOF after the pieces are exhausted.
func (s *Socket) EOF() *Socket {
	s.eof = true
	return s
}

// Fail makes reads return the err after the pieces are exhausted.
func (s *Socket) Fail(err error) *Socket {
	s.failure = err
	return s
}

// WriteLimit caps the number of bytes a single write accepts. Zero means no limit.
func (s *Socket) WriteLimit(n int) *Socket {
	s.writeLimit = n
	return s
}

// BlockWrites makes the next n writes fail with transport.ErrWouldBlock.
func (s *Socket) BlockWrites(n int) *Socket {
	s.blocks = n
	return s
}

func (s *Socket) Written() string {
	return string(s.written)
}

func (s *Socket) Closed() bool {
	return s.closed
}

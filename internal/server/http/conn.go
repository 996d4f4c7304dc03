package http

import (
	"errors"
	"io"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/reactor/config"
	"github.com/indigo-web/reactor/internal/protocol/http1"
	"github.com/indigo-web/reactor/transport"
	"github.com/rs/zerolog"
)

// Interest is what the connection waits for next. The event loop translates it into
// the readiness registration of the socket.
type Interest uint8

const (
	Read Interest = iota + 1
	Write
	Close
)

func (i Interest) String() string {
	switch i {
	case Read:
		return "read"
	case Write:
		return "write"
	case Close:
		return "close"
	default:
		return "unknown"
	}
}

// Conn is the state of a single client connection. It never blocks: every step does as
// much as the socket allows and reports what must happen before it can proceed.
type Conn struct {
	id         string
	sock       transport.Socket
	log        zerolog.Logger
	handler    Handler
	parser     *http1.Parser
	readBuff   []byte
	respBuff   []byte
	writeBuff  []byte
	sent       int
	closeAfter bool
	peerClosed bool
	keepAlive  bool
	closed     bool
}

func NewConn(sock transport.Socket, cfg *config.Config, handler Handler, log zerolog.Logger) *Conn {
	id := uniuri.NewLen(8)

	return &Conn{
		id:       id,
		sock:     sock,
		handler:  handler,
		parser:   http1.NewParser(cfg.Headers),
		readBuff: make([]byte, 0, cfg.NET.ReadBufferSize),
		log: log.With().
			Str("conn", id).
			Str("remote", sock.Remote()).
			Logger(),
	}
}

// ID returns the identifier the connection is logged with.
func (c *Conn) ID() string {
	return c.id
}

// Pending reports whether a part of a response is still waiting to be written.
func (c *Conn) Pending() bool {
	return c.sent < len(c.writeBuff)
}

// OnReadable drains the socket and processes everything received.
func (c *Conn) OnReadable() Interest {
	if c.closed {
		return Close
	}

	if c.Pending() {
		return Write
	}

	// the last byte of the buffer is never filled
	for limit := cap(c.readBuff) - 1; len(c.readBuff) < limit; {
		n, err := c.sock.Read(c.readBuff[len(c.readBuff):limit])
		c.readBuff = c.readBuff[:len(c.readBuff)+n]

		switch {
		case err == nil && n > 0:
			continue
		case err == nil, errors.Is(err, io.EOF):
			c.peerClosed = true
		case errors.Is(err, transport.ErrWouldBlock):
		default:
			c.log.Warn().Err(err).Msg("read failed")
			return Close
		}

		break
	}

	return c.process()
}

// OnWritable flushes the queued part of the response. Once it's drained, any request
// received in the meanwhile is processed.
func (c *Conn) OnWritable() Interest {
	if c.closed {
		return Close
	}

	if c.Pending() {
		n, err := c.sock.Write(c.writeBuff[c.sent:])
		if err != nil && !errors.Is(err, transport.ErrWouldBlock) {
			c.log.Warn().Err(err).Msg("write failed")
			return Close
		}

		c.sent += n
		if c.Pending() {
			return Write
		}
	}

	c.writeBuff, c.sent = nil, 0

	if interest := c.completed(); interest != Read {
		return interest
	}

	return c.process()
}

// Close releases the buffers and closes the socket. Subsequent calls are no-op.
func (c *Conn) Close() error {
	if c.closed {
		return nil
	}

	c.closed = true
	c.readBuff, c.respBuff, c.writeBuff = nil, nil, nil
	c.log.Debug().Msg("connection closed")

	return c.sock.Close()
}

func (c *Conn) process() Interest {
	for len(c.readBuff) > 0 {
		result, consumed := c.parser.Feed(c.readBuff)
		c.shift(consumed)

		switch result {
		case http1.NeedMore:
		case http1.Complete:
			if interest := c.dispatch(); interest != Read {
				return interest
			}
		case http1.ParseError, http1.Overflow:
			c.log.Warn().Err(c.parser.Err()).Stringer("result", result).Msg("bad request")
			c.closeAfter = true

			return c.send(errorResponse(c.parser.Err()))
		}
	}

	if c.peerClosed {
		return Close
	}

	return Read
}

func (c *Conn) dispatch() Interest {
	req := c.parser.Request()
	c.keepAlive = keepAlive(req)
	c.closeAfter = !c.keepAlive
	c.log.Debug().
		Str("method", req.Method).
		Str("target", req.Target).
		Str("proto", req.Proto).
		Bool("keep-alive", c.keepAlive).
		Msg("request")

	response := c.handler.Handle(req, c.log)
	response.KeepAlive = c.keepAlive

	return c.send(response)
}

// send makes a single attempt to write the whole response, queueing whatever is left.
func (c *Conn) send(response http1.Response) Interest {
	c.respBuff = http1.Serialize(c.respBuff[:0], response)

	n, err := c.sock.Write(c.respBuff)
	if err != nil && !errors.Is(err, transport.ErrWouldBlock) {
		c.log.Warn().Err(err).Msg("write failed")
		return Close
	}

	if n < len(c.respBuff) {
		c.writeBuff = append(make([]byte, 0, len(c.respBuff)-n), c.respBuff[n:]...)
		c.sent = 0

		return Write
	}

	return c.completed()
}

// completed is called once the response is entirely written.
func (c *Conn) completed() Interest {
	if c.closeAfter {
		return Close
	}

	// responses larger than the read buffer aren't retained between requests
	if cap(c.respBuff) > cap(c.readBuff) {
		c.respBuff = nil
	}

	c.parser.Reset()

	return Read
}

// shift drops the n leading bytes of the read buffer.
func (c *Conn) shift(n int) {
	if n == 0 {
		return
	}

	rest := copy(c.readBuff, c.readBuff[n:])
	c.readBuff = c.readBuff[:rest]
}

package http1

import (
	"bytes"

	"github.com/indigo-web/reactor/config"
	"github.com/indigo-web/reactor/http/status"
	"github.com/indigo-web/reactor/internal/datastruct"
	"github.com/indigo-web/utils/uf"
)

type Result uint8

const (
	// NeedMore means the header block isn't terminated yet. All the input was consumed.
	NeedMore Result = iota
	// Complete means the header block was parsed. Request() is valid until Reset().
	Complete
	// ParseError means the request line is malformed.
	ParseError
	// Overflow means the header block doesn't fit into the buffer.
	Overflow
)

func (r Result) String() string {
	switch r {
	case NeedMore:
		return "need more"
	case Complete:
		return "complete"
	case ParseError:
		return "parse error"
	case Overflow:
		return "overflow"
	default:
		return "unknown"
	}
}

var (
	ErrMalformedRequestLine = status.ErrMalformedRequestLine
	ErrHeaderFieldsTooLarge = status.ErrHeaderFieldsTooLarge
)

var (
	crlf       = []byte("\r\n")
	terminator = []byte("\r\n\r\n")
)

// Parser accumulates bytes until a complete header block (request line and headers,
// terminated by an empty line) is met. It recognizes exactly one request per Reset.
type Parser struct {
	buff    []byte
	space   int
	done    bool
	err     error
	request Request
}

func NewParser(cfg config.Headers) *Parser {
	return &Parser{
		buff:  make([]byte, 0, cfg.Space.Maximal),
		space: cfg.Space.Maximal,
		request: Request{
			Headers: datastruct.NewKeyValue(cfg.Number.Maximal),
		},
	}
}

// Feed consumes the data and reports the number of bytes taken from it. On Complete it
// is the number of bytes up to and including the terminating empty line, so the rest
// of data belongs to a subsequent request. If the data doesn't fit into the buffer as a
// whole, nothing is consumed and the result is Overflow.
func (p *Parser) Feed(data []byte) (Result, int) {
	if p.done {
		return Complete, 0
	}

	prev := len(p.buff)
	// a byte of the buffer is never used
	if prev+len(data) >= p.space {
		p.err = ErrHeaderFieldsTooLarge
		return Overflow, 0
	}

	p.buff = append(p.buff, data...)

	// the terminator might have been split between two deliveries
	from := prev - (len(terminator) - 1)
	if from < 0 {
		from = 0
	}

	end := bytes.Index(p.buff[from:], terminator)
	if end == -1 {
		return NeedMore, len(data)
	}

	end += from + len(terminator)
	p.buff = p.buff[:end]
	p.done = true

	if err := p.parse(); err != nil {
		p.err = err
		return ParseError, end - prev
	}

	return Complete, end - prev
}

func (p *Parser) parse() error {
	// the terminator is guaranteed to be presented, so is the first CRLF
	lineEnd := bytes.Index(p.buff, crlf)
	line := p.buff[:lineEnd]

	sp1 := bytes.IndexByte(line, ' ')
	if sp1 == -1 {
		return ErrMalformedRequestLine
	}

	sp2 := bytes.IndexByte(line[sp1+1:], ' ')
	if sp2 == -1 {
		return ErrMalformedRequestLine
	}

	sp2 += sp1 + 1
	request := &p.request
	request.Method = uf.B2S(line[:sp1])
	request.Target = uf.B2S(line[sp1+1 : sp2])
	request.Proto = uf.B2S(line[sp2+1:])

	// keep the CRLF of the last header line, drop the empty one
	p.parseHeaders(p.buff[lineEnd+len(crlf) : len(p.buff)-len(crlf)])

	return nil
}

func (p *Parser) parseHeaders(block []byte) {
	headers := p.request.Headers

	for len(block) > 0 && headers.Len() < headers.Limit() {
		lf := bytes.IndexByte(block, '\n')
		if lf == -1 {
			return
		}

		line := block[:lf]
		block = block[lf+1:]
		if len(line) > 0 && line[len(line)-1] == '\r' {
			line = line[:len(line)-1]
		}

		if len(line) == 0 {
			return
		}

		colon := bytes.IndexByte(line, ':')
		if colon == -1 {
			// lines without colon are silently ignored
			continue
		}

		value := trimTrailingCRLF(trimLeadingSpaces(line[colon+1:]))
		headers.Add(uf.B2S(line[:colon]), uf.B2S(value))
	}
}

// Request returns the parsed request. It's valid only after Complete and until Reset.
func (p *Parser) Request() *Request {
	return &p.request
}

// Err returns the error explaining the latest ParseError or Overflow.
func (p *Parser) Err() error {
	return p.err
}

// Reset discards everything parsed or accumulated, preparing the parser to a new
// request. Strings of the previous request must not be used afterwards.
func (p *Parser) Reset() {
	p.buff = p.buff[:0]
	p.done = false
	p.err = nil
	p.request.clear()
}

func trimLeadingSpaces(b []byte) []byte {
	for i, char := range b {
		switch char {
		case ' ', '\t', '\r', '\n', '\v', '\f':
		default:
			return b[i:]
		}
	}

	return b[:0]
}

func trimTrailingCRLF(b []byte) []byte {
	for len(b) > 0 && (b[len(b)-1] == '\r' || b[len(b)-1] == '\n') {
		b = b[:len(b)-1]
	}

	return b
}

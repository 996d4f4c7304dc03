//go:build linux

package tcp

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/indigo-web/reactor/config"
	"github.com/indigo-web/reactor/http/status"
	"github.com/indigo-web/reactor/internal/server/http"
	"github.com/rs/zerolog"
	"golang.org/x/sys/unix"
)

type entry struct {
	conn     *http.Conn
	interest http.Interest
}

// Loop multiplexes the listener and all the accepted connections over a single level-
// triggered epoll instance. Everything except the wakeup on cancellation happens on the
// goroutine calling Run.
type Loop struct {
	cfg       *config.Config
	log       zerolog.Logger
	acceptLog zerolog.Logger
	handler   http.Handler
	listener  int
	epfd      int
	wakeup    int
	addr      net.Addr
	conns     map[int]*entry
	events    []unix.EpollEvent
}

// NewLoop binds the listening socket and prepares the epoll instance. Nothing is
// accepted until Run is called.
func NewLoop(cfg *config.Config, handler http.Handler, log zerolog.Logger) (*Loop, error) {
	l := &Loop{
		cfg: cfg,
		log: log,
		// a failing accept keeps the level-triggered listener ready, so the same
		// failure repeats on every iteration
		acceptLog: log.Sample(&zerolog.BurstSampler{
			Burst:  1,
			Period: time.Second,
		}),
		handler:  handler,
		listener: -1,
		epfd:     -1,
		wakeup:   -1,
		conns:    make(map[int]*entry),
		events:   make([]unix.EpollEvent, cfg.NET.MaxEvents),
	}

	if err := l.init(); err != nil {
		l.release()
		return nil, err
	}

	return l, nil
}

func (l *Loop) init() (err error) {
	if l.listener, err = listen(l.cfg.NET); err != nil {
		return err
	}

	if l.addr, err = sockname(l.listener); err != nil {
		return err
	}

	if l.epfd, err = unix.EpollCreate1(unix.EPOLL_CLOEXEC); err != nil {
		return fmt.Errorf("epoll_create1: %w", err)
	}

	if l.wakeup, err = unix.Eventfd(0, unix.EFD_NONBLOCK|unix.EFD_CLOEXEC); err != nil {
		return fmt.Errorf("eventfd: %w", err)
	}

	if err = l.register(l.listener, http.Read); err != nil {
		return err
	}

	return l.register(l.wakeup, http.Read)
}

// Addr returns the address the listener is bound to.
func (l *Loop) Addr() net.Addr {
	return l.addr
}

// Run serves connections until the ctx is done. Then every connection is closed
// without flushing pending writes, and status.ErrShutdown is returned. The loop
// cannot be run again.
func (l *Loop) Run(ctx context.Context) error {
	defer l.release()

	done, exited := make(chan struct{}), make(chan struct{})
	defer func() {
		close(done)
		<-exited
	}()

	go func() {
		defer close(exited)

		select {
		case <-ctx.Done():
			l.wake()
		case <-done:
		}
	}()

	for ctx.Err() == nil {
		n, err := unix.EpollWait(l.epfd, l.events, -1)
		if err != nil {
			if errors.Is(err, unix.EINTR) {
				continue
			}

			l.log.Error().Err(err).Msg("epoll_wait failed")
			return fmt.Errorf("epoll_wait: %w", err)
		}

		for _, event := range l.events[:n] {
			switch fd := int(event.Fd); fd {
			case l.wakeup:
				l.drainWakeup()
			case l.listener:
				l.accept()
			default:
				l.serve(fd, event.Events)
			}
		}
	}

	l.log.Debug().Int("connections", len(l.conns)).Msg("event loop stopped")

	return status.ErrShutdown
}

// accept takes every pending connection off the listener's queue.
func (l *Loop) accept() {
	for {
		fd, sa, err := unix.Accept4(l.listener, unix.SOCK_NONBLOCK|unix.SOCK_CLOEXEC)
		if err != nil {
			switch {
			case errors.Is(err, unix.EAGAIN):
			case errors.Is(err, unix.EINTR), errors.Is(err, unix.ECONNABORTED):
				continue
			default:
				l.acceptFailed(err)
			}

			return
		}

		conn := http.NewConn(newSocket(fd, sa), l.cfg, l.handler, l.log)
		if err = l.register(fd, http.Read); err != nil {
			l.log.Warn().Err(err).Msg("cannot register connection")
			_ = conn.Close()
			continue
		}

		l.conns[fd] = &entry{conn: conn, interest: http.Read}
		l.log.Debug().Str("conn", conn.ID()).Int("fd", fd).Msg("accepted")
	}
}

func (l *Loop) acceptFailed(err error) {
	l.acceptLog.Warn().Err(err).Msg("accept failed")
}

func (l *Loop) serve(fd int, events uint32) {
	e, found := l.conns[fd]
	if !found {
		return
	}

	var interest http.Interest
	if events&unix.EPOLLOUT != 0 {
		interest = e.conn.OnWritable()
	} else {
		interest = e.conn.OnReadable()
	}

	switch interest {
	case e.interest:
	case http.Close:
		l.drop(fd, e)
	default:
		if err := l.modify(fd, interest); err != nil {
			l.log.Warn().Err(err).Str("conn", e.conn.ID()).Msg("cannot modify registration")
			l.drop(fd, e)
			return
		}

		e.interest = interest
	}
}

func (l *Loop) drop(fd int, e *entry) {
	_ = unix.EpollCtl(l.epfd, unix.EPOLL_CTL_DEL, fd, nil)
	_ = e.conn.Close()
	delete(l.conns, fd)
}

func (l *Loop) register(fd int, interest http.Interest) error {
	event := unix.EpollEvent{Events: eventsOf(interest), Fd: int32(fd)}
	if err := unix.EpollCtl(l.epfd, unix.EPOLL_CTL_ADD, fd, &event); err != nil {
		return fmt.Errorf("epoll_ctl add: %w", err)
	}

	return nil
}

func (l *Loop) modify(fd int, interest http.Interest) error {
	event := unix.EpollEvent{Events: eventsOf(interest), Fd: int32(fd)}
	if err := unix.EpollCtl(l.epfd, unix.EPOLL_CTL_MOD, fd, &event); err != nil {
		return fmt.Errorf("epoll_ctl mod: %w", err)
	}

	return nil
}

func eventsOf(interest http.Interest) uint32 {
	if interest == http.Write {
		return unix.EPOLLOUT
	}

	return unix.EPOLLIN
}

func (l *Loop) wake() {
	// any non-zero 8-byte value increments the eventfd counter
	_, _ = unix.Write(l.wakeup, []byte{1, 0, 0, 0, 0, 0, 0, 1})
}

func (l *Loop) drainWakeup() {
	var buff [8]byte
	_, _ = unix.Read(l.wakeup, buff[:])
}

// release closes all the connections and descriptors owned by the loop.
func (l *Loop) release() {
	for fd, e := range l.conns {
		_ = e.conn.Close()
		delete(l.conns, fd)
	}

	for _, fd := range []*int{&l.wakeup, &l.epfd, &l.listener} {
		if *fd != -1 {
			_ = unix.Close(*fd)
			*fd = -1
		}
	}
}

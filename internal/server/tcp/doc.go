// Package tcp implements the readiness-driven event loop. It is linux-only, since it
// relies on epoll and eventfd.
package tcp

//go:build !linux

package reactor

import (
	"context"
	"errors"
)

var ErrUnsupportedPlatform = errors.New("the event loop is implemented over epoll, linux only")

func (a *App) Serve(context.Context) error {
	return ErrUnsupportedPlatform
}

package system

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
)

var (
	// A stored version of os.Getwd(). Set on the first Get* call.
	cwd string
)

func Getwd() (string, error) {
	if err := initer(); err != nil {
		return "", err
	}

	return cwd, nil
}

func Setwd(wd string) {
	cwd = wd
}

var initer = sync.OnceValue[error](func() error {
	var err error
	cwd, err = os.Getwd()
	if err != nil {
		return err
	}

	return nil
})

// InterruptContext returns a context cancelled on SIGINT or SIGTERM. Used by the long-running
// watch commands.
func InterruptContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

package main

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/oseiserwaa/kitchen/config"
	"github.com/oseiserwaa/kitchen/internal/app"
	"github.com/oseiserwaa/kitchen/pkg/logger"
	"github.com/stretchr/testify/assert"
)

// fakeApp embeds the interface so only the lifecycle methods need bodies
type fakeApp struct {
	app.AppInterface
	initErr   error
	startErr  error
	started   chan struct{}
	stop      chan struct{}
	shutdowns int
}

func newFakeApp() *fakeApp {
	return &fakeApp{started: make(chan struct{}), stop: make(chan struct{})}
}

func (f *fakeApp) Initialize() error { return f.initErr }

func (f *fakeApp) Start() error {
	close(f.started)
	if f.startErr != nil {
		return f.startErr
	}
	<-f.stop
	return nil
}

func (f *fakeApp) Shutdown(ctx context.Context) error {
	f.shutdowns++
	close(f.stop)
	return nil
}

func (f *fakeApp) SetShutdownTimeout(time.Duration) {}

func withFakeApp(t *testing.T, f *fakeApp) {
	t.Helper()
	orig := newApp
	newApp = func(*config.Config, ...app.AppOption) app.AppInterface { return f }
	t.Cleanup(func() { newApp = orig })
}

func TestRunServer_InitializeError(t *testing.T) {
	f := newFakeApp()
	f.initErr = errors.New("storage unreachable")
	withFakeApp(t, f)

	err := runServer(&config.Config{}, logger.NewTestLogger(t))
	assert.EqualError(t, err, "storage unreachable")
}

func TestRunServer_StartError(t *testing.T) {
	f := newFakeApp()
	f.startErr = errors.New("address in use")
	withFakeApp(t, f)

	origNotify := signalNotify
	signalNotify = func(chan<- os.Signal, ...os.Signal) {}
	t.Cleanup(func() { signalNotify = origNotify })

	err := runServer(&config.Config{}, logger.NewTestLogger(t))
	assert.EqualError(t, err, "address in use")
}

func TestRunServer_GracefulShutdown(t *testing.T) {
	f := newFakeApp()
	withFakeApp(t, f)

	origNotify := signalNotify
	signalNotify = func(c chan<- os.Signal, _ ...os.Signal) {
		go func() {
			<-f.started
			c <- syscall.SIGTERM
		}()
	}
	t.Cleanup(func() { signalNotify = origNotify })

	err := runServer(&config.Config{}, logger.NewTestLogger(t))
	assert.NoError(t, err)
	assert.Equal(t, 1, f.shutdowns)
}

// blockingApp never finishes shutting down
type blockingApp struct {
	*fakeApp
}

func (b blockingApp) Shutdown(ctx context.Context) error {
	b.shutdowns++
	<-ctx.Done()
	close(b.stop)
	return ctx.Err()
}

func TestRunServer_SecondSignalForcesExit(t *testing.T) {
	f := newFakeApp()
	b := blockingApp{f}
	orig := newApp
	newApp = func(*config.Config, ...app.AppOption) app.AppInterface { return b }
	t.Cleanup(func() { newApp = orig })

	origNotify := signalNotify
	signalNotify = func(c chan<- os.Signal, _ ...os.Signal) {
		go func() {
			<-f.started
			c <- syscall.SIGTERM
			c <- os.Interrupt
		}()
	}
	t.Cleanup(func() { signalNotify = origNotify })

	err := runServer(&config.Config{}, logger.NewTestLogger(t))
	assert.ErrorIs(t, err, errForcedShutdown)
}

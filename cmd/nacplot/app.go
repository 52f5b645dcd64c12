package main

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"

	"github.com/wailsapp/wails/v2/pkg/runtime"
	"go.uber.org/zap"

	"github.com/user/nacplot/internal/session"
)

// chartView is the payload of the showChart event.
type chartView struct {
	Title   string `json:"title"`
	Index   int    `json:"index"`
	Total   int    `json:"total"`
	ImgData string `json:"imgData"` // data: URL of the rendered PNG
}

// App is bound to the frontend and acts as the session's Display: each chart
// stays on screen until the frontend calls Dismiss.
type App struct {
	ctx     context.Context
	cancel  context.CancelFunc
	session *session.Session
	logger  *zap.Logger

	// window side effects, bound to the wails runtime in Startup
	emit     func(name string, data ...interface{})
	setTitle func(title string)
	quit     func()

	dismiss chan struct{}
	done    chan struct{}

	mu  sync.Mutex
	err error
}

// NewApp creates a new App application struct
func NewApp(s *session.Session, logger *zap.Logger) *App {
	return &App{
		session: s,
		logger:  logger,
		dismiss: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

// Startup is called when the app starts. The context is saved
// so we can call the runtime methods
func (a *App) Startup(ctx context.Context) {
	a.ctx = ctx
	a.emit = func(name string, data ...interface{}) { runtime.EventsEmit(ctx, name, data...) }
	a.setTitle = func(title string) { runtime.WindowSetTitle(ctx, title) }
	a.quit = func() { runtime.Quit(ctx) }
}

// DomReady starts walking the datasets once the frontend is listening for events.
func (a *App) DomReady(ctx context.Context) {
	if a.cancel != nil { // page reload
		return
	}
	runCtx, cancel := context.WithCancel(a.ctx)
	a.cancel = cancel

	go func() {
		defer close(a.done)
		defer func() {
			if r := recover(); r != nil {
				a.fail(fmt.Errorf("panic: %v", r))
			}
		}()

		shown, err := a.session.Run(runCtx, a)
		switch {
		case errors.Is(err, context.Canceled):
			a.logger.Info("Window closed before run finished", zap.Int("charts", shown))
			return
		case err != nil:
			a.fail(err)
			return
		}
		a.emit("runComplete", shown)
		a.quit()
	}()
}

// Shutdown stops a run still waiting on the window.
func (a *App) Shutdown(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}
}

// Dismiss is called from the frontend when the user is done with the current chart.
func (a *App) Dismiss() {
	select {
	case a.dismiss <- struct{}{}:
	default:
	}
}

// Show implements session.Display.
func (a *App) Show(ctx context.Context, chart *session.Chart) error {
	// drop a stale click from the previous chart
	select {
	case <-a.dismiss:
	default:
	}

	a.setTitle(chart.Title())
	a.emit("showChart", chartView{
		Title:   chart.Title(),
		Index:   chart.Index,
		Total:   chart.Total,
		ImgData: "data:image/png;base64," + base64.StdEncoding.EncodeToString(chart.PNG),
	})

	select {
	case <-a.dismiss:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close implements session.Display.
func (a *App) Close() error {
	a.emit("closeChart")
	return nil
}

// Err returns the error that aborted the run, if any.
func (a *App) Err() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.err
}

// fail records err and reports it to the window. The window stays open so the
// message can be read; main exits non-zero once the user closes it.
func (a *App) fail(err error) {
	a.mu.Lock()
	a.err = err
	a.mu.Unlock()

	a.logger.Error("Run failed", zap.Error(err))
	a.emit("runFailed", err.Error())
}

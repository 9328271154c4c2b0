package overlay

import (
	"context"
	"image/color"
	"sync"
	"time"

	"eyesaver/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
)

// Config defines overlay behaviour.
type Config struct {
	TickInterval  time.Duration
	FocusInterval time.Duration
	Fullscreen    bool
	// ManualTick leaves the break countdown to the owner, who advances it with Tick.
	ManualTick bool
}

// Window is the full-screen break overlay. While its countdown is positive it
// refuses to close and keeps reclaiming focus.
type Window struct {
	app        fyne.App
	window     fyne.Window
	config     Config
	timerLabel *canvas.Text
	background *canvas.Rectangle
	guard      *FocusGuard
	dispatch   func(func())

	mu         sync.Mutex
	session    uint64
	remaining  time.Duration
	active     bool
	onFinished func()
	cancel     context.CancelFunc
}

const (
	defaultScreenWidth  = float32(1920)
	defaultScreenHeight = float32(1080)
	timerTextSize       = 200
)

var (
	accentColor     = color.NRGBA{R: 255, G: 107, B: 53, A: 255}
	backgroundColor = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
)

type splashWindowDriver interface {
	CreateSplashWindow() fyne.Window
}

// New creates the overlay window. It stays hidden until Show.
func New(app fyne.App, config Config) *Window {
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}

	window := app.NewWindow("EyeSaver")
	if driver, ok := app.Driver().(splashWindowDriver); ok {
		// Splash window is undecorated (no native frame/buttons).
		window = driver.CreateSplashWindow()
	}
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(backgroundColor)

	timerLabel := canvas.NewText(timekeeper.FormatRemaining(0), accentColor)
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = timerTextSize

	window.SetContent(container.NewStack(background, container.NewCenter(timerLabel)))

	overlay := &Window{
		app:        app,
		window:     window,
		config:     config,
		timerLabel: timerLabel,
		background: background,
		dispatch:   fyne.Do,
	}
	overlay.guard = NewFocusGuard(window, config.FocusInterval)
	overlay.guard.raise = overlay.applyTopmost

	window.SetCloseIntercept(overlay.handleCloseRequest)
	overlay.suppressInput()
	app.Lifecycle().SetOnExitedForeground(overlay.handleFocusLost)

	return overlay
}

// Show starts a break countdown of remaining and calls onFinished once when it
// reaches zero. A session already in progress is abandoned without callback.
func (overlay *Window) Show(remaining time.Duration, onFinished func()) {
	remaining = remaining.Truncate(time.Second)
	if remaining < time.Second {
		remaining = time.Second
	}

	overlay.mu.Lock()
	overlay.stopLocked()
	overlay.session++
	session := overlay.session
	ctx, cancel := context.WithCancel(context.Background())
	overlay.cancel = cancel
	overlay.remaining = remaining
	overlay.active = true
	overlay.onFinished = onFinished
	overlay.mu.Unlock()

	overlay.setRemainingUnsafe(remaining)
	overlay.applyWindowMode()
	overlay.window.Show()
	overlay.window.RequestFocus()

	overlay.guard.ReleaseWhen(overlay.Active)
	overlay.guard.Acquire(ctx)

	if !overlay.config.ManualTick {
		go overlay.countdown(ctx, session)
	}
}

// Stop abandons the current session without invoking its callback and hides
// the overlay. Used on application shutdown.
func (overlay *Window) Stop() {
	overlay.mu.Lock()
	overlay.stopLocked()
	overlay.mu.Unlock()

	overlay.guard.Release()
	overlay.hide()
}

// Active reports whether a break countdown is running.
func (overlay *Window) Active() bool {
	overlay.mu.Lock()
	defer overlay.mu.Unlock()
	return overlay.active
}

// Remaining returns the remaining break time.
func (overlay *Window) Remaining() time.Duration {
	overlay.mu.Lock()
	defer overlay.mu.Unlock()
	return overlay.remaining
}

func (overlay *Window) countdown(ctx context.Context, session uint64) {
	ticker := time.NewTicker(overlay.config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			overlay.dispatch(func() {
				overlay.tickSession(session)
			})
		}
	}
}

// Tick advances the current break countdown by one interval.
func (overlay *Window) Tick() {
	overlay.mu.Lock()
	session := overlay.session
	overlay.mu.Unlock()
	overlay.tickSession(session)
}

func (overlay *Window) tickSession(session uint64) {
	overlay.mu.Lock()
	if !overlay.active || overlay.session != session {
		overlay.mu.Unlock()
		return
	}
	overlay.remaining -= overlay.config.TickInterval
	if overlay.remaining < 0 {
		overlay.remaining = 0
	}
	remaining := overlay.remaining
	var onFinished func()
	finished := remaining == 0
	if finished {
		onFinished = overlay.onFinished
		overlay.stopLocked()
	}
	overlay.mu.Unlock()

	overlay.setRemainingUnsafe(remaining)
	if !finished {
		return
	}

	overlay.guard.Release()
	overlay.hide()
	if onFinished != nil {
		onFinished()
	}
}

func (overlay *Window) stopLocked() {
	if overlay.cancel != nil {
		overlay.cancel()
		overlay.cancel = nil
	}
	overlay.active = false
	overlay.onFinished = nil
}

func (overlay *Window) handleCloseRequest() {
	if overlay.Active() {
		overlay.guard.Reassert()
		return
	}
	overlay.hide()
}

func (overlay *Window) handleFocusLost() {
	if overlay.Active() {
		overlay.guard.Reassert()
	}
}

func (overlay *Window) suppressInput() {
	windowCanvas := overlay.window.Canvas()
	windowCanvas.SetOnTypedKey(func(*fyne.KeyEvent) {})
	windowCanvas.SetOnTypedRune(func(rune) {})
	if desktopCanvas, ok := windowCanvas.(desktop.Canvas); ok {
		desktopCanvas.SetOnKeyDown(func(*fyne.KeyEvent) {})
		desktopCanvas.SetOnKeyUp(func(*fyne.KeyEvent) {})
	}
}

func (overlay *Window) hide() {
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(false)
	}
	overlay.window.Hide()
}

func (overlay *Window) setRemainingUnsafe(remaining time.Duration) {
	overlay.timerLabel.Text = timekeeper.FormatRemaining(remaining)
	overlay.timerLabel.Refresh()
}

func (overlay *Window) applyWindowMode() {
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(true)
		overlay.applyTopmost()
		return
	}
	overlay.window.SetFullScreen(false)
	overlay.resizeToScreen()
	overlay.applyTopmost()
}

func (overlay *Window) resizeToScreen() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := overlay.window.Canvas().Size()
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}
	overlay.window.Resize(screenSize)
	overlay.window.CenterOnScreen()
}

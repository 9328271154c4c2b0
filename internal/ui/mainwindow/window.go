package mainwindow

import (
	"errors"
	"image/color"
	"sync"
	"time"

	"eyesaver/internal/core/model"
	"eyesaver/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

var (
	errWorkInput  = errors.New("enter minutes, e.g. 25 or 0,5")
	errBreakInput = errors.New("enter seconds from 1 to 999")

	accentColor     = color.NRGBA{R: 255, G: 107, B: 53, A: 255}
	labelColor      = color.NRGBA{R: 136, G: 136, B: 136, A: 255}
	backgroundColor = color.NRGBA{R: 0, G: 0, B: 0, A: 255}
)

const (
	minWindowWidth  = 400
	minWindowHeight = 500
	countdownSize   = 150
	inputWidth      = 150
)

// Callbacks defines main window action handlers.
type Callbacks struct {
	OnStart func()
	OnStop  func()
}

// Window is the settings/timer window. While configuring it shows the two
// inputs and the start button; while running it shows the work countdown.
type Window struct {
	window       fyne.Window
	settings     Settings
	callbacks    Callbacks
	workEntry    *widget.Entry
	breakEntry   *widget.Entry
	startButton  *widget.Button
	stopButton   *widget.Button
	countdown    *canvas.Text
	settingsView *fyne.Container
	timerView    *fyne.Container

	mu        sync.Mutex
	workText  string
	breakText string
}

// New creates the main window.
func New(app fyne.App, settings Settings, callbacks Callbacks) *Window {
	window := app.NewWindow(settings.WindowTitle)

	view := &Window{
		window:    window,
		settings:  settings,
		callbacks: callbacks,
		workText:  settings.WorkMinutes,
		breakText: settings.BreakSeconds,
	}

	view.workEntry = newInputEntry(settings.WorkMinutes, func(text string) error {
		if !model.ValidWorkInput(text) {
			return errWorkInput
		}
		return nil
	}, func(text string) {
		view.mu.Lock()
		view.workText = text
		view.mu.Unlock()
	})
	view.breakEntry = newInputEntry(settings.BreakSeconds, func(text string) error {
		if !model.ValidBreakInput(text) {
			return errBreakInput
		}
		return nil
	}, func(text string) {
		view.mu.Lock()
		view.breakText = text
		view.mu.Unlock()
	})

	view.startButton = widget.NewButton(settings.StartLabel, view.handleStart)
	view.startButton.Importance = widget.HighImportance
	view.stopButton = widget.NewButton(settings.StopLabel, view.handleStop)
	view.stopButton.Importance = widget.DangerImportance

	view.countdown = canvas.NewText(timekeeper.FormatRemaining(0), accentColor)
	view.countdown.Alignment = fyne.TextAlignCenter
	view.countdown.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	view.countdown.TextSize = countdownSize

	view.settingsView = container.NewVBox(
		fieldCaption(settings.WorkLabel),
		container.NewCenter(fixedWidth(view.workEntry, inputWidth)),
		layout.NewSpacer(),
		fieldCaption(settings.BreakLabel),
		container.NewCenter(fixedWidth(view.breakEntry, inputWidth)),
		layout.NewSpacer(),
		container.NewCenter(view.startButton),
	)
	view.timerView = container.NewVBox(
		view.countdown,
		container.NewCenter(view.stopButton),
	)
	view.timerView.Hide()

	content := container.NewVBox(
		layout.NewSpacer(),
		view.settingsView,
		view.timerView,
		layout.NewSpacer(),
	)
	background := canvas.NewRectangle(backgroundColor)
	window.SetContent(container.NewStack(background, container.NewPadded(content)))
	window.Resize(fyne.NewSize(minWindowWidth, minWindowHeight))

	return view
}

// Window returns the underlying Fyne window.
func (view *Window) Window() fyne.Window {
	return view.window
}

// Show displays the main window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// SessionConfig parses the current input. Unparsable fields fall back to
// their defaults. Safe to call from any goroutine.
func (view *Window) SessionConfig() model.SessionConfig {
	view.mu.Lock()
	defer view.mu.Unlock()
	return model.ParseSessionConfig(view.workText, view.breakText)
}

// ShowRunning switches to the countdown view.
func (view *Window) ShowRunning(remaining time.Duration) {
	view.SetRemaining(remaining)
	view.settingsView.Hide()
	view.timerView.Show()
}

// ShowConfiguring switches back to the input view.
func (view *Window) ShowConfiguring() {
	view.timerView.Hide()
	view.settingsView.Show()
}

// SetRemaining updates the countdown label.
func (view *Window) SetRemaining(remaining time.Duration) {
	view.countdown.Text = timekeeper.FormatRemaining(remaining)
	view.countdown.Refresh()
}

func (view *Window) handleStart() {
	if view.callbacks.OnStart != nil {
		view.callbacks.OnStart()
	}
}

func (view *Window) handleStop() {
	if view.callbacks.OnStop != nil {
		view.callbacks.OnStop()
	}
}

func newInputEntry(text string, validate fyne.StringValidator, onChanged func(string)) *widget.Entry {
	entry := widget.NewEntry()
	entry.SetText(text)
	entry.Validator = validate
	entry.OnChanged = onChanged
	entry.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	return entry
}

func fieldCaption(text string) fyne.CanvasObject {
	caption := canvas.NewText(text, labelColor)
	caption.Alignment = fyne.TextAlignCenter
	caption.TextSize = 14
	return caption
}

func fixedWidth(object fyne.CanvasObject, width float32) fyne.CanvasObject {
	return container.New(&fixedWidthLayout{width: width}, object)
}

type fixedWidthLayout struct {
	width float32
}

func (layout *fixedWidthLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	for _, object := range objects {
		object.Move(fyne.NewPos(0, 0))
		object.Resize(size)
	}
}

func (layout *fixedWidthLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	height := float32(0)
	for _, object := range objects {
		if objectMin := object.MinSize(); objectMin.Height > height {
			height = objectMin.Height
		}
	}
	return fyne.NewSize(layout.width, height)
}

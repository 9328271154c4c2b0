package controller

import (
	"log"

	"eyesaver/internal/core/timekeeper"
	"eyesaver/internal/ui/mainwindow"
	"eyesaver/internal/ui/overlay"
	"eyesaver/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const (
	appName     = "EyeSaver"
	eventBuffer = 16
)

// Controller routes keeper events to the main window, the break overlay and
// the tray. It also owns the close and quit paths, which never cut a break short.
type Controller struct {
	app        fyne.App
	keeper     *timekeeper.TimeKeeper
	mainWindow *mainwindow.Window
	overlay    *overlay.Window
	tray       *tray.Manager
	events     <-chan timekeeper.Event

	// Touched only on the UI thread.
	quitPending bool
	closed      bool
}

// New builds the windows, the state machine and the tray for app.
func New(app fyne.App, settings mainwindow.Settings) *Controller {
	return newController(app, settings, settings.TimeKeeperConfig(), settings.OverlayConfig())
}

func newController(app fyne.App, settings mainwindow.Settings, keeperConfig timekeeper.Config, overlayConfig overlay.Config) *Controller {
	controller := &Controller{app: app}

	controller.mainWindow = mainwindow.New(app, settings, mainwindow.Callbacks{
		OnStart: controller.start,
		OnStop:  controller.stop,
	})
	controller.keeper = timekeeper.New(controller.mainWindow, keeperConfig)
	controller.overlay = overlay.New(app, overlayConfig)

	labels := tray.Labels{
		Title: appName,
		Show:  "Show",
		Start: settings.StartLabel,
		Stop:  settings.StopLabel,
		Quit:  "Quit",
	}
	callbacks := tray.Callbacks{
		OnShow:   controller.mainWindow.Show,
		OnToggle: controller.toggle,
		OnQuit:   controller.RequestQuit,
	}
	if desktopApp, ok := app.(desktop.App); ok {
		controller.tray = tray.New(desktopApp, labels, callbacks)
		if app.Icon() != nil {
			desktopApp.SetSystemTrayIcon(app.Icon())
		}
	} else {
		log.Printf("system tray unsupported on this platform")
		controller.tray = tray.New(nil, labels, callbacks)
	}

	window := controller.mainWindow.Window()
	window.SetMaster()
	window.SetCloseIntercept(controller.handleClose)

	controller.events = controller.keeper.Subscribe(eventBuffer)
	return controller
}

// Show starts forwarding keeper events to the UI thread and shows the main window.
func (controller *Controller) Show() {
	go controller.forward()
	controller.mainWindow.Show()
}

// Handle applies one keeper event to the views. Must run on the UI thread.
func (controller *Controller) Handle(event timekeeper.Event) {
	switch event.Type {
	case timekeeper.EventStateChange:
		controller.handleStateChange(event)
	case timekeeper.EventProgress:
		controller.handleProgress(event)
	case timekeeper.EventStopRequested:
		controller.tray.SetRunning(false)
		if !controller.quitPending {
			controller.tray.SetStatus("on break, stopping afterwards")
		}
	case timekeeper.EventStopCancelled:
		controller.tray.SetRunning(true)
		controller.tray.SetStatus("on break")
	}
}

// RequestQuit ends the application. During a break the quit is deferred
// until the overlay has counted down.
func (controller *Controller) RequestQuit() {
	if controller.keeper.State() == timekeeper.StateBreak {
		controller.quitPending = true
		controller.keeper.Stop()
		controller.tray.SetStatus("on break, quitting afterwards")
		return
	}
	controller.quit()
}

// Shutdown stops the keeper and the overlay timers. Safe to call repeatedly.
func (controller *Controller) Shutdown() {
	if controller.closed {
		return
	}
	controller.closed = true
	controller.keeper.Shutdown()
	controller.overlay.Stop()
}

func (controller *Controller) forward() {
	for event := range controller.events {
		event := event
		fyne.Do(func() {
			controller.Handle(event)
		})
	}
}

func (controller *Controller) handleStateChange(event timekeeper.Event) {
	switch event.State {
	case timekeeper.StateWork:
		controller.mainWindow.ShowRunning(event.Remaining)
		controller.tray.SetRunning(true)
		controller.tray.SetStatus("next break in " + timekeeper.FormatRemaining(event.Remaining))
	case timekeeper.StateBreak:
		controller.mainWindow.SetRemaining(0)
		controller.tray.SetStatus("on break")
		controller.overlay.Show(event.Remaining, controller.keeper.FinishBreak)
	case timekeeper.StateIdle:
		controller.mainWindow.ShowConfiguring()
		controller.tray.SetRunning(false)
		controller.tray.SetStatus("idle")
		if controller.quitPending {
			controller.quit()
		}
	}
}

func (controller *Controller) handleProgress(event timekeeper.Event) {
	if event.State != timekeeper.StateWork {
		return
	}
	controller.mainWindow.SetRemaining(event.Remaining)
	controller.tray.SetStatus("next break in " + timekeeper.FormatRemaining(event.Remaining))
}

func (controller *Controller) start() {
	controller.quitPending = false
	controller.keeper.Start()
}

func (controller *Controller) stop() {
	controller.keeper.Stop()
}

func (controller *Controller) toggle() {
	if controller.keeper.Running() {
		controller.stop()
		return
	}
	controller.start()
}

// handleClose replaces the default close of the main window. A close request
// during a break is ignored; the overlay keeps the screen.
func (controller *Controller) handleClose() {
	if controller.keeper.State() == timekeeper.StateBreak {
		return
	}
	controller.Shutdown()
	controller.mainWindow.Window().Close()
}

func (controller *Controller) quit() {
	controller.Shutdown()
	controller.app.Quit()
}

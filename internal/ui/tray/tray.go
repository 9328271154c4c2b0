package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow   func()
	OnToggle func()
	OnQuit   func()
}

// Labels holds the menu captions.
type Labels struct {
	Title string
	Show  string
	Start string
	Stop  string
	Quit  string
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	labels      Labels
	callbacks   Callbacks
	statusItem  *fyne.MenuItem
	showItem    *fyne.MenuItem
	toggleItem  *fyne.MenuItem
	quitItem    *fyne.MenuItem
	statusLabel string
}

// New creates a tray manager. A nil app gives a manager without a tray, which
// keeps the menu state for callers on platforms lacking one.
func New(app desktop.App, labels Labels, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		labels:      labels,
		callbacks:   callbacks,
		statusLabel: "idle",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true

	manager.showItem = fyne.NewMenuItem(labels.Show, func() {
		if manager.callbacks.OnShow != nil {
			manager.callbacks.OnShow()
		}
	})
	manager.toggleItem = fyne.NewMenuItem(labels.Start, func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})
	manager.quitItem = fyne.NewMenuItem(labels.Quit, func() {
		if manager.callbacks.OnQuit != nil {
			manager.callbacks.OnQuit()
		}
	})
	manager.quitItem.IsQuit = true

	manager.refreshStatus()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// SetRunning switches the toggle item between start and stop.
func (manager *Manager) SetRunning(running bool) {
	if running {
		manager.toggleItem.Label = manager.labels.Stop
	} else {
		manager.toggleItem.Label = manager.labels.Start
	}
	manager.refreshMenu()
}

// Status returns the current status line.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

// ToggleLabel returns the caption of the start/stop item.
func (manager *Manager) ToggleLabel() string {
	return manager.toggleItem.Label
}

func (manager *Manager) refreshStatus() {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", manager.statusLabel)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(manager.labels.Title,
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.showItem,
		manager.toggleItem,
		fyne.NewMenuItemSeparator(),
		manager.quitItem,
	))
}

//go:build windows

package overlay

import (
	"syscall"

	"fyne.io/fyne/v2/driver"
)

const (
	swpNoSize     = 0x0001
	swpNoMove     = 0x0002
	swpShowWindow = 0x0040
)

// HWND_TOPMOST is (HWND)-1.
var hwndTopmost = ^uintptr(0)

var (
	user32DLL               = syscall.NewLazyDLL("user32.dll")
	procSetWindowPos        = user32DLL.NewProc("SetWindowPos")
	procSetForegroundWindow = user32DLL.NewProc("SetForegroundWindow")
	procBringWindowToTop    = user32DLL.NewProc("BringWindowToTop")
)

func (overlay *Window) applyTopmost() {
	nativeWindow, ok := overlay.window.(driver.NativeWindow)
	if !ok {
		return
	}

	nativeWindow.RunNative(func(context any) {
		var hwnd uintptr
		switch value := context.(type) {
		case driver.WindowsWindowContext:
			hwnd = value.HWND
		case *driver.WindowsWindowContext:
			hwnd = value.HWND
		default:
			return
		}
		if hwnd == 0 {
			return
		}

		procSetWindowPos.Call(hwnd, hwndTopmost, 0, 0, 0, 0, uintptr(swpNoMove|swpNoSize|swpShowWindow))
		procBringWindowToTop.Call(hwnd)
		procSetForegroundWindow.Call(hwnd)
	})
}

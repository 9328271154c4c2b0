//go:build !windows

package overlay

// Full screen plus the undecorated splash window is all Fyne offers here.
func (overlay *Window) applyTopmost() {}

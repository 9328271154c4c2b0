package overlay

import (
	"context"
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

const defaultFocusInterval = 100 * time.Millisecond

// Focusable is the part of a window the guard needs to keep it in front.
type Focusable interface {
	Show()
	RequestFocus()
}

// FocusGuard holds exclusive input focus for a target window. Once acquired
// it reasserts focus periodically and on demand until it is released, the
// acquiring context ends, or the ReleaseWhen predicate reports false.
type FocusGuard struct {
	target   Focusable
	interval time.Duration
	raise    func()
	dispatch func(func())

	mu           sync.Mutex
	holding      func() bool
	ctx          context.Context
	cancel       context.CancelFunc
	reassertions int
}

// NewFocusGuard creates a guard for target. Periodic reassertion runs every interval.
func NewFocusGuard(target Focusable, interval time.Duration) *FocusGuard {
	if interval <= 0 {
		interval = defaultFocusInterval
	}
	return &FocusGuard{
		target:   target,
		interval: interval,
		dispatch: fyne.Do,
	}
}

// Acquire takes focus immediately and keeps reclaiming it until released.
func (guard *FocusGuard) Acquire(ctx context.Context) {
	guard.mu.Lock()
	if guard.cancel != nil {
		guard.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	guard.ctx = runCtx
	guard.cancel = cancel
	guard.mu.Unlock()

	if !guard.Reassert() {
		return
	}
	go guard.run(runCtx)
}

// ReleaseWhen sets the condition for holding focus: the guard lets go the
// first time holding returns false.
func (guard *FocusGuard) ReleaseWhen(holding func() bool) {
	guard.mu.Lock()
	defer guard.mu.Unlock()
	guard.holding = holding
}

// Reassert raises and focuses the target if the guard is still held.
// It reports whether focus was reclaimed.
func (guard *FocusGuard) Reassert() bool {
	guard.mu.Lock()
	if !guard.heldLocked() {
		guard.mu.Unlock()
		return false
	}
	holding := guard.holding
	guard.mu.Unlock()

	if holding != nil && !holding() {
		guard.Release()
		return false
	}

	guard.target.Show()
	guard.target.RequestFocus()
	if guard.raise != nil {
		guard.raise()
	}

	guard.mu.Lock()
	guard.reassertions++
	guard.mu.Unlock()
	return true
}

// Release stops reclaiming focus.
func (guard *FocusGuard) Release() {
	guard.mu.Lock()
	defer guard.mu.Unlock()
	if guard.cancel != nil {
		guard.cancel()
		guard.cancel = nil
		guard.ctx = nil
	}
}

// Held reports whether the guard is active.
func (guard *FocusGuard) Held() bool {
	guard.mu.Lock()
	defer guard.mu.Unlock()
	return guard.heldLocked()
}

func (guard *FocusGuard) reassertionCount() int {
	guard.mu.Lock()
	defer guard.mu.Unlock()
	return guard.reassertions
}

func (guard *FocusGuard) heldLocked() bool {
	return guard.cancel != nil && guard.ctx.Err() == nil
}

func (guard *FocusGuard) run(ctx context.Context) {
	ticker := time.NewTicker(guard.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			guard.dispatch(func() {
				if ctx.Err() == nil {
					guard.Reassert()
				}
			})
		}
	}
}

package timekeeper

import (
	"sync"
	"time"

	"eyesaver/internal/core/model"
)

// ConfigSource supplies the session configuration. It is consulted every time
// a work interval or a break begins, never in between.
type ConfigSource interface {
	SessionConfig() model.SessionConfig
}

// ConfigSourceFunc adapts a plain function to ConfigSource.
type ConfigSourceFunc func() model.SessionConfig

// SessionConfig calls fn.
func (fn ConfigSourceFunc) SessionConfig() model.SessionConfig {
	return fn()
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	// ManualTick leaves the work countdown to the owner, who advances it
	// with Tick instead of the keeper's own ticker goroutine.
	ManualTick bool
}

// TimeKeeper is the work/break state machine. It owns the work countdown;
// the break countdown belongs to whoever displays the break and reports back
// through FinishBreak.
type TimeKeeper struct {
	mu            sync.Mutex
	source        ConfigSource
	options       Config
	state         State
	remaining     time.Duration
	total         time.Duration
	stopRequested bool
	events        []chan Event
	stopCh        chan struct{}
	closed        bool
}

// New creates an idle TimeKeeper reading its durations from source.
func New(source ConfigSource, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	return &TimeKeeper{
		source:  source,
		options: options,
		state:   StateIdle,
	}
}

// Subscribe registers a new observer channel. Channels are closed by Shutdown.
// Progress events are dropped when the buffer is full; state changes and stop
// requests are always delivered, so observers must keep draining.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		close(ch)
		return ch
	}
	keeper.events = append(keeper.events, ch)
	return ch
}

// State returns the current state.
func (keeper *TimeKeeper) State() State {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.state
}

// Remaining returns the remaining work time, or the break length while on break.
func (keeper *TimeKeeper) Remaining() time.Duration {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.remaining
}

// Running reports whether the keeper will keep cycling after the current interval.
func (keeper *TimeKeeper) Running() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.state != StateIdle && !keeper.stopRequested
}

// Ticking reports whether the work countdown is active.
func (keeper *TimeKeeper) Ticking() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.stopCh != nil
}

// Start begins a work interval. During a break it withdraws an earlier stop
// request so work resumes when the break ends; otherwise it only acts when idle.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return
	}
	switch keeper.state {
	case StateIdle:
		keeper.enterWorkLocked(time.Now())
	case StateBreak:
		if !keeper.stopRequested {
			return
		}
		keeper.stopRequested = false
		keeper.emitLocked(Event{
			Type:      EventStopCancelled,
			State:     StateBreak,
			Remaining: keeper.remaining,
			At:        time.Now(),
		})
	}
}

// Stop ends the work interval immediately. During a break it only records
// the request: the break runs to completion and the keeper then goes idle.
func (keeper *TimeKeeper) Stop() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()

	switch keeper.state {
	case StateWork:
		keeper.stopTickerLocked()
		keeper.enterIdleLocked(time.Now())
	case StateBreak:
		if keeper.stopRequested {
			return
		}
		keeper.stopRequested = true
		keeper.emitLocked(Event{
			Type:      EventStopRequested,
			State:     StateBreak,
			Remaining: keeper.remaining,
			At:        time.Now(),
		})
	}
}

// FinishBreak is called when the break countdown reaches zero.
func (keeper *TimeKeeper) FinishBreak() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.state != StateBreak {
		return
	}
	now := time.Now()
	if keeper.stopRequested || keeper.closed {
		keeper.enterIdleLocked(now)
		return
	}
	keeper.enterWorkLocked(now)
}

// Shutdown stops ticking and closes observers. The keeper cannot be restarted.
func (keeper *TimeKeeper) Shutdown() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	keeper.stopTickerLocked()
	keeper.state = StateIdle
	keeper.remaining = 0
	keeper.stopRequested = false
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) run(stopCh chan struct{}) {
	ticker := time.NewTicker(keeper.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case tickTime := <-ticker.C:
			keeper.mu.Lock()
			// A stale ticker may still fire once after its interval was replaced.
			if keeper.stopCh == stopCh {
				keeper.advanceLocked(tickTime)
			}
			keeper.mu.Unlock()
		}
	}
}

// Tick advances the work countdown by one interval. It is a no-op outside work.
func (keeper *TimeKeeper) Tick() {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.advanceLocked(time.Now())
}

func (keeper *TimeKeeper) advanceLocked(now time.Time) {
	if keeper.state != StateWork {
		return
	}
	keeper.remaining -= keeper.options.TickInterval
	if keeper.remaining > 0 {
		keeper.emitLocked(Event{
			Type:      EventProgress,
			State:     StateWork,
			Remaining: keeper.remaining,
			Progress:  keeper.progressLocked(),
			At:        now,
		})
		return
	}

	keeper.remaining = 0
	keeper.stopTickerLocked()
	keeper.enterBreakLocked(now)
}

func (keeper *TimeKeeper) enterWorkLocked(now time.Time) {
	config := keeper.source.SessionConfig()
	keeper.state = StateWork
	keeper.stopRequested = false
	keeper.remaining = wholeSeconds(config.Work)
	keeper.total = keeper.remaining
	keeper.startTickerLocked()

	keeper.emitLocked(Event{
		Type:      EventStateChange,
		State:     StateWork,
		Remaining: keeper.remaining,
		At:        now,
	})
}

func (keeper *TimeKeeper) enterBreakLocked(now time.Time) {
	config := keeper.source.SessionConfig()
	keeper.state = StateBreak
	keeper.remaining = wholeSeconds(config.Break)
	keeper.total = keeper.remaining

	keeper.emitLocked(Event{
		Type:      EventStateChange,
		State:     StateBreak,
		Remaining: keeper.remaining,
		At:        now,
	})
}

func (keeper *TimeKeeper) enterIdleLocked(now time.Time) {
	keeper.state = StateIdle
	keeper.remaining = 0
	keeper.total = 0
	keeper.stopRequested = false

	keeper.emitLocked(Event{
		Type:  EventStateChange,
		State: StateIdle,
		At:    now,
	})
}

func (keeper *TimeKeeper) startTickerLocked() {
	keeper.stopTickerLocked()
	stopCh := make(chan struct{})
	keeper.stopCh = stopCh
	if !keeper.options.ManualTick {
		go keeper.run(stopCh)
	}
}

func (keeper *TimeKeeper) stopTickerLocked() {
	if keeper.stopCh != nil {
		close(keeper.stopCh)
		keeper.stopCh = nil
	}
}

func (keeper *TimeKeeper) progressLocked() float64 {
	if keeper.total <= 0 {
		return 1
	}
	progress := float64(keeper.total-keeper.remaining) / float64(keeper.total)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	for _, ch := range keeper.events {
		if event.Type != EventProgress {
			ch <- event
			continue
		}
		select {
		case ch <- event:
		default:
		}
	}
}

func wholeSeconds(value time.Duration) time.Duration {
	value = value.Truncate(time.Second)
	if value < time.Second {
		return time.Second
	}
	return value
}

package timekeeper

import (
	"testing"
	"time"

	"eyesaver/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type inputs struct {
	work  string
	brk   string
	reads int
}

func (in *inputs) SessionConfig() model.SessionConfig {
	in.reads++
	return model.ParseSessionConfig(in.work, in.brk)
}

func newManualKeeper(in *inputs) *TimeKeeper {
	return New(in, Config{TickInterval: time.Second, ManualTick: true})
}

func tickN(keeper *TimeKeeper, n int) {
	for i := 0; i < n; i++ {
		keeper.Tick()
	}
}

func drain(events <-chan Event) []Event {
	var out []Event
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, event)
		default:
			return out
		}
	}
}

func stateChanges(events []Event) []State {
	var states []State
	for _, event := range events {
		if event.Type == EventStateChange {
			states = append(states, event.State)
		}
	}
	return states
}

func assertSingleCountdown(t *testing.T, keeper *TimeKeeper) {
	t.Helper()
	switch keeper.State() {
	case StateWork:
		assert.True(t, keeper.Ticking(), "work countdown must tick in work state")
	case StateBreak, StateIdle:
		assert.False(t, keeper.Ticking(), "work countdown must not tick in %s state", keeper.State())
	}
}

func TestNewStartsIdle(t *testing.T) {
	keeper := newManualKeeper(&inputs{work: "25", brk: "20"})
	assert.Equal(t, StateIdle, keeper.State())
	assert.False(t, keeper.Running())
	assert.False(t, keeper.Ticking())
}

func TestStartEntersWorkWithConfiguredDuration(t *testing.T) {
	keeper := newManualKeeper(&inputs{work: "25", brk: "20"})
	events := keeper.Subscribe(8)

	keeper.Start()

	assert.Equal(t, StateWork, keeper.State())
	assert.Equal(t, 1500*time.Second, keeper.Remaining())
	assert.True(t, keeper.Running())
	assertSingleCountdown(t, keeper)

	got := drain(events)
	require.Len(t, got, 1)
	assert.Equal(t, EventStateChange, got[0].Type)
	assert.Equal(t, StateWork, got[0].State)
	assert.Equal(t, 1500*time.Second, got[0].Remaining)
}

func TestStartIsIgnoredUnlessIdle(t *testing.T) {
	in := &inputs{work: "1", brk: "5"}
	keeper := newManualKeeper(in)
	keeper.Start()
	tickN(keeper, 10)
	keeper.Start()
	assert.Equal(t, 50*time.Second, keeper.Remaining())
	assert.Equal(t, 1, in.reads)
}

func TestWorkTickEmitsProgress(t *testing.T) {
	keeper := newManualKeeper(&inputs{work: "1", brk: "5"})
	keeper.Start()
	events := keeper.Subscribe(8)

	tickN(keeper, 15)
	got := drain(events)
	require.Len(t, got, 8)
	last := got[len(got)-1]
	assert.Equal(t, EventProgress, last.Type)
	assert.Equal(t, StateWork, last.State)
	assert.InDelta(t, 0.25, keeper.progressLocked(), 0.001)
	assert.Equal(t, 45*time.Second, keeper.Remaining())
}

func TestWorkCountdownExpiryEntersBreak(t *testing.T) {
	keeper := newManualKeeper(&inputs{work: "0.5", brk: "5"})
	events := keeper.Subscribe(64)
	keeper.Start()

	tickN(keeper, 29)
	assert.Equal(t, StateWork, keeper.State())
	assert.Equal(t, time.Second, keeper.Remaining())

	keeper.Tick()
	assert.Equal(t, StateBreak, keeper.State())
	assert.Equal(t, 5*time.Second, keeper.Remaining())
	assertSingleCountdown(t, keeper)

	got := drain(events)
	last := got[len(got)-1]
	assert.Equal(t, EventStateChange, last.Type)
	assert.Equal(t, StateBreak, last.State)
	assert.Equal(t, 5*time.Second, last.Remaining)
}

func TestTicksDuringBreakAreIgnored(t *testing.T) {
	keeper := newManualKeeper(&inputs{work: "0.05", brk: "5"})
	keeper.Start()
	tickN(keeper, 3)
	require.Equal(t, StateBreak, keeper.State())

	tickN(keeper, 10)
	assert.Equal(t, StateBreak, keeper.State())
	assert.Equal(t, 5*time.Second, keeper.Remaining())
}

func TestBreakLengthIsReadWhenBreakBegins(t *testing.T) {
	in := &inputs{work: "0.05", brk: "5"}
	keeper := newManualKeeper(in)
	keeper.Start()
	in.brk = "9"
	tickN(keeper, 3)
	assert.Equal(t, 9*time.Second, keeper.Remaining())
}

func TestStopDuringWorkGoesIdle(t *testing.T) {
	keeper := newManualKeeper(&inputs{work: "25", brk: "20"})
	events := keeper.Subscribe(8)
	keeper.Start()
	tickN(keeper, 3)

	keeper.Stop()

	assert.Equal(t, StateIdle, keeper.State())
	assert.Equal(t, time.Duration(0), keeper.Remaining())
	assert.False(t, keeper.Running())
	assertSingleCountdown(t, keeper)
	assert.Equal(t, []State{StateWork, StateIdle}, stateChanges(drain(events)))

	tickN(keeper, 5)
	assert.Equal(t, StateIdle, keeper.State())
}

func TestStopWhileIdleIsNoop(t *testing.T) {
	keeper := newManualKeeper(&inputs{work: "25", brk: "20"})
	events := keeper.Subscribe(8)
	keeper.Stop()
	assert.Equal(t, StateIdle, keeper.State())
	assert.Empty(t, drain(events))
}

func TestStopDuringBreakDoesNotCutBreakShort(t *testing.T) {
	keeper := newManualKeeper(&inputs{work: "0.05", brk: "5"})
	keeper.Start()
	tickN(keeper, 3)
	require.Equal(t, StateBreak, keeper.State())
	events := keeper.Subscribe(8)

	keeper.Stop()
	keeper.Stop()

	assert.Equal(t, StateBreak, keeper.State())
	assert.False(t, keeper.Running())
	got := drain(events)
	require.Len(t, got, 1)
	assert.Equal(t, EventStopRequested, got[0].Type)

	keeper.FinishBreak()
	assert.Equal(t, StateIdle, keeper.State())
	assertSingleCountdown(t, keeper)
}

func TestStartDuringBreakWithdrawsStopRequest(t *testing.T) {
	keeper := newManualKeeper(&inputs{work: "0.05", brk: "5"})
	keeper.Start()
	tickN(keeper, 3)
	require.Equal(t, StateBreak, keeper.State())
	events := keeper.Subscribe(8)

	keeper.Start()
	assert.Empty(t, drain(events), "start without a pending stop changes nothing")

	keeper.Stop()
	require.False(t, keeper.Running())
	keeper.Start()

	assert.True(t, keeper.Running())
	assert.Equal(t, StateBreak, keeper.State())
	assert.Equal(t, 5*time.Second, keeper.Remaining())
	assertSingleCountdown(t, keeper)
	got := drain(events)
	require.Len(t, got, 2)
	assert.Equal(t, EventStopRequested, got[0].Type)
	assert.Equal(t, EventStopCancelled, got[1].Type)
	assert.Equal(t, StateBreak, got[1].State)

	keeper.FinishBreak()
	assert.Equal(t, StateWork, keeper.State())
	assert.Equal(t, 3*time.Second, keeper.Remaining())
}

func TestFinishBreakResumesWorkWithFreshConfig(t *testing.T) {
	in := &inputs{work: "0.05", brk: "5"}
	keeper := newManualKeeper(in)
	keeper.Start()
	tickN(keeper, 3)
	require.Equal(t, StateBreak, keeper.State())

	in.work = "0.1"
	keeper.FinishBreak()

	assert.Equal(t, StateWork, keeper.State())
	assert.Equal(t, 6*time.Second, keeper.Remaining())
	assert.True(t, keeper.Running())
	assertSingleCountdown(t, keeper)
}

func TestFinishBreakOutsideBreakIsIgnored(t *testing.T) {
	keeper := newManualKeeper(&inputs{work: "25", brk: "20"})
	keeper.FinishBreak()
	assert.Equal(t, StateIdle, keeper.State())

	keeper.Start()
	tickN(keeper, 2)
	keeper.FinishBreak()
	assert.Equal(t, StateWork, keeper.State())
	assert.Equal(t, 1498*time.Second, keeper.Remaining())
}

func TestWorkExpiryAlwaysEntersBreakAfterStopStart(t *testing.T) {
	keeper := newManualKeeper(&inputs{work: "0.05", brk: "2"})
	keeper.Start()
	keeper.Stop()
	keeper.Start()
	tickN(keeper, 3)
	assert.Equal(t, StateBreak, keeper.State())
}

func TestFullCycleMatchesExample(t *testing.T) {
	keeper := newManualKeeper(&inputs{work: "0.5", brk: "5"})
	events := keeper.Subscribe(128)
	keeper.Start()

	tickN(keeper, 30)
	require.Equal(t, StateBreak, keeper.State())
	assert.Equal(t, "00:05", FormatRemaining(keeper.Remaining()))

	keeper.FinishBreak()
	require.Equal(t, StateWork, keeper.State())
	assert.Equal(t, "00:30", FormatRemaining(keeper.Remaining()))

	assert.Equal(t, []State{StateWork, StateBreak, StateWork}, stateChanges(drain(events)))
}

func TestStateChangeIsDeliveredWhenBufferIsFull(t *testing.T) {
	keeper := newManualKeeper(&inputs{work: "0.5", brk: "5"})
	events := keeper.Subscribe(4)
	keeper.Start()
	tickN(keeper, 29)

	done := make(chan struct{})
	go func() {
		keeper.Tick()
		close(done)
	}()

	var got []Event
	timeout := time.After(2 * time.Second)
	for len(got) < 5 {
		select {
		case event := <-events:
			got = append(got, event)
		case <-timeout:
			t.Fatalf("break state change was not delivered, got %v", stateChanges(got))
		}
	}
	<-done

	assert.Equal(t, []State{StateWork, StateBreak}, stateChanges(got))
	assert.Equal(t, EventProgress, got[3].Type)
	assert.Equal(t, 27*time.Second, got[3].Remaining, "later progress events were dropped")
	assert.Equal(t, 5*time.Second, got[4].Remaining)
	assert.Equal(t, StateBreak, keeper.State())
}

func TestShutdownClosesObserversAndStopsTicking(t *testing.T) {
	keeper := newManualKeeper(&inputs{work: "25", brk: "20"})
	events := keeper.Subscribe(8)
	keeper.Start()

	keeper.Shutdown()
	keeper.Shutdown()

	assert.Equal(t, StateIdle, keeper.State())
	assert.False(t, keeper.Ticking())
	_ = drain(events)
	_, ok := <-events
	assert.False(t, ok)

	keeper.Start()
	assert.Equal(t, StateIdle, keeper.State())

	late := keeper.Subscribe(1)
	_, ok = <-late
	assert.False(t, ok)
}

func TestRealTickerDrivesWorkCountdown(t *testing.T) {
	keeper := New(&inputs{work: "0.0001", brk: "1"}, Config{TickInterval: 10 * time.Millisecond})
	defer keeper.Shutdown()
	events := keeper.Subscribe(256)
	keeper.Start()

	require.Eventually(t, func() bool {
		return keeper.State() == StateBreak
	}, 2*time.Second, 5*time.Millisecond)
	assert.False(t, keeper.Ticking())
	assert.Equal(t, []State{StateWork, StateBreak}, stateChanges(drain(events)))
}

func TestFormatRemaining(t *testing.T) {
	assert.Equal(t, "25:00", FormatRemaining(25*time.Minute))
	assert.Equal(t, "00:05", FormatRemaining(5*time.Second))
	assert.Equal(t, "01:01", FormatRemaining(61*time.Second+500*time.Millisecond))
	assert.Equal(t, "90:00", FormatRemaining(90*time.Minute))
	assert.Equal(t, "00:00", FormatRemaining(-time.Second))
}

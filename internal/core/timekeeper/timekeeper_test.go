package timekeeper

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grandmatimer/internal/core/model"
	"grandmatimer/internal/core/pomodoro"
)

type fakeAlarm struct {
	plays atomic.Int32
	err   error
}

func (alarm *fakeAlarm) Play() error {
	alarm.plays.Add(1)
	return alarm.err
}

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (keeper *TimeKeeper) ticking() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.cancelTick != nil
}

var shortConfig = model.TimerConfig{Work: 2 * time.Second, Break: time.Second, SoundEnabled: true}

// newManualKeeper returns a keeper whose ticker never fires on its own so
// tests can drive ticks synchronously.
func newManualKeeper(t *testing.T, config model.TimerConfig) (*TimeKeeper, *fakeAlarm) {
	t.Helper()
	var next int
	keeper := New(config, Config{
		TickInterval: time.Hour,
		Logger:       slog.New(slog.NewTextHandler(&lockedBuffer{}, nil)),
		NewID: func() string {
			next++
			return fmt.Sprintf("task-%d", next)
		},
	})
	alarm := &fakeAlarm{}
	keeper.SetAlarm(alarm)
	t.Cleanup(keeper.Stop)
	return keeper, alarm
}

func TestStartTaskStartsTicker(t *testing.T) {
	keeper, _ := newManualKeeper(t, model.DefaultTimerConfig())
	require.True(t, keeper.AddTask("water the plants", model.PriorityHigh))

	keeper.StartTask("task-1")

	state := keeper.Snapshot()
	assert.Equal(t, "task-1", state.Timer.ActiveTaskID)
	assert.Equal(t, model.PhaseWork, state.Timer.Phase)
	assert.Equal(t, 1500, state.Timer.SecondsRemaining)
	assert.True(t, state.Timer.Running)
	assert.True(t, keeper.ticking())
}

func TestTickerCancelledOnPauseAndReset(t *testing.T) {
	keeper, _ := newManualKeeper(t, model.DefaultTimerConfig())

	keeper.ToggleRunning()
	require.True(t, keeper.ticking())
	keeper.ToggleRunning()
	assert.False(t, keeper.ticking())

	keeper.ToggleRunning()
	require.True(t, keeper.ticking())
	keeper.Reset()
	assert.False(t, keeper.ticking())
	assert.False(t, keeper.Snapshot().Timer.Running)
}

func TestStopCancelsTickerAndClosesObservers(t *testing.T) {
	keeper, _ := newManualKeeper(t, model.DefaultTimerConfig())
	events := keeper.Subscribe(4)
	keeper.ToggleRunning()

	keeper.Stop()

	assert.False(t, keeper.ticking())
	for range events {
	}
	before := keeper.Snapshot()
	keeper.ToggleRunning()
	assert.Equal(t, before, keeper.Snapshot())

	_, open := <-keeper.Subscribe(1)
	assert.False(t, open)
}

func TestWorkCompletionMovesTaskAndPlaysAlarm(t *testing.T) {
	keeper, alarm := newManualKeeper(t, shortConfig)
	events := keeper.Subscribe(16)
	keeper.AddTask("darn socks", model.PriorityLow)
	keeper.StartTask("task-1")

	keeper.Dispatch(pomodoro.Tick{})
	assert.Equal(t, int32(0), alarm.plays.Load())
	keeper.Dispatch(pomodoro.Tick{})
	keeper.Dispatch(pomodoro.Tick{})

	state := keeper.Snapshot()
	assert.Empty(t, state.Pending)
	require.Len(t, state.Completed, 1)
	assert.Equal(t, "darn socks", state.Completed[0].Text)
	assert.Equal(t, model.PhaseBreak, state.Timer.Phase)
	assert.Equal(t, 1, state.Timer.SecondsRemaining)
	assert.False(t, state.Timer.Running)
	assert.False(t, keeper.ticking())
	assert.Equal(t, int32(1), alarm.plays.Load())

	completions := 0
	for len(events) > 0 {
		event := <-events
		if event.Type == EventPhaseComplete {
			completions++
			require.NotNil(t, event.Completion)
			assert.Equal(t, model.PhaseWork, event.Completion.Phase)
			require.NotNil(t, event.Completion.Task)
			assert.Equal(t, "task-1", event.Completion.Task.ID)
		}
	}
	assert.Equal(t, 1, completions)
}

func TestSoundOffSkipsAlarm(t *testing.T) {
	keeper, alarm := newManualKeeper(t, shortConfig)
	keeper.ToggleSound()
	keeper.ToggleRunning()

	keeper.Dispatch(pomodoro.Tick{})
	keeper.Dispatch(pomodoro.Tick{})

	assert.Equal(t, model.PhaseBreak, keeper.Snapshot().Timer.Phase)
	assert.Equal(t, int32(0), alarm.plays.Load())
}

func TestAlarmFailureIsLoggedNotFatal(t *testing.T) {
	logs := &lockedBuffer{}
	keeper := New(shortConfig, Config{
		TickInterval: time.Hour,
		Logger:       slog.New(slog.NewTextHandler(logs, nil)),
	})
	t.Cleanup(keeper.Stop)
	keeper.SetAlarm(&fakeAlarm{err: errors.New("speaker unplugged")})
	keeper.ToggleRunning()

	keeper.Dispatch(pomodoro.Tick{})
	keeper.Dispatch(pomodoro.Tick{})

	assert.Equal(t, model.PhaseBreak, keeper.Snapshot().Timer.Phase)
	assert.Contains(t, logs.String(), "alarm playback failed")
	assert.Contains(t, logs.String(), "speaker unplugged")
}

func TestTickerDrivesCountdown(t *testing.T) {
	keeper := New(model.TimerConfig{Work: time.Second, Break: time.Second, SoundEnabled: true}, Config{
		TickInterval: 5 * time.Millisecond,
		Logger:       slog.New(slog.NewTextHandler(&lockedBuffer{}, nil)),
	})
	t.Cleanup(keeper.Stop)
	alarm := &fakeAlarm{}
	keeper.SetAlarm(alarm)

	keeper.ToggleRunning()

	require.Eventually(t, func() bool {
		return keeper.Snapshot().Timer.Phase == model.PhaseBreak
	}, time.Second, 5*time.Millisecond)
	assert.False(t, keeper.Snapshot().Timer.Running)
	assert.False(t, keeper.ticking())

	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, keeper.Snapshot().Timer.SecondsRemaining)
	assert.Equal(t, int32(1), alarm.plays.Load())
}

func TestAddTask(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	keeper := New(model.DefaultTimerConfig(), Config{
		TickInterval: time.Hour,
		Now:          func() time.Time { return now },
	})
	t.Cleanup(keeper.Stop)

	assert.False(t, keeper.AddTask("   ", model.PriorityHigh))
	assert.True(t, keeper.AddTask("call grandma", model.PriorityHigh))

	state := keeper.Snapshot()
	require.Len(t, state.Pending, 1)
	assert.NotEmpty(t, state.Pending[0].ID)
	assert.Equal(t, now, state.Pending[0].CreatedAt)
	assert.Equal(t, model.PriorityMedium, state.Draft.Priority)
}

func TestTaskIDsAreUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := newTaskID()
		require.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestUpdateConfigRebasesIdleClock(t *testing.T) {
	keeper, _ := newManualKeeper(t, model.DefaultTimerConfig())

	keeper.UpdateConfig(model.TimerConfig{Work: 50 * time.Minute, Break: 10 * time.Minute})

	assert.Equal(t, 3000, keeper.Snapshot().Timer.SecondsRemaining)
}

// watchTickerCancel wraps the running ticker's cancel func so a test can
// see whether dispatch restarted it.
func watchTickerCancel(t *testing.T, keeper *TimeKeeper) *atomic.Bool {
	t.Helper()
	var cancelled atomic.Bool
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	require.NotNil(t, keeper.cancelTick)
	original := keeper.cancelTick
	keeper.cancelTick = func() {
		cancelled.Store(true)
		original()
	}
	return &cancelled
}

func TestStartUnknownTaskKeepsRunningTicker(t *testing.T) {
	keeper, _ := newManualKeeper(t, model.DefaultTimerConfig())
	keeper.ToggleRunning()
	keeper.Dispatch(pomodoro.Tick{})
	events := keeper.Subscribe(4)
	cancelled := watchTickerCancel(t, keeper)

	keeper.StartTask("ghost")
	keeper.DeleteTask("ghost")

	assert.False(t, cancelled.Load(), "rejected start must not restart the ticker")
	assert.True(t, keeper.ticking())
	assert.Equal(t, 1499, keeper.Snapshot().Timer.SecondsRemaining)
	assert.Empty(t, events, "no-op events are not emitted")
}

func TestStartPendingTaskRestartsTicker(t *testing.T) {
	keeper, _ := newManualKeeper(t, model.DefaultTimerConfig())
	require.True(t, keeper.AddTask("bake bread", model.PriorityMedium))
	keeper.ToggleRunning()
	keeper.Dispatch(pomodoro.Tick{})
	cancelled := watchTickerCancel(t, keeper)

	keeper.StartTask("task-1")

	assert.True(t, cancelled.Load())
	assert.True(t, keeper.ticking())
	assert.Equal(t, 1500, keeper.Snapshot().Timer.SecondsRemaining)
}

func TestRepeatedUnknownStartsDoNotStallCountdown(t *testing.T) {
	keeper := New(model.DefaultTimerConfig(), Config{
		TickInterval: 20 * time.Millisecond,
		Logger:       slog.New(slog.NewTextHandler(&lockedBuffer{}, nil)),
	})
	t.Cleanup(keeper.Stop)
	keeper.ToggleRunning()

	deadline := time.Now().Add(300 * time.Millisecond)
	for time.Now().Before(deadline) {
		keeper.StartTask("ghost")
		time.Sleep(12 * time.Millisecond)
	}

	assert.Less(t, keeper.Snapshot().Timer.SecondsRemaining, 1495)
}

func TestChangesCoalesceToLatestSnapshot(t *testing.T) {
	keeper, _ := newManualKeeper(t, model.DefaultTimerConfig())
	changes := keeper.Changes()

	for i := 0; i < 5; i++ {
		keeper.AddTask(fmt.Sprintf("chore %d", i), model.PriorityLow)
	}
	keeper.ToggleRunning()
	keeper.ToggleRunning()

	require.Len(t, changes, 1)
	<-changes
	state := keeper.Snapshot()
	assert.Len(t, state.Pending, 5)
	assert.False(t, state.Timer.Running)

	keeper.StartTask("missing")
	assert.Empty(t, changes)

	keeper.Stop()
	_, open := <-changes
	assert.False(t, open)
	_, open = <-keeper.Changes()
	assert.False(t, open)
}

package timekeeper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"grandmatimer/internal/core/model"
	"grandmatimer/internal/core/pomodoro"
)

// Alarm plays the completion sound. Play must not block on playback.
type Alarm interface {
	Play() error
}

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	Logger       *slog.Logger
	// NewID and Now default to UUIDv7 and time.Now.
	NewID func() string
	Now   func() time.Time
}

// TimeKeeper owns the pomodoro state and the ticker that drives it.
type TimeKeeper struct {
	mu         sync.Mutex
	config     model.TimerConfig
	options    Config
	state      pomodoro.State
	alarm      Alarm
	events     []chan Event
	changes    []chan struct{}
	cancelTick context.CancelFunc
	stopped    bool
}

// New creates a paused TimeKeeper at the start of a work phase.
func New(config model.TimerConfig, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Logger == nil {
		options.Logger = slog.Default()
	}
	if options.NewID == nil {
		options.NewID = newTaskID
	}
	if options.Now == nil {
		options.Now = time.Now
	}

	return &TimeKeeper{
		config:  config,
		options: options,
		state:   pomodoro.NewState(config),
	}
}

// SetAlarm injects the completion sound player.
func (keeper *TimeKeeper) SetAlarm(alarm Alarm) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.alarm = alarm
}

// Subscribe registers a new observer channel.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	if keeper.stopped {
		close(ch)
	} else {
		keeper.events = append(keeper.events, ch)
	}
	keeper.mu.Unlock()
	return ch
}

// Changes returns a channel that is signalled after every state change.
// Signals coalesce in a single slot, so a reader that renders Snapshot on
// each receive never misses the latest state.
func (keeper *TimeKeeper) Changes() <-chan struct{} {
	ch := make(chan struct{}, 1)
	keeper.mu.Lock()
	if keeper.stopped {
		close(ch)
	} else {
		keeper.changes = append(keeper.changes, ch)
	}
	keeper.mu.Unlock()
	return ch
}

// Snapshot returns a copy of the current state.
func (keeper *TimeKeeper) Snapshot() pomodoro.State {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.state.Clone()
}

// ToggleRunning starts or pauses the clock.
func (keeper *TimeKeeper) ToggleRunning() {
	keeper.Dispatch(pomodoro.ToggleRunning{})
}

// Reset rewinds the current phase and pauses.
func (keeper *TimeKeeper) Reset() {
	keeper.Dispatch(pomodoro.Reset{})
}

// ToggleSound flips the completion sound.
func (keeper *TimeKeeper) ToggleSound() {
	keeper.Dispatch(pomodoro.ToggleSound{})
}

// StartTask makes a pending task active and starts a work phase.
func (keeper *TimeKeeper) StartTask(id string) {
	keeper.Dispatch(pomodoro.StartTask{ID: id})
}

// DeleteTask removes a pending task.
func (keeper *TimeKeeper) DeleteTask(id string) {
	keeper.Dispatch(pomodoro.DeleteTask{ID: id})
}

// EditDraft records the entry form contents.
func (keeper *TimeKeeper) EditDraft(text string, priority model.Priority) {
	keeper.Dispatch(pomodoro.EditDraft{Text: text, Priority: priority})
}

// AddTask appends a pending task and reports whether it was accepted.
func (keeper *TimeKeeper) AddTask(text string, priority model.Priority) bool {
	previous, next := keeper.dispatch(context.Background(), pomodoro.AddTask{
		Text:     text,
		Priority: priority,
		ID:       keeper.options.NewID(),
		At:       keeper.options.Now(),
	})
	return len(next.Pending) > len(previous.Pending)
}

// UpdateConfig replaces the phase durations. A paused clock at the full
// length of its phase follows the new length immediately.
func (keeper *TimeKeeper) UpdateConfig(config model.TimerConfig) {
	keeper.mu.Lock()
	if keeper.stopped {
		keeper.mu.Unlock()
		return
	}
	previous := keeper.config
	keeper.config = config
	keeper.state = pomodoro.Rebase(keeper.state, previous, config)
	keeper.emitLocked(Event{
		Type:  EventStateChange,
		State: keeper.state.Clone(),
		At:    keeper.options.Now(),
	})
	keeper.mu.Unlock()
}

// Dispatch applies event to the state, keeps the ticker in step with the
// running flag and notifies observers.
func (keeper *TimeKeeper) Dispatch(event pomodoro.Event) {
	keeper.dispatch(context.Background(), event)
}

// Stop cancels the ticker and closes observers. The keeper ignores all
// further events.
func (keeper *TimeKeeper) Stop() {
	keeper.mu.Lock()
	if keeper.stopped {
		keeper.mu.Unlock()
		return
	}
	keeper.stopped = true
	keeper.stopTickerLocked()
	events, changes := keeper.events, keeper.changes
	keeper.events, keeper.changes = nil, nil
	keeper.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
	for _, ch := range changes {
		close(ch)
	}
}

// dispatch drops ticks from a ticker whose context was cancelled, which
// happens when a tick races with pause or reset. Events that leave the
// state unchanged are not emitted.
func (keeper *TimeKeeper) dispatch(ctx context.Context, event pomodoro.Event) (previous, next pomodoro.State) {
	keeper.mu.Lock()
	if keeper.stopped || ctx.Err() != nil {
		current := keeper.state
		keeper.mu.Unlock()
		return current, current
	}

	previous = keeper.state
	next, completion := pomodoro.Apply(previous, keeper.config, event)
	if completion == nil && next.Equal(previous) {
		keeper.mu.Unlock()
		return previous, next
	}
	keeper.state = next

	// An accepted start begins a fresh second; rejected ones return above
	// and leave the running ticker's phase alone.
	if _, restart := event.(pomodoro.StartTask); restart {
		keeper.stopTickerLocked()
	}
	keeper.syncTickerLocked()

	now := keeper.options.Now()
	eventType := EventStateChange
	if _, ok := event.(pomodoro.Tick); ok {
		eventType = EventTick
	}
	keeper.emitLocked(Event{
		Type:  eventType,
		State: next.Clone(),
		At:    now,
	})
	if completion != nil {
		keeper.emitLocked(Event{
			Type:       EventPhaseComplete,
			State:      next.Clone(),
			Completion: completion,
			At:         now,
		})
	}
	alarm := keeper.alarm
	keeper.mu.Unlock()

	logger := keeper.options.Logger
	if eventType != EventTick {
		logger.Debug("event applied", "event", pomodoro.Name(event), "running", next.Timer.Running)
	}
	if completion == nil {
		return previous, next
	}
	attrs := []any{"phase", completion.Phase}
	if completion.Task != nil {
		attrs = append(attrs, "task", completion.Task.Text)
	}
	logger.Info("phase complete", attrs...)

	if completion.PlayAlarm && alarm != nil {
		if err := alarm.Play(); err != nil {
			logger.Warn("alarm playback failed", "error", err)
		}
	}
	return previous, next
}

func (keeper *TimeKeeper) syncTickerLocked() {
	running := keeper.state.Timer.Running
	if running && keeper.cancelTick == nil {
		ctx, cancel := context.WithCancel(context.Background())
		keeper.cancelTick = cancel
		go keeper.run(ctx)
		return
	}
	if !running {
		keeper.stopTickerLocked()
	}
}

func (keeper *TimeKeeper) stopTickerLocked() {
	if keeper.cancelTick != nil {
		keeper.cancelTick()
		keeper.cancelTick = nil
	}
}

func (keeper *TimeKeeper) run(ctx context.Context) {
	ticker := time.NewTicker(keeper.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			keeper.dispatch(ctx, pomodoro.Tick{})
		}
	}
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
	for _, ch := range keeper.changes {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}

func newTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

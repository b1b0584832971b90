// Package engine drives the timer Store from the wall clock.
//
// Run is the single writer context of the application: user commands,
// frame ticks and resynchronization requests are all handled on its
// goroutine, one at a time. Frames only tick while the store runs in a timed
// mode; leaving that state stops the ticker before the next command is read
// so a stale frame can never overwrite a reset count.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"TickTack/clock"
	"TickTack/control"
	"TickTack/timer"
)

const (
	defaultFrameInterval = 16 * time.Millisecond
	enqueueTimeout       = 150 * time.Millisecond
	replyTimeout         = 200 * time.Millisecond
	commandBuffer        = 256
)

var (
	// ErrIgnored is returned for commands that do not apply to the current state.
	ErrIgnored = errors.New("command ignored")
	// ErrTimeout is returned by Dispatch when the loop did not answer in time.
	ErrTimeout = errors.New("command timed out")
)

// Alarm is the playback capability used when a countdown expires.
type Alarm interface {
	Play() error
	Pause()
	SeekToStart()
	IsPlaying() bool
}

// Options configures an Engine.
type Options struct {
	// FrameInterval is the delay between two frames while running.
	FrameInterval time.Duration
	// OnAlarm is called from the loop goroutine whenever the alarm starts
	// or stops.
	OnAlarm func(playing bool)
}

// session holds the transient reference points of one running period.
type session struct {
	mode      timer.Mode
	startRef  time.Time
	targetRef int64
	last      int64
}

// Engine is the timing engine and command loop.
type Engine struct {
	store *timer.Store
	clock clock.Clock
	alarm Alarm
	opts  Options

	cmdCh    chan control.Command
	resyncCh chan struct{}
	changes  <-chan timer.State

	// owned by the Run goroutine
	active bool
	sess   session
	ticker *time.Ticker
	frames <-chan time.Time
}

// New creates an engine bound to store. A nil alarm disables playback.
func New(store *timer.Store, clk clock.Clock, alarm Alarm, opts Options) *Engine {
	if opts.FrameInterval <= 0 {
		opts.FrameInterval = defaultFrameInterval
	}
	if alarm == nil {
		alarm = nopAlarm{}
	}
	return &Engine{
		store:    store,
		clock:    clk,
		alarm:    alarm,
		opts:     opts,
		cmdCh:    make(chan control.Command, commandBuffer),
		resyncCh: make(chan struct{}, 1),
		changes:  store.Subscribe(1),
	}
}

// Store returns the store the engine drives.
func (e *Engine) Store() *timer.Store {
	return e.store
}

// AlarmPlaying reports whether the alarm is currently sounding.
func (e *Engine) AlarmPlaying() bool {
	return e.alarm.IsPlaying()
}

// Enqueue posts a command to the loop. If the queue stays full for a short
// while the command is dropped and logged so callers never block for long.
func (e *Engine) Enqueue(cmd control.Command) {
	select {
	case e.cmdCh <- cmd:
	case <-time.After(enqueueTimeout):
		log.Printf("EnqueueCommand timeout: dropping %s command", cmd.Type)
	}
}

// Dispatch enqueues cmd and waits briefly for the loop to apply it.
func (e *Engine) Dispatch(cmd control.Command) error {
	reply := make(chan error, 1)
	cmd.Reply = reply
	e.Enqueue(cmd)
	select {
	case err := <-reply:
		return err
	case <-time.After(replyTimeout):
		return ErrTimeout
	}
}

// Resync asks the loop to recompute the count from the wall clock right
// away. Call it when the window returns to the foreground.
func (e *Engine) Resync() {
	select {
	case e.resyncCh <- struct{}{}:
	default:
	}
}

// Run processes commands and frames until ctx is done.
func (e *Engine) Run(ctx context.Context) {
	defer e.stopFrames()
	e.reconcile()

	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-e.cmdCh:
			err := e.handle(cmd)
			if err != nil && !errors.Is(err, ErrIgnored) {
				log.Printf("Command %s failed: %v", cmd.Type, err)
			}
			e.reconcile()
			if cmd.Reply != nil {
				select {
				case cmd.Reply <- err:
				default:
				}
			}
		case <-e.frames:
			e.frame()
		case <-e.resyncCh:
			e.resync()
		case _, ok := <-e.changes:
			if !ok {
				e.changes = nil
				continue
			}
			e.reconcile()
		}
	}
}

func (e *Engine) handle(cmd control.Command) error {
	st := e.store.Snapshot()

	switch cmd.Type {
	case control.CmdSetMode:
		e.stopAlarm()
		e.store.SetMode(cmd.Mode)
	case control.CmdIncrement:
		e.store.Increment()
	case control.CmdToggleRunning:
		if !st.IsRunning && st.Mode == timer.ModeCountdown && st.Count == 0 {
			return fmt.Errorf("%w: countdown has nothing left", ErrIgnored)
		}
		e.store.ToggleRunning()
	case control.CmdReset:
		e.stopAlarm()
		e.store.Reset()
	case control.CmdAddLap:
		if st.IsRunning {
			e.frame()
			st = e.store.Snapshot()
		}
		if !st.CanAddLap() {
			return fmt.Errorf("%w: no lap to record", ErrIgnored)
		}
		e.store.AddLap()
	case control.CmdClearLaps:
		e.store.ClearLaps()
	case control.CmdSetTargetTime:
		if st.IsRunning {
			return fmt.Errorf("%w: countdown is running", ErrIgnored)
		}
		e.store.SetTargetTime(cmd.Seconds)
	case control.CmdAddCounter:
		if _, ok := e.store.AddCounter(cmd.Name, cmd.Increment); !ok {
			return fmt.Errorf("%w: blank counter name", ErrIgnored)
		}
	case control.CmdRemoveCounter:
		e.store.RemoveCounter(cmd.CounterID)
	case control.CmdIncrementCounter:
		e.store.IncrementCounter(cmd.CounterID)
	case control.CmdResetCounterValues:
		e.store.ResetCountersValues()
	case control.CmdStopAlarm:
		e.stopAlarm()
	default:
		return fmt.Errorf("unknown command %s", cmd.Type)
	}
	return nil
}

// reconcile starts or stops the frame loop to match the store.
func (e *Engine) reconcile() {
	st := e.store.Snapshot()
	running := st.IsRunning && st.Mode.IsTimed()

	switch {
	case running && !e.active:
		e.begin(st)
	case running && e.sess.mode != st.Mode:
		e.stopFrames()
		e.begin(st)
	case !running && e.active:
		e.stopFrames()
	}

	// A countdown holding time again no longer has an alarm to ring.
	if !running && st.Mode == timer.ModeCountdown && st.Count > 0 && e.alarm.IsPlaying() {
		e.stopAlarm()
	}
}

func (e *Engine) begin(st timer.State) {
	now := e.clock.Now()
	e.sess = session{mode: st.Mode, last: st.Count}

	switch st.Mode {
	case timer.ModeChronometer:
		e.sess.startRef = now.Add(-millis(st.Count))
	case timer.ModeCountdown:
		e.sess.targetRef = st.TargetTime
		e.sess.startRef = now.Add(-millis(e.sess.targetRef - st.Count))
	}

	e.active = true
	e.ticker = time.NewTicker(e.opts.FrameInterval)
	e.frames = e.ticker.C
}

func (e *Engine) stopFrames() {
	if e.ticker != nil {
		e.ticker.Stop()
	}
	e.ticker = nil
	e.frames = nil
	e.active = false
	e.sess = session{}
}

// frame recomputes the count from the current instant.
func (e *Engine) frame() {
	if !e.active {
		return
	}
	elapsed := e.clock.Now().Sub(e.sess.startRef).Milliseconds()

	switch e.sess.mode {
	case timer.ModeChronometer:
		// Never show less than already shown, even if the clock steps back.
		if elapsed < e.sess.last {
			elapsed = e.sess.last
		}
		if e.store.SetRunningCount(e.sess.mode, elapsed) {
			e.sess.last = elapsed
		}
	case timer.ModeCountdown:
		remaining := e.sess.targetRef - elapsed
		if remaining < 0 {
			remaining = 0
		}
		if !e.store.SetRunningCount(e.sess.mode, remaining) {
			return
		}
		if remaining == 0 {
			e.expire()
		}
	}
}

func (e *Engine) resync() {
	e.reconcile()
	e.frame()
}

// expire ends a countdown that reached zero and rings the alarm.
func (e *Engine) expire() {
	e.store.Stop()
	e.stopFrames()

	e.alarm.SeekToStart()
	if err := e.alarm.Play(); err != nil {
		log.Printf("Failed to play alarm: %v", err)
	}
	e.notifyAlarm()
}

func (e *Engine) stopAlarm() {
	wasPlaying := e.alarm.IsPlaying()
	e.alarm.Pause()
	e.alarm.SeekToStart()
	if wasPlaying {
		e.notifyAlarm()
	}
}

func (e *Engine) notifyAlarm() {
	if e.opts.OnAlarm != nil {
		e.opts.OnAlarm(e.alarm.IsPlaying())
	}
}

func millis(ms int64) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

type nopAlarm struct{}

func (nopAlarm) Play() error     { return nil }
func (nopAlarm) Pause()          {}
func (nopAlarm) SeekToStart()    {}
func (nopAlarm) IsPlaying() bool { return false }

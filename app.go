// Package main contains the application wiring and the AppManager which
// connects the timing engine to the UI.
//
// Maintenance notes:
//   - The engine's Run goroutine is the only writer of the timer store. The
//     UI never touches the store directly; it sends commands through
//     Dispatch and renders snapshots.
//   - Store changes reach the UI through a subscription. Only the latest
//     snapshot matters, so the channel is drained with a buffer of 1 and
//     every render is marshalled onto the Fyne goroutine with fyne.Do.
package main

import (
	"context"
	"sync"

	"TickTack/control"
	"TickTack/engine"
	"TickTack/timer"
	"TickTack/ui"

	"fyne.io/fyne/v2"
)

// AppManager owns the engine and feeds its state to the view.
type AppManager struct {
	engine *engine.Engine
	store  *timer.Store

	viewLock sync.Mutex
	view     *ui.View

	ctx    context.Context
	cancel context.CancelFunc
	done   sync.WaitGroup
}

// NewAppManager creates a manager around store. Call Start once the view
// exists.
func NewAppManager(store *timer.Store, eng *engine.Engine) *AppManager {
	a := &AppManager{engine: eng, store: store}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	return a
}

// Dispatch sends cmd to the engine and waits for the result.
func (a *AppManager) Dispatch(cmd control.Command) error {
	return a.engine.Dispatch(cmd)
}

// State returns the current store snapshot.
func (a *AppManager) State() timer.State {
	return a.store.Snapshot()
}

// AlarmPlaying reports whether the countdown alarm sounds.
func (a *AppManager) AlarmPlaying() bool {
	return a.engine.AlarmPlaying()
}

// SetView attaches the view refreshed on every change.
func (a *AppManager) SetView(v *ui.View) {
	a.viewLock.Lock()
	a.view = v
	a.viewLock.Unlock()
}

// RefreshView renders the latest snapshot on the Fyne goroutine.
func (a *AppManager) RefreshView() {
	a.viewLock.Lock()
	v := a.view
	a.viewLock.Unlock()
	if v == nil {
		return
	}
	st := a.store.Snapshot()
	alarm := a.engine.AlarmPlaying()
	fyne.Do(func() {
		v.Refresh(st, alarm)
	})
}

// Start runs the engine loop and the view updater.
func (a *AppManager) Start() {
	changes := a.store.Subscribe(1)

	a.done.Add(2)
	go func() {
		defer a.done.Done()
		a.engine.Run(a.ctx)
	}()
	go func() {
		defer a.done.Done()
		a.watch(changes)
	}()
}

func (a *AppManager) watch(changes <-chan timer.State) {
	for {
		select {
		case <-a.ctx.Done():
			return
		case _, ok := <-changes:
			if !ok {
				return
			}
			a.RefreshView()
		}
	}
}

// Shutdown stops the engine loop and waits for background goroutines.
func (a *AppManager) Shutdown() {
	if a.cancel != nil {
		a.cancel()
	}
	a.done.Wait()
	a.store.Close()
}

package timer

import (
	"strings"
	"sync"

	"TickTack/clock"

	"github.com/google/uuid"
)

// Store owns the TimerState and notifies subscribers after every applied
// mutation.
type Store struct {
	mu     sync.RWMutex
	state  State
	clock  clock.Clock
	newID  func() string
	issued map[string]struct{}
	subs   []chan State
	closed bool
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the counter id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) {
		s.newID = gen
	}
}

// WithInitialMode sets the mode the store starts in.
func WithInitialMode(m Mode) Option {
	return func(s *Store) {
		s.state.Mode = m
	}
}

// NewStore creates a store in Counter mode. clk stamps lap timestamps.
func NewStore(clk clock.Clock, opts ...Option) *Store {
	s := &Store{
		state:  State{Mode: ModeCounter},
		clock:  clk,
		newID:  uuid.NewString,
		issued: make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.clone()
}

// Subscribe registers an observer channel. Sends never block: a subscriber
// that falls behind misses intermediate snapshots but always sees a later
// one unless the store is closed.
func (s *Store) Subscribe(buffer int) <-chan State {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan State, buffer)
	s.mu.Lock()
	if s.closed {
		close(ch)
	} else {
		s.subs = append(s.subs, ch)
	}
	s.mu.Unlock()
	return ch
}

// Close closes every subscriber channel. Mutations keep working afterwards
// but nobody is notified.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for _, ch := range subs {
		close(ch)
	}
}

// update applies fn under the write lock and fans out the result when fn
// reports a change.
func (s *Store) update(fn func(st *State) bool) bool {
	s.mu.Lock()
	if !fn(&s.state) {
		s.mu.Unlock()
		return false
	}
	snap := s.state.clone()
	subs := append([]chan State(nil), s.subs...)
	for _, ch := range subs {
		select {
		case ch <- snap:
		default:
			// Replace the stale snapshot so the latest state is never lost.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
			}
		}
	}
	s.mu.Unlock()
	return true
}

// SetMode switches to m. Switching to a different mode clears the count,
// the run flag, the laps and the countdown target; switching to the current
// mode only re-asserts it.
func (s *Store) SetMode(m Mode) {
	s.update(func(st *State) bool {
		if st.Mode == m {
			return true
		}
		st.Mode = m
		st.Count = 0
		st.IsRunning = false
		st.Laps = nil
		st.TargetTime = 0
		return true
	})
}

// Increment adds 1 to Count.
func (s *Store) Increment() {
	s.update(func(st *State) bool {
		st.Count++
		return true
	})
}

// SetCount overwrites Count.
func (s *Store) SetCount(v int64) {
	s.update(func(st *State) bool {
		st.Count = v
		return true
	})
}

// SetRunningCount overwrites Count only while the store is running in mode
// m. It returns false when the write was discarded, which happens when a
// frame computed against an older run races a stop, reset or mode switch.
func (s *Store) SetRunningCount(m Mode, v int64) bool {
	return s.update(func(st *State) bool {
		if !st.IsRunning || st.Mode != m {
			return false
		}
		st.Count = v
		return true
	})
}

// ToggleRunning flips the run flag.
func (s *Store) ToggleRunning() {
	s.update(func(st *State) bool {
		st.IsRunning = !st.IsRunning
		return true
	})
}

// Stop clears the run flag and reports whether it was set.
func (s *Store) Stop() bool {
	return s.update(func(st *State) bool {
		if !st.IsRunning {
			return false
		}
		st.IsRunning = false
		return true
	})
}

// Reset zeroes the count, stops running and drops all laps and counters.
// The countdown target is left untouched.
func (s *Store) Reset() {
	s.update(func(st *State) bool {
		st.Count = 0
		st.IsRunning = false
		st.Laps = nil
		st.Counters = nil
		s.issued = make(map[string]struct{})
		return true
	})
}

// AddLap appends a lap holding the current count.
func (s *Store) AddLap() {
	now := s.clock.Now()
	s.update(func(st *State) bool {
		st.Laps = append(st.Laps, Lap{
			Number:    len(st.Laps) + 1,
			Time:      st.Count,
			Timestamp: now,
		})
		return true
	})
}

// ClearLaps empties the lap list.
func (s *Store) ClearLaps() {
	s.update(func(st *State) bool {
		st.Laps = nil
		return true
	})
}

// MaxTargetSeconds is the longest countdown that can be armed, 99:59:59.
const MaxTargetSeconds = 99*3600 + 59*60 + 59

// SetTargetTime arms the countdown with the given number of seconds. The
// displayed count jumps to the full duration and running stops. Values are
// clamped to [1, MaxTargetSeconds].
func (s *Store) SetTargetTime(seconds int) {
	seconds = min(max(seconds, 1), MaxTargetSeconds)
	s.update(func(st *State) bool {
		st.TargetTime = int64(seconds) * 1000
		st.Count = st.TargetTime
		st.IsRunning = false
		return true
	})
}

// AddCounter appends a counter with a fresh id. Blank names are ignored and
// increments below 1 become 1.
func (s *Store) AddCounter(name string, increment int) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if increment < 1 {
		increment = 1
	}

	var id string
	s.update(func(st *State) bool {
		id = s.uniqueIDLocked()
		st.Counters = append(st.Counters, Counter{
			ID:        id,
			Name:      name,
			Increment: increment,
		})
		return true
	})
	return id, true
}

// uniqueIDLocked asks the generator until it yields an id never handed out
// since the counter collection was last reset.
func (s *Store) uniqueIDLocked() string {
	for {
		id := s.newID()
		if _, taken := s.issued[id]; !taken {
			s.issued[id] = struct{}{}
			return id
		}
	}
}

// RemoveCounter drops the counter with the given id.
func (s *Store) RemoveCounter(id string) {
	s.update(func(st *State) bool {
		for i, c := range st.Counters {
			if c.ID == id {
				st.Counters = append(st.Counters[:i:i], st.Counters[i+1:]...)
				return true
			}
		}
		return false
	})
}

// IncrementCounter adds a counter's own increment to its value.
func (s *Store) IncrementCounter(id string) {
	s.update(func(st *State) bool {
		for i := range st.Counters {
			if st.Counters[i].ID == id {
				st.Counters[i].Value += st.Counters[i].Increment
				return true
			}
		}
		return false
	})
}

// ResetCountersValues zeroes every counter value and keeps the counters.
func (s *Store) ResetCountersValues() {
	s.update(func(st *State) bool {
		for i := range st.Counters {
			st.Counters[i].Value = 0
		}
		return true
	})
}

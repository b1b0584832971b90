// Package timer contains the domain model of TickTack: the operating modes,
// the TimerState record and the Store that owns it.
//
// Maintenance notes:
//   - Store methods are safe for concurrent use, but the application routes
//     every write through the engine command loop so that a pending frame can
//     be cancelled before the next mutation is accepted.
//   - State values handed out by Snapshot and Subscribe are deep copies.
//     Mutating their slices never affects the Store.
package timer

import (
	"fmt"
	"time"
)

// Mode selects which fields of State are meaningful and how Count is read.
type Mode int

const (
	ModeCounter Mode = iota
	ModeChronometer
	ModeCountdown
	ModeMultiCounter
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeCounter, ModeChronometer, ModeCountdown, ModeMultiCounter}

func (m Mode) String() string {
	switch m {
	case ModeCounter:
		return "counter"
	case ModeChronometer:
		return "chronometer"
	case ModeCountdown:
		return "countdown"
	case ModeMultiCounter:
		return "multiCounter"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// IsTimed reports whether Count holds milliseconds driven by the clock.
func (m Mode) IsTimed() bool {
	return m == ModeChronometer || m == ModeCountdown
}

// ParseMode converts the String form of a mode back into a Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if m.String() == s {
			return m, nil
		}
	}
	return ModeCounter, fmt.Errorf("unknown mode %q", s)
}

// Lap is an elapsed-time snapshot taken while the chronometer runs.
type Lap struct {
	Number    int
	Time      int64 // milliseconds
	Timestamp time.Time
}

// Counter is a named tally of the multi-counter mode.
type Counter struct {
	ID        string
	Name      string
	Value     int
	Increment int
}

// State is the whole TimerState record.
type State struct {
	Mode      Mode
	Count     int64
	IsRunning bool
	// TargetTime is the armed countdown duration in milliseconds, 0 when unset.
	TargetTime int64
	Laps       []Lap
	Counters   []Counter
}

// HasTarget reports whether a countdown duration has been armed.
func (s State) HasTarget() bool {
	return s.TargetTime > 0
}

// CanAddLap reports whether a lap may be recorded right now: the chronometer
// must be running and no lap may already hold the current count.
func (s State) CanAddLap() bool {
	if s.Mode != ModeChronometer || !s.IsRunning {
		return false
	}
	for _, l := range s.Laps {
		if l.Time == s.Count {
			return false
		}
	}
	return true
}

// Counter returns the counter with the given id.
func (s State) Counter(id string) (Counter, bool) {
	for _, c := range s.Counters {
		if c.ID == id {
			return c, true
		}
	}
	return Counter{}, false
}

func (s State) clone() State {
	c := s
	if s.Laps != nil {
		c.Laps = append([]Lap(nil), s.Laps...)
	}
	if s.Counters != nil {
		c.Counters = append([]Counter(nil), s.Counters...)
	}
	return c
}

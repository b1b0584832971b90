// Package control defines lightweight command messages used by the UI to
// request actions from the engine command loop. The command-loop
// centralizes state changes so that the frame loop and user actions never
// interleave mid-update.
package control

import (
	"fmt"

	"TickTack/timer"
)

// CommandType enumerates supported command operations.
type CommandType int

const (
	CmdSetMode CommandType = iota
	CmdIncrement
	CmdToggleRunning
	CmdReset
	CmdAddLap
	CmdClearLaps
	CmdSetTargetTime
	CmdAddCounter
	CmdRemoveCounter
	CmdIncrementCounter
	CmdResetCounterValues
	CmdStopAlarm
)

var commandNames = [...]string{
	CmdSetMode:            "set-mode",
	CmdIncrement:          "increment",
	CmdToggleRunning:      "toggle-running",
	CmdReset:              "reset",
	CmdAddLap:             "add-lap",
	CmdClearLaps:          "clear-laps",
	CmdSetTargetTime:      "set-target-time",
	CmdAddCounter:         "add-counter",
	CmdRemoveCounter:      "remove-counter",
	CmdIncrementCounter:   "increment-counter",
	CmdResetCounterValues: "reset-counter-values",
	CmdStopAlarm:          "stop-alarm",
}

func (c CommandType) String() string {
	if c >= 0 && int(c) < len(commandNames) {
		return commandNames[c]
	}
	return fmt.Sprintf("CommandType(%d)", int(c))
}

// Command is the message sent from UI to the engine command loop. Only the
// fields relevant to Type are read. The optional Reply channel is used by
// the loop to confirm completion back to the sender.
type Command struct {
	Type      CommandType
	Mode      timer.Mode // CmdSetMode
	Seconds   int        // CmdSetTargetTime
	Name      string     // CmdAddCounter
	Increment int        // CmdAddCounter
	CounterID string     // CmdRemoveCounter, CmdIncrementCounter
	Reply     chan error // optional reply channel
}

// SetMode builds a mode switch command.
func SetMode(m timer.Mode) Command {
	return Command{Type: CmdSetMode, Mode: m}
}

// SetTargetTime builds a countdown arming command.
func SetTargetTime(seconds int) Command {
	return Command{Type: CmdSetTargetTime, Seconds: seconds}
}

// AddCounter builds a multi-counter creation command.
func AddCounter(name string, increment int) Command {
	return Command{Type: CmdAddCounter, Name: name, Increment: increment}
}

// ForCounter builds a command aimed at one counter.
func ForCounter(t CommandType, id string) Command {
	return Command{Type: t, CounterID: id}
}

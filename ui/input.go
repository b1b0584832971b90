package ui

import (
	"strconv"
	"strings"

	"TickTack/timer"
)

// ParseSeconds reads the countdown duration field. It accepts whole
// seconds or mm:ss; anything unreadable counts as 0. The result is clamped
// to [1, timer.MaxTargetSeconds].
func ParseSeconds(input string) int {
	input = strings.TrimSpace(input)
	var val int
	if mins, secs, ok := strings.Cut(input, ":"); ok {
		m, errM := strconv.Atoi(strings.TrimSpace(mins))
		s, errS := strconv.Atoi(strings.TrimSpace(secs))
		if errM == nil && errS == nil && m >= 0 && s >= 0 && s < 60 {
			val = min(m, timer.MaxTargetSeconds/60+1)*60 + s
		}
	} else if n, err := strconv.Atoi(input); err == nil {
		val = n
	}
	return min(max(1, val), timer.MaxTargetSeconds)
}

// ParseIncrement reads a counter step. Unreadable input falls back to 1 and
// the result is never below 1.
func ParseIncrement(input string) int {
	n, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 1
	}
	return max(1, n)
}

// CleanName trims a counter name. An empty result means "do not add".
func CleanName(input string) string {
	return strings.TrimSpace(input)
}

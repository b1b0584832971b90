package ui

import (
	"testing"

	"TickTack/timer"

	"github.com/stretchr/testify/assert"
)

func TestParseSeconds(t *testing.T) {
	cases := map[string]int{
		"60":    60,
		" 5 ":   5,
		"0":     1,
		"-10":   1,
		"":      1,
		"abc":   1,
		"1:30":  90,
		"00:59": 59,
		"2:75":  1,
		"x:10":  1,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseSeconds(in), "input %q", in)
	}
}

func TestParseSecondsCapsLongDurations(t *testing.T) {
	assert.Equal(t, timer.MaxTargetSeconds, ParseSeconds("9223372036854775807"))
	assert.Equal(t, timer.MaxTargetSeconds, ParseSeconds("360000"))
	assert.Equal(t, timer.MaxTargetSeconds, ParseSeconds("9999999999999:00"))
	assert.Equal(t, timer.MaxTargetSeconds, ParseSeconds("5999:59"))
}

func TestParseIncrement(t *testing.T) {
	assert.Equal(t, 3, ParseIncrement("3"))
	assert.Equal(t, 1, ParseIncrement("0"))
	assert.Equal(t, 1, ParseIncrement("-4"))
	assert.Equal(t, 1, ParseIncrement("two"))
	assert.Equal(t, 1, ParseIncrement(""))
}

func TestCleanName(t *testing.T) {
	assert.Equal(t, "Coffees", CleanName("  Coffees\t"))
	assert.Empty(t, CleanName("   "))
}

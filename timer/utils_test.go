package timer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00"},
		{999, "00:00"},
		{1000, "00:01"},
		{59999, "00:59"},
		{60000, "01:00"},
		{5000, "00:05"},
		{6039000, "100:39"},
		{-50, "00:00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTime(tt.ms), "FormatTime(%d)", tt.ms)
	}
}

func TestDisplayValue(t *testing.T) {
	assert.Equal(t, "3", DisplayValue(ModeCounter, 3))
	assert.Equal(t, "12", DisplayValue(ModeMultiCounter, 12))
	assert.Equal(t, "01:05", DisplayValue(ModeChronometer, 65000))
	assert.Equal(t, "00:05", DisplayValue(ModeCountdown, 5000))
}

func TestIsEven(t *testing.T) {
	assert.True(t, IsEven(ModeCounter, 0))
	assert.False(t, IsEven(ModeCounter, 3))
	assert.False(t, IsEven(ModeChronometer, 2000))
}

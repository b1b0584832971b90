package timer

import (
	"fmt"
	"strconv"
)

// FormatTime converts milliseconds into a mm:ss string, dropping the
// sub-second part. Minutes keep growing past 99.
func FormatTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}
	sec := ms / 1000
	return fmt.Sprintf("%02d:%02d", sec/60, sec%60)
}

// DisplayValue renders a count the way the given mode shows it.
func DisplayValue(m Mode, value int64) string {
	if m.IsTimed() {
		return FormatTime(value)
	}
	return strconv.FormatInt(value, 10)
}

// IsEven reports whether the counter display should use its even styling.
// Only the simple counter alternates.
func IsEven(m Mode, value int64) bool {
	return m == ModeCounter && value%2 == 0
}

package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOutput struct {
	played []beep.Streamer
}

func (o *fakeOutput) Play(s ...beep.Streamer) { o.played = append(o.played, s...) }
func (o *fakeOutput) Lock()                   {}
func (o *fakeOutput) Unlock()                 {}

var testFormat = beep.Format{SampleRate: 8000, NumChannels: 2, Precision: 2}

func drain(s beep.Streamer, n int) ([][2]float64, bool) {
	buf := make([][2]float64, n)
	got, ok := s.Stream(buf)
	return buf[:got], ok
}

func TestSynthesizeCycleLength(t *testing.T) {
	rate := testFormat.SampleRate
	buffer := synthesize(testFormat, 440)

	want := beepsPerCycle*rate.N(beepLength) + (beepsPerCycle-1)*rate.N(beepGap) + rate.N(patternPause)
	assert.Equal(t, want, buffer.Len())
	assert.Equal(t, rate.N(1800*time.Millisecond), buffer.Len())
}

func TestPlayWithoutOutput(t *testing.T) {
	a := newAlarm(nil, synthesize(testFormat, 440), 0)

	err := a.Play()
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.False(t, a.IsPlaying())

	a.Pause()
	a.SeekToStart()
	assert.False(t, a.IsPlaying())
}

func TestPlayLoopsAndPauses(t *testing.T) {
	out := &fakeOutput{}
	a := newAlarm(out, synthesize(testFormat, 440), 0)

	require.NoError(t, a.Play())
	assert.True(t, a.IsPlaying())
	require.Len(t, out.played, 1)

	samples, ok := drain(out.played[0], 256)
	require.True(t, ok)
	require.Len(t, samples, 256)
	audible := false
	for _, s := range samples {
		if s[0] != 0 {
			audible = true
			break
		}
	}
	assert.True(t, audible, "first beep must be audible")

	// Longer than one cycle: the loop keeps going.
	_, ok = drain(out.played[0], 2*a.buffer.Len())
	assert.True(t, ok)

	a.Pause()
	assert.False(t, a.IsPlaying())
	_, ok = drain(out.played[0], 16)
	assert.False(t, ok, "paused playback leaves the mixer")
}

func TestPlayRestartsFromZero(t *testing.T) {
	out := &fakeOutput{}
	a := newAlarm(out, synthesize(testFormat, 440), 0)

	require.NoError(t, a.Play())
	drain(out.played[0], 100)

	require.NoError(t, a.Play())
	require.Len(t, out.played, 2)
	_, ok := drain(out.played[0], 16)
	assert.False(t, ok, "previous playback is replaced")
	assert.Equal(t, 0, a.seeker.Position())
	assert.True(t, a.IsPlaying())
}

func TestSeekToStart(t *testing.T) {
	out := &fakeOutput{}
	a := newAlarm(out, synthesize(testFormat, 440), 0)
	require.NoError(t, a.Play())

	drain(out.played[0], 300)
	assert.Equal(t, 300, a.seeker.Position())

	a.SeekToStart()
	assert.Equal(t, 0, a.seeker.Position())
	assert.True(t, a.IsPlaying())
}

func TestDecodeMissingFileFallsBackToTone(t *testing.T) {
	buffer := loadSound(Config{File: "/nonexistent/alarm.ogg", ToneHz: 440}, testFormat)
	require.NotNil(t, buffer)
	assert.Equal(t, synthesize(testFormat, 440).Len(), buffer.Len())
}

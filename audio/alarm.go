// Package audio implements the countdown alarm on top of beep.
//
// The alarm owns a single looping playback. Play always restarts it from
// the first sample; Pause silences it. Failures never panic: when the
// speaker could not be initialized Play reports ErrUnavailable and the
// alarm stays silent.
package audio

import (
	"errors"
	"fmt"
	"log"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/vorbis"
)

// ErrUnavailable is returned by Play when no audio output is available.
var ErrUnavailable = errors.New("audio output unavailable")

const (
	beepLength    = 180 * time.Millisecond
	beepGap       = 120 * time.Millisecond
	patternPause  = 600 * time.Millisecond
	beepsPerCycle = 3
	toneAmplitude = 0.6
)

// Config selects the alarm sound.
type Config struct {
	// File is an optional .ogg file; a tone is synthesized when empty or
	// when the file cannot be decoded.
	File       string
	ToneHz     float64
	Volume     float64
	SampleRate int
}

// output is the part of the speaker the alarm needs.
type output interface {
	Play(s ...beep.Streamer)
	Lock()
	Unlock()
}

type speakerOutput struct{}

func (speakerOutput) Play(s ...beep.Streamer) { speaker.Play(s...) }
func (speakerOutput) Lock()                   { speaker.Lock() }
func (speakerOutput) Unlock()                 { speaker.Unlock() }

// Alarm is a looping alarm sound.
type Alarm struct {
	mu      sync.Mutex
	out     output
	buffer  *beep.Buffer
	volume  float64
	ctrl    *beep.Ctrl
	seeker  beep.StreamSeeker
	playing bool
}

// NewAlarm initializes the speaker and loads the alarm sound. The returned
// alarm is always usable; if the speaker failed it just cannot play.
func NewAlarm(cfg Config) *Alarm {
	format := beep.Format{
		SampleRate:  beep.SampleRate(cfg.SampleRate),
		NumChannels: 2,
		Precision:   2,
	}

	var out output
	if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
		log.Printf("Audio disabled: Failed to initialize speaker: %v", err)
	} else {
		out = speakerOutput{}
	}

	return newAlarm(out, loadSound(cfg, format), cfg.Volume)
}

func newAlarm(out output, buffer *beep.Buffer, volume float64) *Alarm {
	return &Alarm{out: out, buffer: buffer, volume: volume}
}

func loadSound(cfg Config, format beep.Format) *beep.Buffer {
	if cfg.File != "" {
		buffer, err := decodeFile(cfg.File, format.SampleRate)
		if err == nil {
			log.Printf("Loaded alarm sound: %s", cfg.File)
			return buffer
		}
		log.Printf("Failed to load alarm %s, using tone: %v", cfg.File, err)
	}
	return synthesize(format, cfg.ToneHz)
}

func decodeFile(path string, rate beep.SampleRate) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open alarm file: %w", err)
	}
	streamer, format, err := vorbis.Decode(f)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("decode alarm file: %w", err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(beep.Format{SampleRate: rate, NumChannels: format.NumChannels, Precision: format.Precision})
	if format.SampleRate != rate {
		buffer.Append(beep.Resample(4, format.SampleRate, rate, streamer))
	} else {
		buffer.Append(streamer)
	}
	if buffer.Len() == 0 {
		return nil, errors.New("alarm file is empty")
	}
	return buffer, nil
}

// synthesize renders one cycle of the built-in alarm: a few short sine
// beeps followed by a pause.
func synthesize(format beep.Format, hz float64) *beep.Buffer {
	rate := format.SampleRate
	var parts []beep.Streamer
	for i := 0; i < beepsPerCycle; i++ {
		parts = append(parts, beep.Take(rate.N(beepLength), sine(rate, hz)))
		if i < beepsPerCycle-1 {
			parts = append(parts, beep.Silence(rate.N(beepGap)))
		}
	}
	parts = append(parts, beep.Silence(rate.N(patternPause)))

	buffer := beep.NewBuffer(format)
	buffer.Append(beep.Seq(parts...))
	return buffer
}

func sine(rate beep.SampleRate, hz float64) beep.Streamer {
	step := 2 * math.Pi * hz / float64(rate)
	var phase float64
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			v := toneAmplitude * math.Sin(phase)
			samples[i][0] = v
			samples[i][1] = v
			phase += step
			if phase > 2*math.Pi {
				phase -= 2 * math.Pi
			}
		}
		return len(samples), true
	})
}

// Play starts the alarm from the beginning. Calling it while the alarm is
// playing restarts it.
func (a *Alarm) Play() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.out == nil || a.buffer == nil {
		a.playing = false
		return ErrUnavailable
	}
	a.killLocked()

	a.seeker = a.buffer.Streamer(0, a.buffer.Len())
	a.ctrl = &beep.Ctrl{Streamer: beep.Loop(-1, a.seeker)}
	a.out.Play(&effects.Volume{Streamer: a.ctrl, Base: 2, Volume: a.volume})
	a.playing = true
	return nil
}

// Pause silences the alarm.
func (a *Alarm) Pause() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.killLocked()
	a.playing = false
}

// SeekToStart rewinds the current playback.
func (a *Alarm) SeekToStart() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.seeker == nil || a.out == nil {
		return
	}
	a.out.Lock()
	if err := a.seeker.Seek(0); err != nil {
		log.Printf("Failed to rewind alarm: %v", err)
	}
	a.out.Unlock()
}

// IsPlaying reports whether the alarm is sounding.
func (a *Alarm) IsPlaying() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.playing
}

// killLocked detaches the current playback from the speaker mixer.
func (a *Alarm) killLocked() {
	if a.ctrl == nil {
		return
	}
	a.out.Lock()
	a.ctrl.Streamer = nil
	a.out.Unlock()
	a.ctrl = nil
	a.seeker = nil
}

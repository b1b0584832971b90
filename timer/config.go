package timer

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"gopkg.in/yaml.v3"
)

// AppContentReader defines the interface for reading content from the embedded file system.
type AppContentReader interface {
	ReadFile(name string) ([]byte, error)
}

// DefaultConfigPath is where the embedded defaults live.
const DefaultConfigPath = "assets/ticktack.yaml"

// UI constants
const (
	FontSizeTitle   float32 = 22.0
	FontSizeDisplay float32 = 64.0
	FontSizeCounter float32 = 32.0

	// Dimensions
	WindowWidth  = 420
	WindowHeight = 560
	CornerRadius = 10.0
	InputWidth   = 160
)

var (
	// PrimaryColor is the accent of buttons and of even counter values.
	PrimaryColor = color.NRGBA{R: 0x00, G: 0xb3, B: 0x00, A: 0xff}
	// PrimaryDarkColor marks a clock that is running.
	PrimaryDarkColor = color.NRGBA{R: 0x00, G: 0x99, B: 0x00, A: 0xff}
	// DangerColor is used by destructive actions.
	DangerColor = color.NRGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
)

const (
	defaultFrameInterval = 16 * time.Millisecond
	defaultSampleRate    = 44100
	defaultToneHz        = 880
)

// AlarmConfig selects the countdown alarm sound.
type AlarmConfig struct {
	// File is an optional .ogg file. When empty a tone is synthesized.
	File       string  `yaml:"file"`
	ToneHz     float64 `yaml:"tone_hz"`
	Volume     float64 `yaml:"volume"`
	SampleRate int     `yaml:"sample_rate"`
}

// Config holds the application settings.
type Config struct {
	Language        string      `yaml:"language"`
	InitialMode     string      `yaml:"initial_mode"`
	FrameIntervalMs int         `yaml:"frame_interval_ms"`
	Alarm           AlarmConfig `yaml:"alarm"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		InitialMode:     ModeCounter.String(),
		FrameIntervalMs: int(defaultFrameInterval / time.Millisecond),
		Alarm: AlarmConfig{
			ToneHz:     defaultToneHz,
			SampleRate: defaultSampleRate,
		},
	}
}

// LoadConfig reads the embedded defaults on top of DefaultConfig.
func LoadConfig(reader AppContentReader) (Config, error) {
	cfg := DefaultConfig()
	data, err := reader.ReadFile(DefaultConfigPath)
	if err != nil {
		return cfg, fmt.Errorf("read default config: %w", err)
	}
	if err := ParseConfig(data, &cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// ParseConfig decodes YAML over cfg. Keys missing from data keep their
// current values; out-of-range values are reset to the defaults.
func ParseConfig(data []byte, cfg *Config) error {
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config yaml: %w", err)
	}
	cfg.normalize()
	return nil
}

func (c *Config) normalize() {
	d := DefaultConfig()
	if c.FrameIntervalMs <= 0 {
		c.FrameIntervalMs = d.FrameIntervalMs
	}
	if c.Alarm.ToneHz <= 0 {
		c.Alarm.ToneHz = d.Alarm.ToneHz
	}
	if c.Alarm.SampleRate <= 0 {
		c.Alarm.SampleRate = d.Alarm.SampleRate
	}
	if _, err := ParseMode(c.InitialMode); err != nil {
		log.Printf("Ignoring initial_mode: %v", err)
		c.InitialMode = d.InitialMode
	}
}

// FrameInterval is the delay between two engine frames.
func (c Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMs) * time.Millisecond
}

// Mode returns the configured initial mode.
func (c Config) Mode() Mode {
	m, err := ParseMode(c.InitialMode)
	if err != nil {
		return ModeCounter
	}
	return m
}

// Package config loads typeline engine settings from YAML. Invalid numeric
// values are clamped, never rejected, matching the engine's own floors.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/typeline/pkg/timing"
	"github.com/odvcencio/typeline/pkg/typewriter"
)

// Default configuration values exported for documentation and validation
const (
	DefaultTotalTypingSeconds = 2.0
	DefaultNoiseVariation     = 0.2
	DefaultCaretChar          = "_"
	DefaultCaretBlinkSeconds  = 0.5

	// MinTotalTypingSeconds and MinCaretBlinkSeconds mirror the engine floors.
	MinTotalTypingSeconds = 0.1
	MinCaretBlinkSeconds  = 0.1
)

// Config represents the complete typeline configuration. Durations are in
// seconds to keep hand-written YAML friendly.
type Config struct {
	TotalTypingTime      float64 `yaml:"total_typing_time"`
	NoiseVariation       float64 `yaml:"noise_variation"`
	CaretChar            string  `yaml:"caret_char"`
	CaretBlinkRate       float64 `yaml:"caret_blink_rate"`
	ShowCaret            bool    `yaml:"show_caret"`
	KeepCaretAfterTyping bool    `yaml:"keep_caret_after_typing"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		TotalTypingTime: DefaultTotalTypingSeconds,
		NoiseVariation:  DefaultNoiseVariation,
		CaretChar:       DefaultCaretChar,
		CaretBlinkRate:  DefaultCaretBlinkSeconds,
		ShowCaret:       true,
	}
}

// Load reads a YAML config file, filling omitted fields from Default and
// clamping out-of-range numbers.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Clamp()
	return cfg, nil
}

// Clamp folds out-of-range values back into their valid ranges.
func (c *Config) Clamp() {
	if c.TotalTypingTime < MinTotalTypingSeconds {
		c.TotalTypingTime = MinTotalTypingSeconds
	}
	if c.NoiseVariation < 0 {
		c.NoiseVariation = 0
	} else if c.NoiseVariation > 1 {
		c.NoiseVariation = 1
	}
	if c.CaretBlinkRate < MinCaretBlinkSeconds {
		c.CaretBlinkRate = MinCaretBlinkSeconds
	}
	if c.CaretChar == "" {
		c.CaretChar = DefaultCaretChar
	}
}

// Apply pushes the configuration into an engine. Per the engine contract,
// each setting takes effect on the next scheduling decision or render.
func (c Config) Apply(eng *typewriter.Engine) {
	eng.SetTotalTypingTime(secondsToDuration(c.TotalTypingTime, timing.MinTotalDuration))
	eng.SetNoise(c.NoiseVariation)
	eng.SetCaretChar(c.CaretChar)
	eng.SetCaretBlinkRate(secondsToDuration(c.CaretBlinkRate, typewriter.MinCaretBlinkRate))
	eng.SetShowCaret(c.ShowCaret)
	eng.SetKeepCaretAfterTyping(c.KeepCaretAfterTyping)
}

func secondsToDuration(seconds float64, floor time.Duration) time.Duration {
	d := time.Duration(seconds * float64(time.Second))
	if d < floor {
		d = floor
	}
	return d
}

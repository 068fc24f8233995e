package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/odvcencio/typeline/pkg/typewriter"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "typeline.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_FullFile(t *testing.T) {
	path := writeConfig(t, `
total_typing_time: 3.5
noise_variation: 0.4
caret_char: "|"
caret_blink_rate: 0.25
show_caret: true
keep_caret_after_typing: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TotalTypingTime != 3.5 || cfg.NoiseVariation != 0.4 {
		t.Errorf("timing fields = %+v", cfg)
	}
	if cfg.CaretChar != "|" || cfg.CaretBlinkRate != 0.25 {
		t.Errorf("caret fields = %+v", cfg)
	}
	if !cfg.ShowCaret || !cfg.KeepCaretAfterTyping {
		t.Errorf("flags = %+v", cfg)
	}
}

func TestLoad_ClampsOutOfRange(t *testing.T) {
	path := writeConfig(t, `
total_typing_time: 0.001
noise_variation: 4
caret_blink_rate: -1
caret_char: ""
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.TotalTypingTime != MinTotalTypingSeconds {
		t.Errorf("TotalTypingTime = %v, want floor %v", cfg.TotalTypingTime, MinTotalTypingSeconds)
	}
	if cfg.NoiseVariation != 1 {
		t.Errorf("NoiseVariation = %v, want 1", cfg.NoiseVariation)
	}
	if cfg.CaretBlinkRate != MinCaretBlinkSeconds {
		t.Errorf("CaretBlinkRate = %v, want floor %v", cfg.CaretBlinkRate, MinCaretBlinkSeconds)
	}
	if cfg.CaretChar != DefaultCaretChar {
		t.Errorf("CaretChar = %q, want default", cfg.CaretChar)
	}
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if cfg != Default() {
		t.Errorf("cfg = %+v, want defaults alongside the error", cfg)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "total_typing_time: [not a number")
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error")
	}
}

func TestConfig_Apply(t *testing.T) {
	eng := typewriter.New(nil)
	cfg := Config{
		TotalTypingTime: 1.5,
		NoiseVariation:  0.3,
		CaretChar:       "▌",
		CaretBlinkRate:  0.2,
		ShowCaret:       true,
	}
	cfg.Apply(eng)

	if eng.TotalTypingTime() != 1500*time.Millisecond {
		t.Errorf("TotalTypingTime = %v", eng.TotalTypingTime())
	}
	if eng.Noise() != 0.3 {
		t.Errorf("Noise = %v", eng.Noise())
	}
	if eng.BlinkRate() != 200*time.Millisecond {
		t.Errorf("BlinkRate = %v", eng.BlinkRate())
	}
}

package script

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/odvcencio/typeline/pkg/typewriter"
)

func writeScript(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "demo.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func TestLoad_ValidScript(t *testing.T) {
	path := writeScript(t, `
name: greeting
steps:
  - type: message
    content: "Hello <color=red>World</color>!"
  - type: pause
    seconds: 0.5
  - type: message
    content: "Goodbye"
`)
	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Name != "greeting" || len(s.Steps) != 3 {
		t.Errorf("script = %+v", s)
	}
	msgs := s.Messages()
	if len(msgs) != 2 || msgs[1] != "Goodbye" {
		t.Errorf("Messages() = %v", msgs)
	}
}

func TestLoad_RejectsUnknownStepType(t *testing.T) {
	path := writeScript(t, `
steps:
  - type: teleport
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for unknown step type")
	}
}

func TestLoad_RejectsMissingStepType(t *testing.T) {
	path := writeScript(t, `
steps:
  - content: "typeless"
`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for missing step type")
	}
}

func TestRun_PlaysStepsInOrder(t *testing.T) {
	var last string
	eng := typewriter.New(typewriter.SinkFunc(func(text string) { last = text }))
	eng.SetShowCaret(false)
	eng.SetTotalTypingTime(100 * time.Millisecond)

	s := &Script{Steps: []Step{
		{Type: StepTypeMessage, Content: "one"},
		{Type: StepTypePause, Seconds: 0.05},
		{Type: StepTypeMessage, Content: "two"},
	}}
	start := time.Now()
	if err := Run(context.Background(), eng, s); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if last != "two" {
		t.Errorf("final frame = %q, want 'two'", last)
	}
	if elapsed := time.Since(start); elapsed < 240*time.Millisecond {
		t.Errorf("elapsed = %v, expected two animations plus a pause", elapsed)
	}
}

func TestRun_HonorsContextCancellation(t *testing.T) {
	eng := typewriter.New(nil)
	eng.SetShowCaret(false)
	eng.SetTotalTypingTime(2 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	s := &Script{Steps: []Step{{Type: StepTypeMessage, Content: "too slow to finish"}}}
	if err := Run(ctx, eng, s); err == nil {
		t.Fatal("expected a context error")
	}
	eng.Stop()
}

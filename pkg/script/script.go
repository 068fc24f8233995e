// Package script loads YAML playback scripts: an ordered list of message
// and pause steps fed to the typewriter engine.
package script

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/odvcencio/typeline/pkg/typewriter"
)

// StepType defines the kind of script step.
type StepType string

const (
	StepTypeMessage StepType = "message"
	StepTypePause   StepType = "pause"
)

// Step represents a single operation in a script.
type Step struct {
	Type    StepType `yaml:"type"`
	Content string   `yaml:"content,omitempty"`
	Seconds float64  `yaml:"seconds,omitempty"`
}

// Script represents an ordered list of playback steps.
type Script struct {
	Name  string `yaml:"name"`
	Steps []Step `yaml:"steps"`
}

// Load reads and validates a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse script: %w", err)
	}
	for i, step := range s.Steps {
		switch step.Type {
		case StepTypeMessage, StepTypePause:
		case "":
			return nil, fmt.Errorf("step %d: missing type", i)
		default:
			return nil, fmt.Errorf("step %d: unknown type %q", i, step.Type)
		}
	}
	return &s, nil
}

// Run executes each step against the engine in order: message steps play to
// completion, pause steps wait. It stops early if ctx is done or an
// animation is canceled out from under the script.
func Run(ctx context.Context, eng *typewriter.Engine, s *Script) error {
	for i, step := range s.Steps {
		switch step.Type {
		case StepTypeMessage:
			if err := eng.PlayAsync(step.Content).Wait(ctx); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		case StepTypePause:
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(time.Duration(step.Seconds * float64(time.Second))):
			}
		}
	}
	return nil
}

// Messages returns the content of every message step, in order.
func (s *Script) Messages() []string {
	var out []string
	for _, step := range s.Steps {
		if step.Type == StepTypeMessage {
			out = append(out, step.Content)
		}
	}
	return out
}

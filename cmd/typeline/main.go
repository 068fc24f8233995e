// Command typeline plays typewriter animations in the terminal. Messages
// come from arguments or a YAML script; engine settings come from flags or a
// YAML config file that is live-reloaded while playback runs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/odvcencio/typeline/pkg/config"
	"github.com/odvcencio/typeline/pkg/logging"
	"github.com/odvcencio/typeline/pkg/script"
	"github.com/odvcencio/typeline/pkg/telemetry"
	"github.com/odvcencio/typeline/pkg/terminal"
	"github.com/odvcencio/typeline/pkg/typewriter"
)

var (
	configPath = flag.String("config", "", "YAML config file, live-reloaded during playback")
	scriptPath = flag.String("script", "", "YAML script of message/pause steps")
	pauseFlag  = flag.Float64("pause", -1, "seconds between messages (default: caret blink rate)")
	logPath    = flag.String("log", "", "JSONL log destination")
	noCaret    = flag.Bool("no-caret", false, "disable the blinking caret")
	keepCaret  = flag.Bool("keep-caret", false, "keep the caret blinking after typing finishes")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "typeline: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	messages := flag.Args()
	if *scriptPath == "" && len(messages) == 0 {
		return fmt.Errorf("nothing to play: pass messages as arguments or use -script")
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	if *noCaret {
		cfg.ShowCaret = false
	}
	if *keepCaret {
		cfg.KeepCaretAfterTyping = true
	}

	var logger *logging.Logger
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log: %w", err)
		}
		defer f.Close()
		logger = logging.NewLogger(f)
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "typeline: stdout is not a terminal; frames will repaint poorly")
	}

	sink := terminal.New()
	hub := telemetry.NewHub()
	defer hub.Close()

	eng := typewriter.New(sink).WithHub(hub).WithLogger(logger)
	cfg.Apply(eng)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	if *configPath != "" {
		g.Go(func() error {
			return watchConfig(ctx, *configPath, eng)
		})
	}
	g.Go(func() error {
		defer cancel()
		defer sink.Finish()
		return play(ctx, eng, messages)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// play runs either the script or the argument messages to completion.
func play(ctx context.Context, eng *typewriter.Engine, messages []string) error {
	if *scriptPath != "" {
		s, err := script.Load(*scriptPath)
		if err != nil {
			return err
		}
		return script.Run(ctx, eng, s)
	}

	pause := eng.BlinkRate()
	if *pauseFlag >= 0 {
		pause = time.Duration(*pauseFlag * float64(time.Second))
	}
	return eng.PlaySequenceWithPause(pause, messages...).Wait(ctx)
}

// watchConfig re-applies the config file whenever it changes. Settings take
// effect on the next scheduling decision, so a reload mid-animation changes
// pace from the next character on.
func watchConfig(ctx context.Context, path string, eng *typewriter.Engine) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to start config watcher: %w", err)
	}
	defer watcher.Close()
	if err := watcher.Add(path); err != nil {
		return fmt.Errorf("failed to watch config: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := config.Load(path)
			if err != nil {
				fmt.Fprintf(os.Stderr, "typeline: config reload skipped: %v\n", err)
				continue
			}
			cfg.Apply(eng)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "typeline: config watcher: %v\n", err)
		}
	}
}

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	log "github.com/mgutz/logxi/v1"
	"github.com/pborman/getopt"

	"github.com/lixenwraith/lightboard/board"
	"github.com/lixenwraith/lightboard/chime"
	"github.com/lixenwraith/lightboard/config"
	"github.com/lixenwraith/lightboard/scene"
)

const (
	logDir      = "logs"
	logFileName = "lightboard.log"
	maxLogSize  = 10 * 1024 * 1024
)

func main() {
	configPath := getopt.StringLong("config", 'c', "", "scene file", "path")
	backend := getopt.StringLong("backend", 'b', "", "board backend: terminal, text, memory")
	debugFlag := getopt.BoolLong("debug", 'd', "write debug logs to logs/lightboard.log")
	chimeFlag := getopt.BoolLong("chime", 0, "sound a chime when messages are posted")
	help := getopt.BoolLong("help", 'h', "show this help")
	getopt.Parse()

	if *help {
		getopt.Usage()
		return
	}
	os.Exit(run(*configPath, *backend, *debugFlag, *chimeFlag))
}

func run(configPath, backend string, debugMode, withChime bool) (code int) {
	logFile, logger := setupLogging(debugMode)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			fmt.Fprintf(os.Stderr, "lightboard: %v\n", err)
			return 2
		}
	}
	if backend != "" {
		cfg.Board.Backend = backend
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "lightboard: %v\n", err)
			return 2
		}
	}

	b, err := scene.OpenBoard(cfg.Board, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lightboard: %v\n", err)
		return 1
	}

	// Restore the terminal before reporting a crash
	defer func() {
		if r := recover(); r != nil {
			b.Close()
			fmt.Fprintf(os.Stderr, "\nLIGHTBOARD CRASHED: %v\nStack Trace:\n%s\n", r, debug.Stack())
			code = 1
		}
	}()
	defer b.Close()

	var opts []scene.Option
	if withChime {
		c := chime.New()
		if err := c.Initialize(); err != nil {
			logger.Warn("chime unavailable", "err", err)
		} else {
			defer c.Cleanup()
			opts = append(opts, scene.WithNotifier(c))
		}
	}

	sc, err := scene.Build(cfg, b, logger, opts...)
	if err != nil {
		b.Close()
		fmt.Fprintf(os.Stderr, "lightboard: %v\n", err)
		return 1
	}
	if err := sc.Start(); err != nil {
		b.Close()
		fmt.Fprintf(os.Stderr, "lightboard: %v\n", err)
		return 1
	}
	defer sc.Stop()

	quit := make(chan struct{}, 1)
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	if term, ok := b.(*board.Terminal); ok {
		go pollKeys(term.Screen(), sc, quit)
	}

	select {
	case <-quit:
		logger.Info("quit requested")
	case sig := <-signals:
		logger.Info("signal received", "signal", sig.String())
	}
	return 0
}

// pollKeys handles q/Esc/Ctrl-C to quit and p to toggle pause until the screen is finalized
func pollKeys(screen tcell.Screen, sc *scene.Scene, quit chan<- struct{}) {
	paused := false
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		key, ok := ev.(*tcell.EventKey)
		if !ok {
			continue
		}
		switch {
		case key.Key() == tcell.KeyEscape, key.Key() == tcell.KeyCtrlC, key.Rune() == 'q':
			select {
			case quit <- struct{}{}:
			default:
			}
			return
		case key.Rune() == 'p':
			if paused {
				sc.Resume()
			} else {
				sc.Pause()
			}
			paused = !paused
		}
	}
}

// setupLogging opens logs/lightboard.log when debug is set, rotating it past maxLogSize
// Without debug every log line is discarded so nothing reaches the screen
func setupLogging(debugMode bool) (*os.File, log.Logger) {
	if !debugMode {
		return nil, log.NewLogger(io.Discard, "lightboard")
	}

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, log.NewLogger(io.Discard, "lightboard")
	}

	logPath := filepath.Join(logDir, logFileName)
	if info, err := os.Stat(logPath); err == nil && info.Size() > maxLogSize {
		rotated := filepath.Join(logDir, fmt.Sprintf("lightboard.%s.log", time.Now().Format("20060102-150405")))
		_ = os.Rename(logPath, rotated)
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, log.NewLogger(io.Discard, "lightboard")
	}

	logger := log.NewLogger(log.NewConcurrentWriter(f), "lightboard")
	logger.SetLevel(log.LevelDebug)
	logger.Info("logging started", "pid", os.Getpid())
	return f, logger
}

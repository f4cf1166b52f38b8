// Package main is a composition-root demo for the editor core: it wires
// an in-memory block manager, the config loader, and the history engine
// together and drives a short scripted sequence of edits, undos, and
// redos. There is no rendering UI here — that is an external
// collaborator this module only talks to through the caret.Helper and
// blockdoc.Manager contracts.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blockcore/editorcore/internal/caret"
	"github.com/blockcore/editorcore/internal/config"
	"github.com/blockcore/editorcore/internal/corelog"
	"github.com/blockcore/editorcore/internal/event"
	"github.com/blockcore/editorcore/internal/history"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath, logLevel := parseFlags()

	log := corelog.New(corelog.Config{Level: parseLevel(logLevel), Output: os.Stderr, Prefix: "editorcore"})

	var cfg config.Options
	var watcher *config.Watcher
	if configPath != "" {
		w, err := config.NewWatcher(configPath, log.WithComponent("config"), func(o config.Options) {
			log.Info("config reloaded: debounce=%s pause=%s", o.HistoryDebounceTime, o.NewGroupDelay)
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
			return 1
		}
		watcher = w
		cfg = watcher.Current()
		defer watcher.Close()
	} else {
		cfg = config.Default()
	}

	manager := newMemManager("hello")
	bus := event.NewBus()
	coord := history.NewCoordinator()

	bus.Subscribe(event.TopicHistoryStateChanged, func(payload any, meta event.Metadata) {
		if st, ok := payload.(history.HistoryState); ok {
			log.Debug("history state changed: canUndo=%v canRedo=%v", st.CanUndo, st.CanRedo)
		}
	})

	engine := history.New(cfg, history.Deps{
		Manager:     manager,
		Observer:    memObserver{},
		CaretHelper: loggingCaretHelper{log: log.WithComponent("caret")},
		Bus:         bus,
		Log:         log.WithComponent("history"),
		Coord:       coord,
	})

	ctx := context.Background()
	engine.CaptureInitialState(ctx)

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		engine.Destroy()
		os.Exit(0)
	}()

	runDemoSequence(ctx, engine, manager, cfg)

	engine.Destroy()
	return 0
}

// runDemoSequence types a short edit, lets the debounce settle, then
// walks it back and forward again, printing the document at each step.
func runDemoSequence(ctx context.Context, engine *history.Engine, manager *memManager, cfg config.Options) {
	fmt.Println("initial:", manager.texts())

	blockID := manager.blocks[0].id
	manager.blocks[0].tool.text = "hello world"
	engine.HandleKeydown("d", history.Modifiers{}, blockID, caret.NewCollapsed(blockID, 0, 0, len("hello")))
	engine.HandleBlockChanged(ctx, blockID)

	time.Sleep(cfg.HistoryDebounceTime + 20*time.Millisecond)
	fmt.Println("after edit:", manager.texts())

	if engine.Undo(ctx) {
		fmt.Println("after undo: ", manager.texts())
	}
	if engine.Redo(ctx) {
		fmt.Println("after redo: ", manager.texts())
	}
}

func parseFlags() (configPath, logLevel string) {
	flag.StringVar(&configPath, "config", "", "Path to a TOML config file (optional)")
	flag.StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()
	return configPath, logLevel
}

func parseLevel(s string) corelog.Level {
	switch s {
	case "debug":
		return corelog.LevelDebug
	case "warn":
		return corelog.LevelWarn
	case "error":
		return corelog.LevelError
	default:
		return corelog.LevelInfo
	}
}

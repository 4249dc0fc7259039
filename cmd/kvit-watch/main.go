package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kvit-s/kvit-watch/internal/config"
	"github.com/kvit-s/kvit-watch/internal/display"
	"github.com/kvit-s/kvit-watch/internal/terminal"
	"github.com/kvit-s/kvit-watch/internal/watch"
	"github.com/kvit-s/kvit-watch/internal/workspace"
)

// Version info set by ldflags at build time
var (
	version    = "dev"
	commitHash = "dev"
	commitDate = "unknown"
)

func main() {
	configPath := flag.String("config", "kvit-watch.yaml", "path to config file")
	target := flag.String("target", "", "override tmux pane target (session:window.pane or %id)")
	interval := flag.Int("interval", 0, "override poll interval in milliseconds")
	root := flag.String("root", "", "override workspace root")
	logFile := flag.String("log", "", "override log file path (empty keeps config value)")
	once := flag.Bool("once", false, "capture once, print any detected preview, and exit")
	pager := flag.Bool("pager", false, "force the interactive pager display")
	showVersion := flag.Bool("version", false, "show version information and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s-%s-%s\n", version, commitDate, commitHash)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *target != "" {
		cfg.Watch.TmuxTarget = *target
	}
	if *interval > 0 {
		cfg.Watch.PollIntervalMs = *interval
	}
	if *root != "" {
		cfg.Workspace.Root = *root
	}
	if *logFile != "" {
		cfg.Log.Path = *logFile
	}
	if *pager {
		cfg.Display.Mode = config.DisplayPager
	}

	logger, err := newLogger(cfg.Log.Path, cfg.Log.Development)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer logger.Sync()

	var presenter display.Presenter
	switch cfg.Display.Mode {
	case config.DisplayPager:
		presenter = display.NewPagerPresenter(cfg.Display.ContextLines)
	default:
		presenter = display.NewColorPresenter(os.Stdout, cfg.Display.ContextLines)
	}

	source := terminal.NewTmuxSource(cfg.Watch.TmuxTarget, cfg.Watch.HistoryLines)
	watcher := watch.New(cfg, source, presenter, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if *once {
		if !watcher.Poll(ctx) {
			fmt.Fprintln(os.Stderr, "No edit preview found in pane.")
			os.Exit(1)
		}
		return
	}

	lock, err := workspace.AcquireLock(cfg.Workspace.Root)
	if err != nil {
		log.Fatalf("Failed to lock workspace: %v", err)
	}
	defer lock.Release()

	if err := watcher.Run(ctx); err != nil {
		logger.Error("watcher exited", zap.Error(err))
		lock.Release()
		os.Exit(1)
	}
}

// newLogger creates a file-backed JSON logger. An empty path disables
// logging entirely.
func newLogger(path string, development bool) (*zap.Logger, error) {
	if path == "" {
		return zap.NewNop(), nil
	}

	logOut, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, err
	}

	var encoderConfig zapcore.EncoderConfig
	if development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logOut),
		zapcore.InfoLevel,
	)
	return zap.New(core), nil
}

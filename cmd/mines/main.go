package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
)

var (
	log = logrus.New()

	configPath string
)

func init() {
	const usage = "config file path (default: $MINES_CONFIG or built-in presets)"
	flag.StringVar(&configPath, "config", "", usage)
	flag.StringVar(&configPath, "c", "", usage+" (shorthand)")
}

func loadConfig() (*config.Config, error) {
	path := config.Path(configPath)
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func setupLogging(cfg *config.Config) error {
	level := cfg.LogLevel()
	log.SetLevel(level)
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{ForceColors: config.Development()})

	if cfg.Log.File == "" {
		return nil
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.Backups(),
		MaxAge:     cfg.Log.AgeDays(),
		Level:      level,
		Formatter:  &logrus.JSONFormatter{},
	})
	if err != nil {
		return err
	}
	log.AddHook(hook)
	return nil
}

// run plays s on in until the session ends or ctx is done. in is closed on
// the way out so a pending read does not outlive the session.
func run(ctx context.Context, s *session.Session, in io.ReadCloser) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		return s.Run(gCtx, in)
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Debug("closing input")
		return in.Close()
	})
	return g.Wait()
}

func main() {
	mainCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		log.Fatalf("unable to load config: %s", err)
	}

	if err := setupLogging(cfg); err != nil {
		log.Fatal("unable to set up log file: ", err)
	}
	mines.Log = log

	log.WithFields(cfg.Fields()).Debug("config")

	s, err := session.New(cfg, os.Stdout, log)
	if err != nil {
		log.Fatal("unable to start session: ", err)
	}

	if err := run(mainCtx, s, os.Stdin); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("exit reason: %s\n", err)
		os.Exit(1)
	}
}

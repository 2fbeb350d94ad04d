package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/pepijnd/planetary/config"
	"github.com/pepijnd/planetary/editor"
	"github.com/pepijnd/planetary/engine"
	"github.com/pepijnd/planetary/engine/window"
	"github.com/pepijnd/planetary/logger"
	"github.com/pepijnd/planetary/ui"
)

func main() {
	configPath := flag.String("config", "planetary.yaml", "path to the configuration file")
	saveOnExit := flag.Bool("save-config", false, "write adjusted settings back on exit")
	flag.Parse()

	if err := run(*configPath, *saveOnExit); err != nil {
		fmt.Fprintln(os.Stderr, "planetary:", err)
		os.Exit(1)
	}
}

func run(configPath string, saveOnExit bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer logger.Sync()

	win, err := window.NewWindow(
		window.WithTitle("Planetary"),
		window.WithWidth(cfg.Graphics.Width),
		window.WithHeight(cfg.Graphics.Height),
	)
	if err != nil {
		return err
	}

	ed, err := editor.New(cfg, win, ui.NewPanel(220, 160))
	if err != nil {
		return err
	}

	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithRunner(ed),
		engine.WithTickRate(100),
	)

	logger.Sugar.Infow("starting",
		"width", cfg.Graphics.Width,
		"height", cfg.Graphics.Height,
		"samples", cfg.Graphics.Samples,
		"depth", cfg.Editor.Depth)

	eng.Run()

	if saveOnExit {
		if err := ed.Config().Save(configPath); err != nil {
			return fmt.Errorf("save config: %w", err)
		}
	}
	return nil
}

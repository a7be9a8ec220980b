package main

import (
	"fmt"
	"os"

	"github.com/javiermolinar/timelog/internal/config"
	"github.com/javiermolinar/timelog/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	path := config.DefaultConfigPath()
	cfg, err := config.LoadFrom(path)
	if err != nil {
		return fmt.Errorf("loading config %s: %w", path, err)
	}

	app := ui.NewApp(nil, cfg)
	app.SetConfigPath(path)
	defer func() { _ = app.Close() }()
	return app.Execute()
}

package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/provos/terraform-secure/internal/config"
	"github.com/provos/terraform-secure/internal/logger"
)

// appContext bundles the pieces every command needs: parsed settings, a
// configured logger, and whether stdout is attached to a terminal.
type appContext struct {
	settings    *config.Settings
	log         *logger.Logger
	interactive bool
}

func newAppContext(flags *rootFlags) (*appContext, error) {
	settings, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}

	level := "info"
	if flags.verbose {
		level = "debug"
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd()))
	log, err := logger.New(logger.Options{Level: level, HumanReadable: interactive})
	if err != nil {
		return nil, err
	}

	return &appContext{settings: settings, log: log, interactive: interactive}, nil
}

func requireDirectory(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%s is not a valid directory", path)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a valid directory", path)
	}
	return nil
}

func requireFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("file %s does not exist", path)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory, not a file", path)
	}
	return nil
}

// Package common provides shared utilities for command implementations.
package common

import (
	"fmt"

	"github.com/jonesrussell/gositemap/internal/config"
	"github.com/jonesrussell/gositemap/internal/logger"
)

// CommandDeps holds common dependencies for all commands.
type CommandDeps struct {
	Logger logger.Interface
	Config *config.Config
}

// Validate ensures all required dependencies are present.
func (d CommandDeps) Validate() error {
	if d.Logger == nil {
		return ErrLoggerRequired
	}
	if d.Config == nil {
		return ErrConfigRequired
	}
	return nil
}

// NewCommandDeps creates CommandDeps by loading config and creating the
// logger. Every command starts here.
func NewCommandDeps() (CommandDeps, error) {
	cfg, err := config.Load()
	if err != nil {
		return CommandDeps{}, fmt.Errorf("load config: %w", err)
	}

	log, err := logger.New(&cfg.Logger)
	if err != nil {
		return CommandDeps{}, fmt.Errorf("create logger: %w", err)
	}

	deps := CommandDeps{
		Logger: log,
		Config: cfg,
	}

	if validateErr := deps.Validate(); validateErr != nil {
		return CommandDeps{}, fmt.Errorf("validate deps: %w", validateErr)
	}

	return deps, nil
}

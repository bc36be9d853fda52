// Package common provides shared dependency construction for the gotender
// subcommands: configuration, logger, and the wired discovery pipeline.
package common

import (
	"errors"
	"fmt"

	"github.com/orchestrarfp/gotender/internal/config"
	"github.com/orchestrarfp/gotender/internal/logger"
)

// Flag values pushed down from the root command before any subcommand runs.
var (
	cfgFile string
	debug   bool
)

// errLoggerRequired is returned when dependency validation finds no logger.
var errLoggerRequired = errors.New("logger is required")

// Configure stores the global flag values for later dependency construction.
func Configure(configFile string, debugMode bool) {
	cfgFile = configFile
	debug = debugMode
}

// CommandDeps holds the dependencies every subcommand needs.
type CommandDeps struct {
	Config *config.Config
	Logger logger.Interface
}

// NewCommandDeps loads the configuration and creates the logger.
func NewCommandDeps() (*CommandDeps, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	if debug {
		cfg.Logger.Level = "debug"
		cfg.Logger.Development = true
	}

	log, err := logger.New(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	deps := &CommandDeps{
		Config: cfg,
		Logger: log,
	}

	if validateErr := deps.validate(); validateErr != nil {
		return nil, fmt.Errorf("validate deps: %w", validateErr)
	}

	return deps, nil
}

// validate ensures all required dependencies are present.
func (d *CommandDeps) validate() error {
	if d.Logger == nil {
		return errLoggerRequired
	}
	return nil
}

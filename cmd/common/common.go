// Package common implements common parachain-node command options.
package common

import (
	"fmt"
	"io"
	"os"

	"github.com/DrW3RK/parachain-node/config"
	"github.com/DrW3RK/parachain-node/log"
)

var rootLogger = log.NewDefaultLogger("parachain-node")

// Init initializes the common environment.
func Init(cfg *config.Config) error {
	// Chain specs may be written to stdout; logs go to stderr unless a
	// log file is configured.
	var w io.Writer = os.Stderr
	format := log.FmtJSON
	level := log.LevelInfo

	if cfg.Log != nil {
		var err error
		if w, err = getLoggingStream(cfg.Log); err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		if err := format.Set(cfg.Log.Format); err != nil {
			return err
		}
		if err := level.Set(cfg.Log.Level); err != nil {
			return err
		}
	}
	logger, err := log.NewLogger("parachain-node", w, format, level)
	if err != nil {
		return err
	}
	rootLogger = logger
	return nil
}

// RootLogger returns the logger defined by logging flags.
func RootLogger() *log.Logger {
	return rootLogger
}

func getLoggingStream(cfg *config.LogConfig) (io.Writer, error) {
	if cfg == nil || cfg.File == "" {
		return os.Stderr, nil
	}
	w, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, err
	}
	return w, nil
}

// LoadConfig initializes the config and the common environment, exiting
// the process on failure.
func LoadConfig(configFile string) *config.Config {
	cfg, err := config.InitConfig(configFile)
	if err != nil {
		log.NewDefaultLogger("init").Error("init failed",
			"error", err,
		)
		os.Exit(1)
	}
	if err = Init(cfg); err != nil {
		log.NewDefaultLogger("init").Error("init failed",
			"error", err,
		)
		os.Exit(1)
	}
	return cfg
}

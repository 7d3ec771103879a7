package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

const DefaultLogPath = "steamlocate.log"

// Logger is shared by every package of the module. It only carries output
// settings; discovery results never pass through it.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	Prefix: APP_NAME,
	Level:  log.WarnLevel,
})

func InitLoggingWithDefaultPath() error {
	path, err := os.UserCacheDir()
	if err != nil {
		return err
	}

	return InitLoggingWithPath(filepath.Join(path, DefaultLogPath))
}

func InitLoggingWithPath(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	Logger.SetOutput(file)
	Logger.SetReportTimestamp(true)
	return nil
}

// ConfigureLogging applies the [logging] table of the config file.
func ConfigureLogging(cfg LoggingConfig) error {
	if cfg.Level != "" {
		level, err := log.ParseLevel(cfg.Level)
		if err != nil {
			return fmt.Errorf("logging level %q: %w", cfg.Level, err)
		}
		Logger.SetLevel(level)
	}

	switch strings.ToLower(cfg.Format) {
	case "", "text":
		Logger.SetFormatter(log.TextFormatter)
	case "json":
		Logger.SetFormatter(log.JSONFormatter)
	case "logfmt":
		Logger.SetFormatter(log.LogfmtFormatter)
	default:
		return fmt.Errorf("logging format %q: want text, json or logfmt", cfg.Format)
	}

	if cfg.Path != "" {
		return InitLoggingWithPath(cfg.Path)
	}
	return nil
}

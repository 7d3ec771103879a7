package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"

	"steamlocate/core"
)

func loadConfig(ops *core.Options) (*core.Config, error) {
	path := ops.ConfigPath
	if path == "" {
		var err error
		if path, err = core.DefaultConfigPath(); err != nil {
			core.Logger.Debug("no user config dir", "err", err)
		}
	}

	cfg := core.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = core.LoadConfig(path); err != nil {
			return nil, err
		}
	}

	cfg.ApplyOptions(ops)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// run is main without the process exit, so the CLI can be exercised from
// tests with its output captured.
func run(ops *core.Options, stdout io.Writer) error {
	if ops.Version {
		fmt.Fprintf(stdout, "%s %s\n", core.APP_NAME, core.Version)
		return nil
	}

	cfg, err := loadConfig(ops)
	if err != nil {
		return err
	}
	if err := core.ConfigureLogging(cfg.Logging); err != nil {
		return err
	}

	snap, err := core.NewDiscoverer(cfg).Discover()
	if err != nil {
		return err
	}

	r, err := buildReport(snap, ops)
	if err != nil {
		return err
	}

	if ops.JSON {
		err = writeJSON(stdout, r)
	} else {
		err = writeHuman(stdout, r, isTerminal(stdout))
	}
	if err != nil {
		return err
	}

	if len(r.Missing) > 0 {
		return fmt.Errorf("%d of %d requested apps are not installed", len(r.Missing), len(ops.Apps))
	}
	return nil
}

func main() {
	ops := &core.Options{}
	if _, err := flags.Parse(ops); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(2)
	}

	if err := run(ops, os.Stdout); err != nil {
		if errors.Is(err, core.ErrRootNotFound) {
			core.Logger.Fatal("Steam installation not found; pass --steam-path", "err", err)
		}
		core.Logger.Fatal(err)
	}
}

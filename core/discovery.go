package core

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"steamlocate/platform"
)

// RootLocator finds the Steam installation root.
type RootLocator interface {
	Locate() (string, error)
}

// Discoverer builds snapshots. It keeps no state between calls; every call
// reads the disk again.
type Discoverer struct {
	Locator      RootLocator
	Parallel     bool
	ShortcutUser string
	Checksum     Checksum
}

func NewDiscoverer(cfg *Config) *Discoverer {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	locator := platform.NewLocator()
	locator.Override = cfg.SteamPath
	locator.Extra = cfg.ExtraCandidates

	return &Discoverer{
		Locator:      locator,
		Parallel:     cfg.ParallelScan,
		ShortcutUser: cfg.ShortcutUser,
		Checksum:     IEEEChecksum,
	}
}

// Discover locates the root and scans it. ErrRootNotFound is the only
// error; everything else ends up in the snapshot's diagnostics.
func Discover() (*Snapshot, error) {
	return NewDiscoverer(DefaultConfig()).Discover()
}

// DiscoverAt scans root without searching for it.
func DiscoverAt(root string) (*Snapshot, error) {
	return NewDiscoverer(DefaultConfig()).DiscoverAt(root)
}

func (d *Discoverer) Discover() (*Snapshot, error) {
	root, err := d.Locator.Locate()
	if err != nil {
		if errors.Is(err, ErrRootNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrRootNotFound, err)
	}
	Logger.Debug("steam root located", "root", root)
	return d.scan(root), nil
}

func (d *Discoverer) DiscoverAt(root string) (*Snapshot, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRootNotFound, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrRootNotFound, root)
	}
	return d.scan(platform.Canonical(root)), nil
}

type folderScan struct {
	apps  []App
	diags []Diagnostic
}

func (d *Discoverer) scan(root string) *Snapshot {
	folders, diags := ResolveLibraryFolders(root)

	// Each worker writes only its own slot; results are merged in folder
	// order once all workers are done.
	results := make([]folderScan, len(folders))
	if d.Parallel && len(folders) > 1 {
		var g errgroup.Group
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i, folder := range folders {
			g.Go(func() error {
				apps, folderDiags := ScanLibrary(folder)
				results[i] = folderScan{apps: apps, diags: folderDiags}
				return nil
			})
		}
		_ = g.Wait()
	} else {
		for i, folder := range folders {
			apps, folderDiags := ScanLibrary(folder)
			results[i] = folderScan{apps: apps, diags: folderDiags}
		}
	}

	snap := &Snapshot{
		root:         root,
		folders:      folders,
		apps:         make(map[uint32]App),
		shortcutUser: d.ShortcutUser,
		checksum:     d.Checksum,
	}
	snap.diagnostics = append(snap.diagnostics, diags...)

	for _, result := range results {
		snap.diagnostics = append(snap.diagnostics, result.diags...)
		for _, app := range result.apps {
			if first, ok := snap.apps[app.AppID]; ok {
				snap.diagnostics = append(snap.diagnostics, Diagnostic{
					Kind: DuplicateApp,
					Path: app.ManifestPath,
					Err:  fmt.Errorf("app %d already found in %s", app.AppID, first.Library),
				})
				continue
			}
			snap.apps[app.AppID] = app
			snap.order = append(snap.order, app.AppID)
		}
	}

	Logger.Info("discovery finished",
		"root", root,
		"libraries", len(folders),
		"apps", len(snap.apps),
		"diagnostics", len(snap.diagnostics))
	return snap
}

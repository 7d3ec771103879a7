package core

import (
	"fmt"
	"maps"
	"slices"
)

// Snapshot is the result of one discovery call. It is never modified after
// construction and the accessors hand out deep copies, manifest sections
// included.
type Snapshot struct {
	root        string
	folders     []LibraryFolder
	apps        map[uint32]App
	order       []uint32
	diagnostics []Diagnostic

	shortcutUser string
	checksum     Checksum
}

func (s *Snapshot) Root() string { return s.root }

// LibraryFolders returns the folders in scan order, root first.
func (s *Snapshot) LibraryFolders() []LibraryFolder {
	return slices.Clone(s.folders)
}

// Apps returns every app keyed by app id.
func (s *Snapshot) Apps() map[uint32]App {
	out := make(map[uint32]App, len(s.apps))
	for id, app := range s.apps {
		out[id] = app.clone()
	}
	return out
}

// AppsInScanOrder returns the apps in the order they were found.
func (s *Snapshot) AppsInScanOrder() []App {
	out := make([]App, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.apps[id].clone())
	}
	return out
}

// SortedApps returns the apps ordered by app id.
func (s *Snapshot) SortedApps() []App {
	ids := slices.Sorted(maps.Keys(s.apps))
	out := make([]App, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.apps[id].clone())
	}
	return out
}

func (s *Snapshot) App(id uint32) (App, bool) {
	app, ok := s.apps[id]
	if !ok {
		return App{}, false
	}
	return app.clone(), true
}

func (s *Snapshot) Len() int { return len(s.apps) }

func (s *Snapshot) Diagnostics() []Diagnostic {
	return slices.Clone(s.diagnostics)
}

// Shortcuts reads the shortcut files under the root. It is evaluated on
// every call and its failure does not affect the rest of the snapshot.
func (s *Snapshot) Shortcuts() ([]Shortcut, error) {
	files, err := ShortcutFiles(s.root, s.shortcutUser)
	if err != nil {
		return nil, fmt.Errorf("list shortcut files: %w", err)
	}

	var all []Shortcut
	for _, file := range files {
		shortcuts, err := ReadShortcuts(file, s.checksum)
		if err != nil {
			Logger.Error("shortcut file unusable", "path", file, "err", err)
			return nil, err
		}
		Logger.Debug("read shortcuts", "path", file, "count", len(shortcuts))
		all = append(all, shortcuts...)
	}
	return all, nil
}

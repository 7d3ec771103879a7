package core

import (
	"errors"
	"fmt"

	"steamlocate/platform"
)

var (
	// ErrRootNotFound is the only error that stops discovery.
	ErrRootNotFound = platform.ErrSteamNotFound

	ErrShortcutDecodeFailed = errors.New("shortcut file could not be decoded")
	ErrNotAppManifest       = errors.New("missing AppState")
	ErrNotLibraryListing    = errors.New("missing libraryfolders")
)

type DiagnosticKind int

const (
	LibraryListingDegraded DiagnosticKind = iota + 1
	ManifestSkipped
	DuplicateApp
)

func (k DiagnosticKind) String() string {
	switch k {
	case LibraryListingDegraded:
		return "library listing degraded"
	case ManifestSkipped:
		return "manifest skipped"
	case DuplicateApp:
		return "duplicate app"
	default:
		return fmt.Sprintf("DiagnosticKind(%d)", int(k))
	}
}

func (k DiagnosticKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Diagnostic records a problem that discovery worked around.
type Diagnostic struct {
	Kind DiagnosticKind `json:"kind"`
	Path string         `json:"path"`
	Err  error          `json:"-"`
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s: %s: %v", d.Kind, d.Path, d.Err)
}

func (d Diagnostic) Unwrap() error { return d.Err }

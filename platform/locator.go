package platform

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

var ErrSteamNotFound = errors.New("steam installation not found")

var errNoRegistry = errors.New("no registry on this platform")

// MarkerDir must exist inside a directory for it to count as a Steam root.
const MarkerDir = "steamapps"

// Locator finds the Steam installation root. The function fields are the
// probing primitives; NewLocator fills them with the operating system's.
type Locator struct {
	// Override is checked before anything else when set.
	Override string
	// Extra directories probed after the built-in candidates. A leading "~"
	// is expanded to the home directory.
	Extra []string

	HomeDir    func() (string, error)
	Stat       func(name string) (fs.FileInfo, error)
	Registry   func() (string, error)
	Candidates func(home string) []string
}

func NewLocator() *Locator {
	return &Locator{
		HomeDir:    os.UserHomeDir,
		Stat:       os.Stat,
		Registry:   registryRoot,
		Candidates: defaultCandidates,
	}
}

// Locate returns the first qualifying root, in order: the override, the
// registry value, the conventional candidates, the extra directories. When an
// override is set nothing else is probed.
func (l *Locator) Locate() (string, error) {
	home := ""
	if l.HomeDir != nil {
		if h, err := l.HomeDir(); err == nil {
			home = h
		}
	}

	// An explicit override is never replaced by a different install.
	if l.Override != "" {
		dir := expandHome(l.Override, home)
		if !l.Qualifies(dir) {
			return "", fmt.Errorf("%w: %s has no %s directory", ErrSteamNotFound, dir, MarkerDir)
		}
		return canonical(dir), nil
	}

	if l.Registry != nil {
		if dir, err := l.Registry(); err == nil && dir != "" && l.isDir(dir) {
			return canonical(dir), nil
		}
	}

	var candidates []string
	if l.Candidates != nil {
		candidates = append(candidates, l.Candidates(home)...)
	}
	for _, extra := range l.Extra {
		candidates = append(candidates, expandHome(extra, home))
	}

	for _, dir := range candidates {
		if dir == "" || !filepath.IsAbs(dir) {
			continue
		}
		if l.Qualifies(dir) {
			return canonical(dir), nil
		}
	}

	return "", ErrSteamNotFound
}

// Qualifies reports whether dir is a directory holding the marker directory.
func (l *Locator) Qualifies(dir string) bool {
	return l.isDir(dir) && l.isDir(filepath.Join(dir, MarkerDir))
}

func (l *Locator) isDir(path string) bool {
	stat := l.Stat
	if stat == nil {
		stat = os.Stat
	}
	info, err := stat(path)
	return err == nil && info.IsDir()
}

func expandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		return filepath.Join(home, path[2:])
	}
	return path
}

// canonical cleans dir and resolves symlinks so that ~/.steam/steam and the
// directory it points at compare equal.
func canonical(dir string) string {
	dir = filepath.Clean(dir)
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		return resolved
	}
	return dir
}

// Canonical is the path normalisation Locate applies to the root; library
// paths are compared after the same treatment.
func Canonical(dir string) string {
	return canonical(dir)
}

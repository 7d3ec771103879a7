//go:build !linux && !darwin && !windows

package platform

import (
	"path/filepath"
)

func defaultCandidates(home string) []string {
	if home == "" {
		return nil
	}
	return []string{
		filepath.Join(home, ".steam", "steam"),
		filepath.Join(home, ".local", "share", "Steam"),
	}
}

func registryRoot() (string, error) {
	return "", errNoRegistry
}

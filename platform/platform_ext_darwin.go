//go:build darwin

package platform

import (
	"path/filepath"
)

func defaultCandidates(home string) []string {
	if home == "" {
		return nil
	}
	return []string{
		filepath.Join(home, "Library", "Application Support", "Steam"),
	}
}

func registryRoot() (string, error) {
	return "", errNoRegistry
}

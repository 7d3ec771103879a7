//go:build linux

package platform

import (
	"path/filepath"
)

const flatpakID = "com.valvesoftware.Steam"

func defaultCandidates(home string) []string {
	if home == "" {
		return nil
	}
	return []string{
		filepath.Join(home, ".steam", "steam"),
		filepath.Join(home, ".steam", "root"),
		filepath.Join(home, ".local", "share", "Steam"),
		filepath.Join(home, ".var", "app", flatpakID, ".local", "share", "Steam"),
		filepath.Join(home, ".var", "app", flatpakID, ".steam", "steam"),
		filepath.Join(home, "snap", "steam", "common", ".local", "share", "Steam"),
	}
}

func registryRoot() (string, error) {
	return "", errNoRegistry
}

//go:build windows

package platform

import (
	"errors"

	"golang.org/x/sys/windows/registry"
)

type registryValue struct {
	root  registry.Key
	path  string
	value string
}

var steamRegistryValues = []registryValue{
	{registry.CURRENT_USER, `SOFTWARE\Valve\Steam`, "SteamPath"},
	{registry.LOCAL_MACHINE, `SOFTWARE\WOW6432Node\Valve\Steam`, "InstallPath"},
	{registry.LOCAL_MACHINE, `SOFTWARE\Valve\Steam`, "InstallPath"},
}

func defaultCandidates(home string) []string {
	return []string{
		`C:\Program Files (x86)\Steam`,
		`C:\Program Files\Steam`,
	}
}

func registryRoot() (string, error) {
	var errs []error
	for _, rv := range steamRegistryValues {
		path, err := readRegistryString(rv)
		if err == nil && path != "" {
			return path, nil
		}
		errs = append(errs, err)
	}
	return "", errors.Join(errs...)
}

func readRegistryString(rv registryValue) (string, error) {
	key, err := registry.OpenKey(rv.root, rv.path, registry.QUERY_VALUE)
	if err != nil {
		return "", err
	}
	defer key.Close()

	path, _, err := key.GetStringValue(rv.value)
	if err != nil {
		return "", err
	}
	return path, nil
}

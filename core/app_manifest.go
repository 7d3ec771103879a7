package core

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"steamlocate/kv"
)

const (
	appManifestPrefix = "appmanifest_"
	appManifestExt    = ".acf"
)

// appIDFromManifestName returns the id embedded in appmanifest_<id>.acf.
func appIDFromManifestName(name string) (uint32, bool) {
	if len(name) < len(appManifestPrefix)+len(appManifestExt) {
		return 0, false
	}
	lower := strings.ToLower(name)
	if !strings.HasPrefix(lower, appManifestPrefix) || !strings.HasSuffix(lower, appManifestExt) {
		return 0, false
	}
	id := name[len(appManifestPrefix) : len(name)-len(appManifestExt)]
	return ParseUint32OrZero(id), true
}

// ParseAppManifest maps a decoded manifest onto an App. Paths are resolved
// against folder.
func ParseAppManifest(r io.Reader, folder LibraryFolder) (App, error) {
	root, err := kv.DecodeText(r)
	if err != nil {
		return App{}, err
	}
	return appFromNode(root, folder)
}

func appFromNode(root *kv.Node, folder LibraryFolder) (App, error) {
	state, ok := root.Object("AppState")
	if !ok {
		return App{}, ErrNotAppManifest
	}

	app := App{
		AppID:       ParseUint32OrZero(state.String("appid")),
		Name:        state.String("name"),
		InstallDir:  state.String("installdir"),
		SizeOnDisk:  ParseUint64OrZero(state.String("SizeOnDisk")),
		StateFlags:  StateFlags(ParseUint32OrZero(state.String("StateFlags"))),
		LastUpdated: ParseUnixOrZero(state.String("LastUpdated")),
		BuildID:     ParseUint32OrZero(state.String("buildid")),
		LastOwner:   ParseUint64OrZero(state.String("LastOwner")),
		Library:     folder.Path,
	}
	if app.InstallDir != "" {
		app.Path = filepath.Join(folder.CommonPath(), app.InstallDir)
	}

	for _, child := range state.Children() {
		if !child.IsObject() {
			continue
		}
		if app.Sections == nil {
			app.Sections = make(map[string]*kv.Node)
		}
		app.Sections[child.Key] = child
	}

	return app, nil
}

// ReadAppManifest opens and parses one manifest file. When the appid field
// is unusable the id from the file name is used instead.
func ReadAppManifest(path string, folder LibraryFolder) (App, error) {
	file, err := os.Open(path)
	if err != nil {
		return App{}, err
	}
	defer file.Close()

	app, err := ParseAppManifest(file, folder)
	if err != nil {
		return App{}, err
	}
	app.ManifestPath = path

	if app.AppID == 0 {
		if id, ok := appIDFromManifestName(filepath.Base(path)); ok {
			app.AppID = id
		}
	}
	return app, nil
}

// ScanLibrary parses every manifest in the folder's steamapps directory.
// Manifests that cannot be parsed are reported and skipped.
func ScanLibrary(folder LibraryFolder) ([]App, []Diagnostic) {
	dir := folder.SteamAppsPath()
	entries, err := os.ReadDir(dir)
	if err != nil {
		Logger.Warn("library folder unreadable", "path", dir, "err", err)
		return nil, []Diagnostic{{Kind: ManifestSkipped, Path: dir, Err: err}}
	}

	var apps []App
	var diags []Diagnostic
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := appIDFromManifestName(entry.Name()); !ok {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		app, err := ReadAppManifest(path, folder)
		if err != nil {
			Logger.Warn("skipping manifest", "path", path, "err", err)
			diags = append(diags, Diagnostic{
				Kind: ManifestSkipped,
				Path: path,
				Err:  fmt.Errorf("parse manifest: %w", err),
			})
			continue
		}
		Logger.Debug("found app", "appid", app.AppID, "name", app.Name, "library", folder.Path)
		apps = append(apps, app)
	}

	return apps, diags
}

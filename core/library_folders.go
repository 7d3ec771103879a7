package core

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"steamlocate/kv"
	"steamlocate/platform"
)

const LibraryFoldersFile = "libraryfolders.vdf"

// libraryListingPaths are tried in order. Older clients only write the copy
// under config/.
func libraryListingPaths(root string) []string {
	return []string{
		filepath.Join(root, SteamAppsDir, LibraryFoldersFile),
		filepath.Join(root, "config", LibraryFoldersFile),
	}
}

// ParseLibraryFolders returns the folders listed in a libraryfolders.vdf
// document, in file order. Both historical shapes are accepted:
//
//	"0" "D:\\Games"                  (index -> path)
//	"0" { "path" "D:\\Games" ... }  (index -> object with a path field)
//
// The shape is decided per entry by looking for the path field.
func ParseLibraryFolders(r io.Reader) ([]LibraryFolder, error) {
	root, err := kv.DecodeText(r)
	if err != nil {
		return nil, err
	}

	listing, ok := root.Object("libraryfolders")
	if !ok {
		return nil, ErrNotLibraryListing
	}

	var folders []LibraryFolder
	for _, entry := range listing.Children() {
		if _, err := strconv.ParseUint(entry.Key, 10, 32); err != nil {
			continue
		}

		var folder LibraryFolder
		if entry.IsObject() {
			path, ok := entry.Get("path")
			if !ok || !path.IsString() {
				continue
			}
			folder = LibraryFolder{Path: path.Value(), Label: entry.String("label")}
		} else {
			folder = LibraryFolder{Path: entry.Value()}
		}

		if folder.Path == "" {
			continue
		}
		folders = append(folders, folder)
	}
	return folders, nil
}

// ResolveLibraryFolders returns the root followed by every distinct folder
// from the listing file. A missing or broken listing leaves just the root.
func ResolveLibraryFolders(root string) ([]LibraryFolder, []Diagnostic) {
	root = platform.Canonical(root)
	folders := []LibraryFolder{{Path: root}}
	seen := map[string]int{pathKey(root): 0}

	listed, diags := readLibraryListing(root)
	for _, folder := range listed {
		if !filepath.IsAbs(folder.Path) {
			Logger.Debug("ignoring relative library path", "path", folder.Path)
			continue
		}
		folder.Path = platform.Canonical(folder.Path)
		key := pathKey(folder.Path)
		if i, ok := seen[key]; ok {
			if folders[i].Label == "" {
				folders[i].Label = folder.Label
			}
			continue
		}
		seen[key] = len(folders)
		folders = append(folders, folder)
	}

	return folders, diags
}

func readLibraryListing(root string) ([]LibraryFolder, []Diagnostic) {
	for _, path := range libraryListingPaths(root) {
		folders, err := readLibraryListingFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			Logger.Warn("library listing unusable, using root only", "path", path, "err", err)
			return nil, []Diagnostic{{
				Kind: LibraryListingDegraded,
				Path: path,
				Err:  fmt.Errorf("parse library listing: %w", err),
			}}
		}
		return folders, nil
	}

	Logger.Debug("no library listing, using root only", "root", root)
	return nil, nil
}

func readLibraryListingFile(path string) ([]LibraryFolder, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return ParseLibraryFolders(file)
}

// pathKey is the form library paths are compared in.
func pathKey(path string) string {
	path = filepath.Clean(path)
	if runtime.GOOS == "windows" {
		return strings.ToLower(path)
	}
	return path
}

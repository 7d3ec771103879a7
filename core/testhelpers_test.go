package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"steamlocate/platform"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// newLibrary creates a directory with an empty steamapps folder.
func newLibrary(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, SteamAppsDir), 0o755))
	return platform.Canonical(dir)
}

func manifestText(id uint32, name, installDir string) string {
	return fmt.Sprintf(`"AppState"
{
	"appid"		"%d"
	"Universe"		"1"
	"name"		"%s"
	"StateFlags"		"4"
	"installdir"		"%s"
	"LastUpdated"		"1700000000"
	"SizeOnDisk"		"1024"
	"buildid"		"42"
	"LastOwner"		"76561197960287930"
	"UserConfig"
	{
		"language"		"english"
	}
}
`, id, name, installDir)
}

func writeManifest(t *testing.T, library string, id uint32, name, installDir string) string {
	t.Helper()
	path := filepath.Join(library, SteamAppsDir, fmt.Sprintf("appmanifest_%d.acf", id))
	writeFile(t, path, manifestText(id, name, installDir))
	return path
}

func vdfEscape(s string) string {
	return strings.ReplaceAll(s, `\`, `\\`)
}

// listingText writes the current libraryfolders.vdf shape.
func listingText(paths ...string) string {
	var b strings.Builder
	b.WriteString("\"libraryfolders\"\n{\n")
	for i, p := range paths {
		fmt.Fprintf(&b, "\t\"%d\"\n\t{\n\t\t\"path\"\t\t\"%s\"\n\t\t\"label\"\t\t\"\"\n\t\t\"contentid\"\t\t\"123\"\n\t\t\"apps\"\n\t\t{\n\t\t}\n\t}\n", i, vdfEscape(p))
	}
	b.WriteString("}\n")
	return b.String()
}

// legacyListingText writes the older index -> path shape.
func legacyListingText(paths ...string) string {
	var b strings.Builder
	b.WriteString("\"LibraryFolders\"\n{\n\t\"TimeNextStatsReport\"\t\t\"1700000000\"\n\t\"ContentStatsID\"\t\t\"-4\"\n")
	for i, p := range paths {
		fmt.Fprintf(&b, "\t\"%d\"\t\t\"%s\"\n", i+1, vdfEscape(p))
	}
	b.WriteString("}\n")
	return b.String()
}

func writeListing(t *testing.T, root, content string) {
	t.Helper()
	writeFile(t, filepath.Join(root, SteamAppsDir, LibraryFoldersFile), content)
}

func folderPaths(folders []LibraryFolder) []string {
	out := make([]string, 0, len(folders))
	for _, f := range folders {
		out = append(out, f.Path)
	}
	return out
}

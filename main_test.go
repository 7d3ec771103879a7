package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steamlocate/core"
	"steamlocate/kv"
	"steamlocate/platform"
)

func writeTestFile(t *testing.T, path string, content []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
}

func testRoot(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for _, app := range []struct {
		id   int
		name string
	}{{620, "Portal 2"}, {220, "Half-Life 2"}} {
		manifest := fmt.Sprintf("\"AppState\"\n{\n\t\"appid\"\t\t\"%d\"\n\t\"name\"\t\t\"%s\"\n\t\"installdir\"\t\t\"%s\"\n\t\"StateFlags\"\t\t\"4\"\n\t\"SizeOnDisk\"\t\t\"2048\"\n\t\"UserConfig\"\n\t{\n\t\t\"language\"\t\t\"english\"\n\t}\n}\n",
			app.id, app.name, app.name)
		writeTestFile(t, filepath.Join(root, "steamapps", fmt.Sprintf("appmanifest_%d.acf", app.id)), []byte(manifest))
	}
	return platform.Canonical(root)
}

func testOptions(t *testing.T, root string) *core.Options {
	return &core.Options{
		SteamPath:  root,
		ConfigPath: filepath.Join(t.TempDir(), "missing.toml"),
	}
}

func TestRun_JSON(t *testing.T) {
	root := testRoot(t)
	ops := testOptions(t, root)
	ops.JSON = true

	var out bytes.Buffer
	require.NoError(t, run(ops, &out))

	var got struct {
		Root string `json:"root"`
		Apps []struct {
			AppID  uint32 `json:"appid"`
			Name   string `json:"name"`
			State  string `json:"state"`
			GameID uint64 `json:"gameid"`
		} `json:"apps"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	assert.Equal(t, root, got.Root)
	require.Len(t, got.Apps, 2)
	assert.Equal(t, uint32(220), got.Apps[0].AppID)
	assert.Equal(t, "Portal 2", got.Apps[1].Name)
	assert.Equal(t, "FullyInstalled", got.Apps[0].State)
	assert.Equal(t, uint64(220), got.Apps[0].GameID)
}

func TestRun_Libraries(t *testing.T) {
	root := testRoot(t)
	ops := testOptions(t, root)
	ops.Libraries = true

	var out bytes.Buffer
	require.NoError(t, run(ops, &out))
	assert.Contains(t, out.String(), root)
	assert.NotContains(t, out.String(), "Portal 2")
}

func TestRun_AppsWithSections(t *testing.T) {
	root := testRoot(t)
	ops := testOptions(t, root)
	ops.Apps = []uint{620, 10}
	ops.Sections = true

	var out bytes.Buffer
	err := run(ops, &out)
	assert.Error(t, err, "a missing app fails the run")
	assert.Contains(t, out.String(), "Portal 2")
	assert.Contains(t, out.String(), "2.0 KiB")
	assert.Contains(t, out.String(), "\"language\"\t\t\"english\"")
	assert.Contains(t, out.String(), "App 10 is not installed")
	assert.NotContains(t, out.String(), "Half-Life 2")
}

func TestRun_Shortcuts(t *testing.T) {
	root := testRoot(t)

	entry := kv.NewObject("0")
	entry.Set(kv.NewString("AppName", "Anki"))
	entry.Set(kv.NewString("Exe", `"anki"`))
	list := kv.NewObject("shortcuts")
	list.Set(entry)
	doc := kv.NewObject("")
	doc.Set(list)
	data, err := kv.EncodeBinary(doc)
	require.NoError(t, err)
	writeTestFile(t, filepath.Join(root, "userdata", "1234", "config", "shortcuts.vdf"), data)

	ops := testOptions(t, root)
	ops.Shortcuts = true
	ops.JSON = true

	var out bytes.Buffer
	require.NoError(t, run(ops, &out))

	var got struct {
		Shortcuts []core.Shortcut `json:"shortcuts"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got.Shortcuts, 1)
	assert.Equal(t, "Anki", got.Shortcuts[0].AppName)
	assert.Equal(t, "1234", got.Shortcuts[0].UserID)
	assert.Equal(t, core.ShortcutAppID(`"anki"`, "Anki", nil), got.Shortcuts[0].AppID)
}

func TestRun_Diagnostics(t *testing.T) {
	root := testRoot(t)
	writeTestFile(t, filepath.Join(root, "steamapps", "appmanifest_30.acf"), []byte("\"AppState\"\n{\n"))

	ops := testOptions(t, root)
	ops.Diagnostics = true

	var out bytes.Buffer
	require.NoError(t, run(ops, &out))
	assert.Contains(t, out.String(), "manifest skipped")
	assert.Contains(t, out.String(), "appmanifest_30.acf")
}

func TestRun_BadConfig(t *testing.T) {
	ops := testOptions(t, testRoot(t))
	writeTestFile(t, ops.ConfigPath, []byte("nonsense = 1\n"))

	assert.Error(t, run(ops, &bytes.Buffer{}))
}

func TestRun_AppIDOutOfRange(t *testing.T) {
	if math.MaxUint == math.MaxUint32 {
		t.Skip("uint cannot hold a wider id")
	}
	wide := uint64(math.MaxUint32) + 221
	ops := testOptions(t, testRoot(t))
	ops.Apps = []uint{uint(wide)}

	var out bytes.Buffer
	err := run(ops, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
	assert.NotContains(t, out.String(), "Half-Life 2")
}

func TestRun_SteamPathWithoutLibrary(t *testing.T) {
	ops := testOptions(t, t.TempDir())

	err := run(ops, &bytes.Buffer{})
	assert.True(t, errors.Is(err, core.ErrRootNotFound))
}

func TestRun_BadUserFlag(t *testing.T) {
	ops := testOptions(t, testRoot(t))
	ops.ShortcutUser = "me"

	assert.Error(t, run(ops, &bytes.Buffer{}))
}

func TestRun_Version(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(&core.Options{Version: true}, &out))
	assert.Equal(t, core.APP_NAME+" "+core.Version+"\n", out.String())
}

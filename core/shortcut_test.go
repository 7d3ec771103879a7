package core

import (
	"errors"
	"hash/crc32"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"steamlocate/kv"
)

type shortcutFixture struct {
	appid    string
	name     string
	exe      string
	startDir string
	tags     []string
}

func shortcutsFile(t *testing.T, fixtures ...shortcutFixture) []byte {
	t.Helper()
	list := kv.NewObject("shortcuts")
	for i, f := range fixtures {
		entry := kv.NewObject(string(rune('0' + i)))
		if f.appid != "" {
			entry.Set(kv.NewString("appid", f.appid))
		}
		entry.Set(kv.NewString("AppName", f.name))
		entry.Set(kv.NewString("Exe", f.exe))
		entry.Set(kv.NewString("StartDir", f.startDir))
		entry.Set(kv.NewString("icon", ""))
		entry.Set(kv.NewString("LaunchOptions", "-fullscreen"))
		entry.Set(kv.NewString("IsHidden", "0"))
		entry.Set(kv.NewString("LastPlayTime", "1700000000"))
		tags := kv.NewObject("tags")
		for j, tag := range f.tags {
			tags.Set(kv.NewString(string(rune('0'+j)), tag))
		}
		entry.Set(tags)
		list.Set(entry)
	}
	root := kv.NewObject("")
	root.Set(list)

	data, err := kv.EncodeBinary(root, "appid", "IsHidden", "LastPlayTime")
	require.NoError(t, err)
	return data
}

func TestShortcutAppID_MatchesReferenceDigest(t *testing.T) {
	exe := `"/usr/local/bin/foo.sh"`
	name := "foo.sh"

	table := crc32.MakeTable(crc32.IEEE)
	want := crc32.Checksum([]byte(exe+name), table) | 0x80000000
	assert.Equal(t, want, ShortcutAppID(exe, name, IEEEChecksum))
	assert.Equal(t, want, ShortcutAppID(exe, name, nil), "nil checksum uses the default")

	// CRC-32/IEEE check value for "123456789" is 0xCBF43926.
	assert.Equal(t, uint32(0xCBF43926), ShortcutAppID("12345", "6789", IEEEChecksum))
	assert.Equal(t, GameID(0xCBF4392602000000), ShortcutGameID(0xCBF43926))
}

// Game ids as the client shows them for shortcuts added through its UI.
func TestParseShortcuts_KnownGameIDs(t *testing.T) {
	cases := []struct {
		exe  string
		name string
		want GameID
	}{
		{`"anki"`, "Anki", 0xe89614fe02000000},
		{`"libreoffice"`, "LibreOffice Calc", 0xdb01c79902000000},
		{`"/usr/local/bin/foo.sh"`, "foo.sh", 0x9d55017302000000},
	}

	fixtures := make([]shortcutFixture, 0, len(cases))
	for _, tc := range cases {
		fixtures = append(fixtures, shortcutFixture{name: tc.name, exe: tc.exe})
	}

	shortcuts, err := ParseShortcuts(shortcutsFile(t, fixtures...), "", nil)
	require.NoError(t, err)
	require.Len(t, shortcuts, len(cases))

	for i, tc := range cases {
		assert.Equal(t, tc.want, shortcuts[i].GameID, "%s", tc.name)
		assert.Equal(t, uint32(tc.want>>32), shortcuts[i].AppID, "%s", tc.name)
	}
}

func TestShortcutAppID_TopBitAlwaysSet(t *testing.T) {
	zero := func([]byte) uint32 { return 0 }
	assert.Equal(t, uint32(0x80000000), ShortcutAppID("a", "b", zero))
}

func TestParseShortcuts(t *testing.T) {
	data := shortcutsFile(t,
		shortcutFixture{appid: "2786274309", name: "Anki", exe: `"anki"`, startDir: `"./"`, tags: []string{"Study", "Favorite"}},
		shortcutFixture{name: "foo.sh", exe: `"/usr/local/bin/foo.sh"`},
	)

	shortcuts, err := ParseShortcuts(data, "1234", IEEEChecksum)
	require.NoError(t, err)
	require.Len(t, shortcuts, 2)

	anki := shortcuts[0]
	assert.Equal(t, "Anki", anki.AppName)
	assert.Equal(t, `"anki"`, anki.Exe)
	assert.Equal(t, `"./"`, anki.StartDir)
	assert.Equal(t, []string{"Study", "Favorite"}, anki.Tags)
	assert.Equal(t, "-fullscreen", anki.LaunchOptions)
	assert.False(t, anki.Hidden)
	assert.Equal(t, time.Unix(1700000000, 0).UTC(), anki.LastPlayTime)
	assert.Equal(t, uint32(2786274309), anki.StoredAppID)
	assert.Equal(t, "1234", anki.UserID)
	assert.Equal(t, crc32.ChecksumIEEE([]byte(`"anki"Anki`))|0x80000000, anki.AppID)
	assert.Equal(t, ShortcutGameID(anki.AppID), anki.GameID)
	assert.True(t, anki.GameID.IsShortcut())
	assert.Equal(t, anki.AppID, anki.GameID.ModID())

	foo := shortcuts[1]
	assert.Zero(t, foo.StoredAppID)
	assert.Equal(t, `"`+filepath.Join("/usr/local/bin")+string(filepath.Separator)+`"`, foo.StartDir,
		"empty start dir is derived from the executable")
}

func TestParseShortcuts_CaseInsensitiveKeys(t *testing.T) {
	entry := kv.NewObject("0")
	entry.Set(kv.NewString("appname", "Second Life"))
	entry.Set(kv.NewString("exe", `"/Applications/Second Life Viewer.app"`))
	entry.Set(kv.NewString("startdir", `"/Applications/"`))
	list := kv.NewObject("Shortcuts")
	list.Set(entry)
	root := kv.NewObject("")
	root.Set(list)
	data, err := kv.EncodeBinary(root)
	require.NoError(t, err)

	shortcuts, err := ParseShortcuts(data, "", nil)
	require.NoError(t, err)
	require.Len(t, shortcuts, 1)
	assert.Equal(t, "Second Life", shortcuts[0].AppName)
	assert.Equal(t, `"/Applications/"`, shortcuts[0].StartDir)
}

func TestParseShortcuts_Failures(t *testing.T) {
	good := shortcutsFile(t, shortcutFixture{name: "Anki", exe: "anki"})

	_, err := ParseShortcuts(good[:len(good)-1], "", nil)
	assert.True(t, errors.Is(err, kv.ErrTruncated))

	corrupt := append([]byte{}, good...)
	corrupt[len("\x00shortcuts\x00")] = 0x05
	_, err = ParseShortcuts(corrupt, "", nil)
	assert.True(t, errors.Is(err, kv.ErrUnknownType))

	other, err := kv.EncodeBinary(func() *kv.Node {
		n := kv.NewObject("")
		n.Set(kv.NewObject("something else"))
		return n
	}())
	require.NoError(t, err)
	_, err = ParseShortcuts(other, "", nil)
	assert.Error(t, err)
}

func TestSnapshotShortcuts_AllUsers(t *testing.T) {
	root := newLibrary(t)
	writeFile(t, filepath.Join(root, UserDataDir, "111", "config", ShortcutsFile),
		string(shortcutsFile(t, shortcutFixture{name: "Anki", exe: `"anki"`})))
	writeFile(t, filepath.Join(root, UserDataDir, "222", "config", ShortcutsFile),
		string(shortcutsFile(t, shortcutFixture{name: "Calc", exe: `"libreoffice"`}, shortcutFixture{name: "foo", exe: "foo"})))
	writeFile(t, filepath.Join(root, UserDataDir, "anonymous", "config", ShortcutsFile), "ignored")
	writeFile(t, filepath.Join(root, UserDataDir, "333", "config", "localconfig.vdf"), "no shortcuts here")

	snap, err := DiscoverAt(root)
	require.NoError(t, err)

	shortcuts, err := snap.Shortcuts()
	require.NoError(t, err)
	require.Len(t, shortcuts, 3)
	assert.Equal(t, "111", shortcuts[0].UserID)
	assert.Equal(t, "222", shortcuts[2].UserID)

	d := newTestDiscoverer(root, false)
	d.ShortcutUser = "222"
	snap, err = d.Discover()
	require.NoError(t, err)
	shortcuts, err = snap.Shortcuts()
	require.NoError(t, err)
	assert.Len(t, shortcuts, 2)
}

func TestSnapshotShortcuts_NoUserData(t *testing.T) {
	snap, err := DiscoverAt(newLibrary(t))
	require.NoError(t, err)

	shortcuts, err := snap.Shortcuts()
	assert.NoError(t, err)
	assert.Empty(t, shortcuts)
}

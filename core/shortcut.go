package core

import (
	"errors"
	"fmt"
	"hash/crc32"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"steamlocate/kv"
)

const (
	UserDataDir   = "userdata"
	ShortcutsFile = "shortcuts.vdf"

	shortcutIDBit = 0x80000000
)

// Checksum computes the 32-bit digest shortcut ids are derived from.
type Checksum func([]byte) uint32

// IEEEChecksum is the CRC-32 the client uses.
func IEEEChecksum(b []byte) uint32 {
	return crc32.ChecksumIEEE(b)
}

// ShortcutAppID derives the 32-bit id the client assigns to a shortcut
// added through its UI: a checksum over the executable followed by the
// name, with the top bit set.
func ShortcutAppID(exe, name string, sum Checksum) uint32 {
	if sum == nil {
		sum = IEEEChecksum
	}
	return sum([]byte(exe+name)) | shortcutIDBit
}

// Shortcut is a non-Steam game from userdata/<user>/config/shortcuts.vdf.
type Shortcut struct {
	AppName       string    `json:"name"`
	Exe           string    `json:"exe"`
	StartDir      string    `json:"start_dir"`
	Icon          string    `json:"icon,omitempty"`
	ShortcutPath  string    `json:"shortcut_path,omitempty"`
	LaunchOptions string    `json:"launch_options,omitempty"`
	Tags          []string  `json:"tags,omitempty"`
	Hidden        bool      `json:"hidden,omitempty"`
	LastPlayTime  time.Time `json:"last_play_time"`
	StoredAppID   uint32    `json:"stored_appid,omitempty"`
	UserID        string    `json:"user"`

	AppID  uint32 `json:"appid"`
	GameID GameID `json:"gameid"`
}

// ShortcutFiles lists the shortcuts file of every user under root, or only
// of user when it is not empty. No userdata directory means no files.
func ShortcutFiles(root, user string) ([]string, error) {
	dir := filepath.Join(root, UserDataDir)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		if _, err := strconv.ParseUint(entry.Name(), 10, 64); err != nil {
			continue
		}
		if user != "" && entry.Name() != user {
			continue
		}
		path := filepath.Join(dir, entry.Name(), "config", ShortcutsFile)
		if info, err := os.Stat(path); err == nil && info.Mode().IsRegular() {
			files = append(files, path)
		}
	}
	return files, nil
}

// ReadShortcuts reads one shortcuts file. The user id is taken from the
// path (userdata/<user>/config/shortcuts.vdf).
func ReadShortcuts(path string, sum Checksum) ([]Shortcut, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	user := filepath.Base(filepath.Dir(filepath.Dir(path)))
	shortcuts, err := ParseShortcuts(data, user, sum)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrShortcutDecodeFailed, path, err)
	}
	return shortcuts, nil
}

// ParseShortcuts decodes a binary shortcuts file.
func ParseShortcuts(data []byte, user string, sum Checksum) ([]Shortcut, error) {
	root, err := kv.DecodeBinary(data)
	if err != nil {
		return nil, err
	}

	list, ok := root.Object("shortcuts")
	if !ok {
		return nil, errors.New("missing shortcuts")
	}

	var shortcuts []Shortcut
	for _, entry := range list.Children() {
		if !entry.IsObject() {
			continue
		}
		shortcuts = append(shortcuts, shortcutFromNode(entry, user, sum))
	}
	return shortcuts, nil
}

func shortcutFromNode(entry *kv.Node, user string, sum Checksum) Shortcut {
	s := Shortcut{
		AppName:       entry.String("AppName"),
		Exe:           entry.String("Exe"),
		StartDir:      entry.String("StartDir"),
		Icon:          entry.String("icon"),
		ShortcutPath:  entry.String("ShortcutPath"),
		LaunchOptions: entry.String("LaunchOptions"),
		Hidden:        ParseBoolOrFalse(entry.String("IsHidden")),
		LastPlayTime:  ParseUnixOrZero(entry.String("LastPlayTime")),
		StoredAppID:   ParseUint32OrZero(entry.String("appid")),
		UserID:        user,
	}

	if tags, ok := entry.Object("tags"); ok {
		for _, tag := range tags.Children() {
			if tag.IsString() {
				s.Tags = append(s.Tags, tag.Value())
			}
		}
	}

	if s.StartDir == "" && s.Exe != "" {
		s.StartDir = startDirFor(s.Exe)
	}

	s.AppID = ShortcutAppID(s.Exe, s.AppName, sum)
	s.GameID = ShortcutGameID(s.AppID)
	return s
}

// startDirFor returns the directory of exe, quoted the same way exe is.
func startDirFor(exe string) string {
	quoted := len(exe) >= 2 && strings.HasPrefix(exe, `"`) && strings.HasSuffix(exe, `"`)
	path := exe
	if quoted {
		path = exe[1 : len(exe)-1]
	}

	dir := filepath.Dir(path)
	if !strings.HasSuffix(dir, string(filepath.Separator)) {
		dir += string(filepath.Separator)
	}
	if quoted {
		return `"` + dir + `"`
	}
	return dir
}

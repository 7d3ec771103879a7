package core

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"steamlocate/kv"
)

const (
	SteamAppsDir = "steamapps"
	CommonDir    = "common"
)

// LibraryFolder is one directory tree that holds installed apps.
type LibraryFolder struct {
	Path  string `json:"path"`
	Label string `json:"label,omitempty"`
}

func (f LibraryFolder) SteamAppsPath() string {
	return filepath.Join(f.Path, SteamAppsDir)
}

func (f LibraryFolder) CommonPath() string {
	return filepath.Join(f.Path, SteamAppsDir, CommonDir)
}

// StateFlags is the AppState.StateFlags bit set.
type StateFlags uint32

const (
	StateUninstalled    StateFlags = 1 << 0
	StateUpdateRequired StateFlags = 1 << 1
	StateFullyInstalled StateFlags = 1 << 2
	StateEncrypted      StateFlags = 1 << 3
	StateLocked         StateFlags = 1 << 4
	StateFilesMissing   StateFlags = 1 << 5
	StateAppRunning     StateFlags = 1 << 6
	StateFilesCorrupt   StateFlags = 1 << 7
	StateUpdateRunning  StateFlags = 1 << 8
	StateUpdatePaused   StateFlags = 1 << 9
	StateUpdateStarted  StateFlags = 1 << 10
	StateUninstalling   StateFlags = 1 << 11
	StateBackupRunning  StateFlags = 1 << 12
	StateReconfiguring  StateFlags = 1 << 16
	StateValidating     StateFlags = 1 << 17
	StateAddingFiles    StateFlags = 1 << 18
	StatePreallocating  StateFlags = 1 << 19
	StateDownloading    StateFlags = 1 << 20
	StateStaging        StateFlags = 1 << 21
	StateCommitting     StateFlags = 1 << 22
	StateUpdateStopping StateFlags = 1 << 23
)

var stateFlagNames = []struct {
	flag StateFlags
	name string
}{
	{StateUninstalled, "Uninstalled"},
	{StateUpdateRequired, "UpdateRequired"},
	{StateFullyInstalled, "FullyInstalled"},
	{StateEncrypted, "Encrypted"},
	{StateLocked, "Locked"},
	{StateFilesMissing, "FilesMissing"},
	{StateAppRunning, "AppRunning"},
	{StateFilesCorrupt, "FilesCorrupt"},
	{StateUpdateRunning, "UpdateRunning"},
	{StateUpdatePaused, "UpdatePaused"},
	{StateUpdateStarted, "UpdateStarted"},
	{StateUninstalling, "Uninstalling"},
	{StateBackupRunning, "BackupRunning"},
	{StateReconfiguring, "Reconfiguring"},
	{StateValidating, "Validating"},
	{StateAddingFiles, "AddingFiles"},
	{StatePreallocating, "Preallocating"},
	{StateDownloading, "Downloading"},
	{StateStaging, "Staging"},
	{StateCommitting, "Committing"},
	{StateUpdateStopping, "UpdateStopping"},
}

func (s StateFlags) Has(flag StateFlags) bool {
	return s&flag == flag
}

func (s StateFlags) String() string {
	if s == 0 {
		return "Invalid"
	}
	var names []string
	rest := s
	for _, f := range stateFlagNames {
		if s&f.flag != 0 {
			names = append(names, f.name)
			rest &^= f.flag
		}
	}
	if rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(names, "|")
}

// App is one installed title, read from appmanifest_<appid>.acf.
type App struct {
	AppID        uint32     `json:"appid"`
	Name         string     `json:"name"`
	InstallDir   string     `json:"installdir"`
	Path         string     `json:"path"`
	SizeOnDisk   uint64     `json:"size_on_disk"`
	StateFlags   StateFlags `json:"state_flags"`
	LastUpdated  time.Time  `json:"last_updated"`
	BuildID      uint32     `json:"buildid"`
	LastOwner    uint64     `json:"last_owner,omitempty"`
	Library      string     `json:"library"`
	ManifestPath string     `json:"manifest"`

	// Sections holds the object-valued children of AppState (UserConfig,
	// InstalledDepots, ...) as read. Apps handed out by a Snapshot carry
	// their own copies.
	Sections map[string]*kv.Node `json:"-"`
}

// clone returns a copy of a that shares no sections with it.
func (a App) clone() App {
	if a.Sections == nil {
		return a
	}
	sections := make(map[string]*kv.Node, len(a.Sections))
	for name, node := range a.Sections {
		sections[name] = node.Clone()
	}
	a.Sections = sections
	return a
}

func (a App) Installed() bool {
	return a.StateFlags.Has(StateFullyInstalled)
}

func (a App) UpdateRequired() bool {
	return a.StateFlags.Has(StateUpdateRequired)
}

func (a App) GameID() GameID {
	return AppGameID(a.AppID)
}

package core

// Version is overridden at build time with -ldflags "-X steamlocate/core.Version=...".
var Version = "dev"

const APP_NAME = "SteamLocate"

// Options are the command line flags, parsed with go-flags.
type Options struct {
	SteamPath    string   `short:"s" long:"steam-path" description:"Use this Steam root instead of searching for one"`
	ConfigPath   string   `short:"c" long:"config" description:"Path to the TOML config file. Defaults to User's Config Dir / SteamLocate / config.toml"`
	Apps         []uint   `short:"a" long:"app" description:"Show only these app IDs (repeatable)"`
	Shortcuts    bool     `short:"x" long:"shortcuts" description:"List non-Steam shortcuts"`
	ShortcutUser string   `short:"u" long:"user" description:"Restrict shortcuts to one userdata directory"`
	Libraries    bool     `short:"l" long:"libraries" description:"List library folders only"`
	Diagnostics  bool     `short:"d" long:"diagnostics" description:"Print files that were skipped during the scan"`
	Sections     bool     `long:"sections" description:"Print the raw manifest sections of the apps selected with --app"`
	JSON         bool     `short:"j" long:"json" description:"Print JSON instead of tables"`
	NoParallel   bool     `long:"no-parallel" description:"Scan library folders one at a time"`
	Extra        []string `short:"e" long:"extra-candidate" description:"Additional directory to probe for a Steam root (repeatable)"`
	Verbose      bool     `short:"v" long:"verbose" description:"Enable verbose logging"`
	LogLocation  string   `long:"log-location" description:"Write logs to this file instead of stderr"`
	Version      bool     `long:"version" description:"Print the version and exit"`
}

package core

import (
	"fmt"
	"strconv"
)

// GameID is the client's 64-bit game identifier, the form used in
// steam://rungameid/ URLs. Bits 0-23 hold the app id, bits 24-31 the game
// type and bits 32-63 the mod id, which for shortcuts is the shortcut's
// 32-bit app id.
type GameID uint64

type GameType uint8

const (
	GameTypeApp      GameType = 0
	GameTypeGameMod  GameType = 1
	GameTypeShortcut GameType = 2
	GameTypeP2P      GameType = 3
)

func AppGameID(appID uint32) GameID {
	return GameID(appID & 0xffffff)
}

func ShortcutGameID(shortcutAppID uint32) GameID {
	return GameID(uint64(shortcutAppID)<<32 | uint64(GameTypeShortcut)<<24)
}

func ParseGameID(s string) (GameID, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse game id %q: %w", s, err)
	}
	return GameID(v), nil
}

func (g GameID) AppID() uint32 { return uint32(g & 0xffffff) }

func (g GameID) Type() GameType { return GameType(g >> 24) }

func (g GameID) ModID() uint32 { return uint32(g >> 32) }

func (g GameID) IsShortcut() bool { return g.Type() == GameTypeShortcut }

func (g GameID) String() string {
	return strconv.FormatUint(uint64(g), 10)
}

func (g GameID) RunURL() string {
	return "steam://rungameid/" + g.String()
}

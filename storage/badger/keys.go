package badger

import (
	"bytes"
	"strconv"

	"github.com/poiesic/sift/core"
)

// Key prefixes for different data types
const (
	guildPrefix       = "guild"
	activeGuildPrefix = "guilda"
)

// makeGuildKey generates the primary key for a guild.
// Format: guild:<id>
func makeGuildKey(id core.GuildID) []byte {
	return []byte(guildPrefix + ":" + id.String())
}

// makeActiveGuildKey generates the active-index key for a guild.
// Format: guilda:<id>
func makeActiveGuildKey(id core.GuildID) []byte {
	return []byte(activeGuildPrefix + ":" + id.String())
}

// activeGuildScanPrefix matches every active-index key.
func activeGuildScanPrefix() []byte {
	return []byte(activeGuildPrefix + ":")
}

// parseActiveGuildKey extracts the guild ID from an active-index key.
func parseActiveGuildKey(key []byte) (core.GuildID, bool) {
	rest, ok := bytes.CutPrefix(key, activeGuildScanPrefix())
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseUint(string(rest), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return core.GuildID(id), true
}

package discord

import (
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"
)

// BridgeLogs routes discordgo's package-level logging through logger.
func BridgeLogs(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "discordgo")
	discordgo.Logger = func(msgL, caller int, format string, a ...any) {
		msg := fmt.Sprintf(format, a...)
		switch msgL {
		case discordgo.LogError:
			logger.Error(msg)
		case discordgo.LogWarning:
			logger.Warn(msg)
		case discordgo.LogInformational:
			logger.Info(msg)
		default:
			logger.Debug(msg)
		}
	}
}

// SessionLogLevel maps an slog level to discordgo's log level.
func SessionLogLevel(level slog.Level) int {
	switch {
	case level <= slog.LevelDebug:
		return discordgo.LogDebug
	case level <= slog.LevelInfo:
		return discordgo.LogInformational
	case level <= slog.LevelWarn:
		return discordgo.LogWarning
	}
	return discordgo.LogError
}

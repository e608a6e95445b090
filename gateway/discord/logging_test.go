package discord

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestBridgeLogs(t *testing.T) {
	saved := discordgo.Logger
	defer func() { discordgo.Logger = saved }()

	var buf bytes.Buffer
	BridgeLogs(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	discordgo.Logger(discordgo.LogWarning, 0, "heartbeat %d missed", 3)
	assert.Contains(t, buf.String(), "level=WARN")
	assert.Contains(t, buf.String(), "heartbeat 3 missed")
	assert.Contains(t, buf.String(), "component=discordgo")
}

func TestSessionLogLevel(t *testing.T) {
	assert.Equal(t, discordgo.LogDebug, SessionLogLevel(slog.LevelDebug))
	assert.Equal(t, discordgo.LogInformational, SessionLogLevel(slog.LevelInfo))
	assert.Equal(t, discordgo.LogWarning, SessionLogLevel(slog.LevelWarn))
	assert.Equal(t, discordgo.LogError, SessionLogLevel(slog.LevelError))
}

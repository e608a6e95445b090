// Package command is the chat-facing surface of the bot.
//
// Parser turns message text into a Command, Router executes commands
// against a handler dispatcher and replies through the chat session, and
// Renderer builds the embeds those replies carry.
package command

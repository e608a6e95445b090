// Package discord implements gateway.Gateway on top of a discordgo session.
//
// Message history is paged 100 messages at a time, the largest page the
// REST API serves. Every REST call waits on a shared rate limiter and is
// retried with exponential backoff. Guild and channel lookups consult the
// session's state cache before falling back to REST.
package discord

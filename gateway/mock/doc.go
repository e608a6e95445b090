// Package mock provides an in-memory gateway.Gateway for tests.
//
// Guilds, channels and messages are seeded with the Add* methods. Any
// operation can be overridden through its XxxFunc field to inject failures
// or slow responses.
//
//	gw := mock.NewGateway()
//	gw.AddGuild(&core.GuildInfo{ID: 1, Name: "ops"})
//	gw.AddChannel(&core.Channel{ID: 10, GuildID: 1, Name: "general"})
//	gw.AddMessages(10, msgs...)
//	gw.Deny(10)
package mock

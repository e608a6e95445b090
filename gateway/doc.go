// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package gateway defines the chat platform boundary used by search.
//
// A Gateway resolves guilds and channels, reports whether the bot may read
// a channel's history, and fetches recent messages. Search never talks to
// the platform directly; everything it reads flows through this interface.
//
// # Implementation Packages
//
//   - gateway/discord: production implementation on top of discordgo
//   - gateway/mock: in-memory gateway for tests and local runs
//
// # Not Found vs. Failure
//
// Lookups that find nothing return (nil, nil). Errors are reserved for
// failures to reach the platform, so callers can tell "no such guild" apart
// from "the platform is down".
package gateway

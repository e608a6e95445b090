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

// Package storage defines persistence for the guilds sift serves.
//
// A guild record holds the guild's display name, its optional language-model
// API key and whether the bot is active there. Message history is never
// stored; search always reads it live from the chat platform.
//
// # Usage
//
//	backend, err := badger.OpenBackend("/var/lib/sift", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer backend.Close()
//
//	guilds, err := badger.NewGuildRepository(backend)
//
// Use in tests with in-memory storage:
//
//	guilds, backend, err := badger.NewMemoryRepository()
//
// # Thread Safety
//
// All repository implementations must be thread-safe and support
// concurrent access from multiple goroutines.
package storage

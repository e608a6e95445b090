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

// Package ai defines the language-model features of sift.
//
// The Assistant interface covers the four things the bot asks of a model:
// summarizing search results, summarizing arbitrary content, explaining a
// query and checking that an API key works. Guilds supply their own keys,
// so every call carries one.
//
// # Implementation Packages
//
//   - ai/openai: production implementation on langchaingo against any
//     OpenAI-compatible API
//   - ai/mock: test double with injectable behavior and call counts
//
// Public constructors (openai.NewAssistant) return the ai.Assistant
// interface. The mock constructor returns its concrete type so tests can
// inject behavior and read call counts.
package ai

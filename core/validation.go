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

package core

import "fmt"

// ValidateGuild validates a Guild according to domain rules.
//
// Validation rules:
//   - ID must be non-zero
//   - Name must not be empty
//   - CreatedAt must be set
//
// NOT validated:
//   - APIKey (optional; format is enforced by NewAPIKey)
func ValidateGuild(guild *Guild) error {
	if guild == nil {
		return fmt.Errorf("%w: guild is nil", ErrInvalidGuild)
	}

	if guild.ID == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidGuild, ErrInvalidID)
	}

	if guild.Name == "" {
		return fmt.Errorf("%w: name cannot be empty", ErrInvalidGuild)
	}

	if guild.CreatedAt.IsZero() {
		return fmt.Errorf("%w: creation time not set", ErrInvalidGuild)
	}

	return nil
}

// ValidateSearchQuery validates a SearchQuery before dispatch.
//
// Validation rules:
//   - GuildID must be non-zero
//   - Query text is required unless the search is restricted to an author
func ValidateSearchQuery(query SearchQuery) error {
	if query.GuildID == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSearchQuery, ErrInvalidID)
	}

	if !query.HasQueryText() && query.AuthorID == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidSearchQuery, ErrEmptyQuery)
	}

	return nil
}

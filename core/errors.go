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

import "errors"

// Domain validation errors
var (
	// ErrInvalidID indicates an identifier could not be parsed or is zero.
	ErrInvalidID = errors.New("invalid id")

	// ErrInvalidAPIKey indicates an API key failed format validation.
	ErrInvalidAPIKey = errors.New("invalid api key")

	// ErrInvalidGuild indicates a Guild failed validation.
	ErrInvalidGuild = errors.New("invalid guild")

	// ErrInvalidSearchResult indicates a SearchResult could not be constructed.
	ErrInvalidSearchResult = errors.New("invalid search result")

	// ErrInvalidSearchQuery indicates a SearchQuery failed validation.
	ErrInvalidSearchQuery = errors.New("invalid search query")

	// ErrNegativeScore indicates a relevance score below zero.
	ErrNegativeScore = errors.New("relevance score cannot be negative")

	// ErrEmptyQuery indicates a search query with no text and no author restriction.
	ErrEmptyQuery = errors.New("query cannot be empty")

	// ErrSummaryAlreadySet indicates a second attempt to attach a summary to a result.
	ErrSummaryAlreadySet = errors.New("summary already set")
)

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

// Package search provides keyword search over live channel history.
//
// Nothing is indexed ahead of time. Every query fetches the most recent
// messages of each channel through a gateway.Gateway and scores them on the
// spot:
//
//   - ExtractTerms turns the query into a TermSet
//   - Score weighs one message body against the TermSet
//   - Scanner walks one channel and builds core.SearchResult values
//   - Searcher fans scans out over the guild's channels on a worker pool
//   - Rank and RankByRecency impose the final order
//
// # Scoring
//
// Each term contributes occurrences × (runes / 10). When more than one
// distinct term matches, the sum is multiplied by 1 + 0.3 × (matched − 1).
// If the terms appear verbatim as a phrase, the score doubles.
//
// # Failure Handling
//
// A channel that cannot be read contributes no results; the search carries
// on. Only a failure to resolve the guild or its channel list is returned to
// the caller, wrapped in gateway.ErrUnavailable.
package search

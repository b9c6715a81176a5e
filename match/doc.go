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


// Package match implements the exact prefilter and the similarity metrics used
// to score subtitle text against a query.
//
// All metrics are case-insensitive, measure length in characters (runes) and
// return a ratio in [0,100]. Empty input scores 0.
//
//   - LCSRatio: longest common subsequence length relative to the query length
//   - PartialRatio: best position-aligned overlap of the shorter string on the longer
//   - DisjointRatio: share of query characters placed in non-overlapping spans
//   - MinPartialRatio: weakest PartialRatio across the query words
//
// A Scorer combines the Prefilter with one metric per query mode. Prefilters and
// Scorers are immutable after construction and safe for concurrent use.
package match

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


// Package search runs a query over a subtitle corpus and ranks the matches.
//
// The Searcher builds a match.Scorer for the query, hands it to a
// corpus.Scanner, and merges the per-file results once every file is done.
// Matches are ranked by:
//   - Match ratio, highest first
//   - Matches containing every query word literally before those that do not
//   - File name, then position within the file
//
// A Monitor observes each stage; ProgressMonitor reports scan progress.
package search

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

// Error taxonomy shared by all packages. Package specific sentinels wrap one of these.
var (
	// ErrPrecondition indicates the run was rejected before any scanning started.
	ErrPrecondition = errors.New("precondition failed")

	// ErrCorpusItem indicates a single corpus file could not be used.
	// It never fails a scan; the file is reported as skipped.
	ErrCorpusItem = errors.New("corpus item unusable")
)

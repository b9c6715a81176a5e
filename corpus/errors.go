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


package corpus

import (
	"errors"
	"fmt"

	"github.com/poiesic/subseek/core"
)

var (
	// ErrCorpusRootMissing is returned when the corpus directory does not exist.
	ErrCorpusRootMissing = fmt.Errorf("%w: corpus directory does not exist", core.ErrPrecondition)

	// ErrUnreadable indicates a corpus file could not be read.
	ErrUnreadable = fmt.Errorf("%w: unreadable", core.ErrCorpusItem)

	// ErrMalformed indicates a corpus file is not an array of segments.
	ErrMalformed = fmt.Errorf("%w: malformed", core.ErrCorpusItem)

	// ErrFilesystemRequired is returned when a filesystem is not provided.
	ErrFilesystemRequired = errors.New("filesystem required")

	// ErrScorerRequired is returned when a scan job has no scorer.
	ErrScorerRequired = errors.New("scorer required")
)

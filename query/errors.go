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


package query

import (
	"errors"
	"fmt"

	"github.com/poiesic/subseek/core"
)

var (
	// ErrInvalidQuery is returned when the query is empty or has no words.
	ErrInvalidQuery = fmt.Errorf("%w: invalid query", core.ErrPrecondition)

	// ErrInvalidThreshold is returned when min_ratio or min_similarity is out of range.
	ErrInvalidThreshold = fmt.Errorf("%w: invalid threshold", core.ErrPrecondition)

	// ErrInvalidResultCap is returned when max_results is supplied and not positive.
	ErrInvalidResultCap = fmt.Errorf("%w: invalid result cap", core.ErrPrecondition)

	errEmptyQuery = errors.New("query must not be empty")
)

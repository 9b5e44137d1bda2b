// Copyright 2025 go-highway Authors
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

package bitonic

import "errors"

// Precondition errors. They are reported before any worker starts and
// before data is modified.
var (
	ErrInvalidLength      = errors.New("bitonic: sequence length is not a power of two")
	ErrInvalidWorkerCount = errors.New("bitonic: worker count must be a power of two no larger than the sequence length")
)

// Run errors.
var (
	// ErrInterrupted reports a sort aborted while workers were synchronizing:
	// the context was cancelled or a worker failed. The data is left in an
	// unspecified permutation of its input.
	ErrInterrupted = errors.New("bitonic: sort interrupted")
)

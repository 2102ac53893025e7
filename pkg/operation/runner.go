// Copyright 2025 walteh LLC
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

package operation

import (
	"context"

	"github.com/walteh/mvedit/pkg/entry"
	"gitlab.com/tozd/go/errors"
)

// 🏃 OperationRunner applies a batch strictly in order
type OperationRunner struct {
	executor *Executor
}

// 🏗️ NewRunner creates a new runner
func NewRunner(executor *Executor) *OperationRunner {
	return &OperationRunner{
		executor: executor,
	}
}

// 🏃 Run executes ops one after another and returns how many changed the filesystem.
// It stops at the first failure; operations already applied stay applied.
func (r *OperationRunner) Run(ctx context.Context, ops []entry.Operation) (int, error) {
	processed := 0
	for _, op := range ops {
		select {
		case <-ctx.Done():
			return processed, errors.Errorf("operation cancelled: %w", ctx.Err())
		default:
		}

		done, err := r.executor.Execute(ctx, op)
		if err != nil {
			return processed, err
		}
		if done {
			processed++
		}
	}
	return processed, nil
}

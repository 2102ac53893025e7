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

// Package validate decides whether a candidate operation may join a batch.
//
// Checks run in a fixed order and the first failure wins:
//
//  1. missing name              a trailing separator on a file or symlink target
//  2. duplicated destination    same normalized target as an accepted operation
//  3. nested destination        target contains, or is contained by, an accepted target
//  4. destination exists        target is present on disk right now
//  5. source contains target    target is the source itself or lies beneath it
//
// Check 4 looks only at the filesystem as it is before the batch runs. An
// operation that would free a path for a later one is not taken into account,
// so swaps and rename chains are rejected.
package validate

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/walteh/mvedit/pkg/entry"
)

// 🔍 Exister reports whether a path is currently occupied
type Exister interface {
	Exists(ctx context.Context, path string) (bool, error)
}

// ✅ Validator applies the acceptance policy
type Validator struct {
	fs Exister
}

// 🏭 New creates a new validator backed by fs for the existence check
func New(fs Exister) *Validator {
	return &Validator{fs: fs}
}

// Accept returns nil if candidate may follow the already accepted operations.
// Rejections are *entry.Error values of kind KindConflict.
func (v *Validator) Accept(ctx context.Context, accepted []entry.Operation, candidate entry.Operation) error {
	src := candidate.Source
	dst := candidate.Destination

	if dst.HasTrailingSeparator() && (src.Meta.Type == entry.TypeFile || src.Meta.Type == entry.TypeSymlink) {
		return entry.Conflictf(entry.ConflictMissingName, dst.Text, "%s for %s", dst.Text, src.Bare())
	}

	for _, op := range accepted {
		if op.Destination.Abs == dst.Abs {
			return entry.Conflictf(entry.ConflictDuplicateDestination, dst.Text, "%s", dst.Text)
		}
	}

	for _, op := range accepted {
		if entry.Contains(dst.Abs, op.Destination.Abs) || entry.Contains(op.Destination.Abs, dst.Abs) {
			return entry.Conflictf(entry.ConflictNestedDestination, dst.Text, "%s and %s", dst.Text, op.Destination.Text)
		}
	}

	exists, err := v.fs.Exists(ctx, dst.Abs)
	if err != nil {
		return entry.Errorf(entry.KindFilesystem, dst.Text, "checking destination %s: %w", dst.Text, err)
	}
	if exists {
		return entry.Conflictf(entry.ConflictDestinationExists, dst.Text, "%s", dst.Text)
	}

	if entry.Contains(src.Location, dst.Abs) || (src.Meta.Type != entry.TypeSymlink && entry.Contains(src.Abs, dst.Abs)) {
		return entry.Conflictf(entry.ConflictSourceContainsDestination, dst.Text,
			"\n  source:      %s\n  destination: %s", src.Bare(), dst.Text)
	}

	zerolog.Ctx(ctx).Debug().Stringer("operation", candidate).Msg("operation accepted")
	return nil
}

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

package validate_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/mvedit/pkg/entry"
	"github.com/walteh/mvedit/pkg/fsops"
	"github.com/walteh/mvedit/pkg/testutils"
	"github.com/walteh/mvedit/pkg/validate"
)

func acceptedBatch(t *testing.T, sb *testutils.Sandbox) []entry.Operation {
	return []entry.Operation{
		sb.Operation("1/11/11.txt", "1/12/moved-11.txt"),
		sb.Operation("1/12/12.txt", "1/11/moved-12.txt"),
		sb.Operation("1/1.txt", "1/11/moved-1.txt"),
		sb.Operation("2/21/211", "moved-211"),
		sb.Operation("2/22", "moved-211/moved-22"),
	}
}

func TestAcceptSequence(t *testing.T) {
	ctx := testutils.Context(t)
	sb := testutils.NewSandbox(t)
	v := validate.New(fsops.New())

	var accepted []entry.Operation
	for _, op := range acceptedBatch(t, sb)[:4] {
		require.NoError(t, v.Accept(ctx, accepted, op), "%s should be accepted", op)
		accepted = append(accepted, op)
	}
}

func TestAcceptRejects(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		dst      string
		conflict entry.Conflict
	}{
		{
			name:     "missing_name_for_file",
			src:      "2/2.txt",
			dst:      "somewhere/",
			conflict: entry.ConflictMissingName,
		},
		{
			name:     "duplicate_destination",
			src:      "2/2.txt",
			dst:      "1/12/moved-11.txt",
			conflict: entry.ConflictDuplicateDestination,
		},
		{
			name:     "duplicate_destination_different_spelling",
			src:      "2/2.txt",
			dst:      "1/11/../12/./moved-11.txt",
			conflict: entry.ConflictDuplicateDestination,
		},
		{
			name:     "same_as_accepted_destination",
			src:      "1/11",
			dst:      "moved-211",
			conflict: entry.ConflictDuplicateDestination,
		},
		{
			name:     "contains_accepted_destination",
			src:      "2/2.txt",
			dst:      "1/12",
			conflict: entry.ConflictNestedDestination,
		},
		{
			name:     "inside_accepted_destination",
			src:      "2/2.txt",
			dst:      "moved-211/inner.txt",
			conflict: entry.ConflictNestedDestination,
		},
		{
			name:     "destination_exists",
			src:      "1/11/11.txt",
			dst:      "1/12/12.txt",
			conflict: entry.ConflictDestinationExists,
		},
		{
			name:     "destination_is_source",
			src:      "1/11/11.txt",
			dst:      "1/11/11.txt",
			conflict: entry.ConflictDestinationExists,
		},
		{
			name:     "existing_directory",
			src:      "1/11",
			dst:      "2/21/211",
			conflict: entry.ConflictDestinationExists,
		},
		{
			name:     "into_own_subtree",
			src:      "2/21",
			dst:      "2/21/inner/21",
			conflict: entry.ConflictSourceContainsDestination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutils.Context(t)
			sb := testutils.NewSandbox(t)
			v := validate.New(fsops.New())

			err := v.Accept(ctx, acceptedBatch(t, sb)[:4], sb.Operation(tt.src, tt.dst))
			require.Error(t, err)
			assert.Equal(t, entry.KindConflict, entry.KindOf(err), "should be a conflict")
			assert.Equal(t, tt.conflict, entry.ConflictOf(err), "conflict kind should match: %v", err)
		})
	}
}

func TestAcceptDirectoryTrailingSeparator(t *testing.T) {
	ctx := testutils.Context(t)
	sb := testutils.NewSandbox(t)
	v := validate.New(fsops.New())

	err := v.Accept(ctx, nil, sb.Operation("1/11", "1/renamed-11/"))
	assert.NoError(t, err, "a directory may keep its trailing separator")
}

func TestAcceptTrailingSeparatorByType(t *testing.T) {
	tests := []struct {
		name     string
		typ      entry.EntryType
		conflict entry.Conflict
	}{
		{name: "file", typ: entry.TypeFile, conflict: entry.ConflictMissingName},
		{name: "symlink", typ: entry.TypeSymlink, conflict: entry.ConflictMissingName},
		{name: "other", typ: entry.TypeOther, conflict: entry.ConflictNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := testutils.Context(t)
			sb := testutils.NewSandbox(t)
			v := validate.New(fsops.New())

			op := entry.Operation{
				Source: entry.Source{
					Text:     "special",
					Path:     "special",
					Abs:      sb.Path("special"),
					Location: sb.Path("special"),
					Meta:     entry.Meta{Type: tt.typ},
				},
				Destination: sb.Destination("renamed/"),
			}

			err := v.Accept(ctx, nil, op)
			if tt.conflict == entry.ConflictNone {
				assert.NoError(t, err, "only files and symlinks need a name")
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.conflict, entry.ConflictOf(err), "conflict should match")
		})
	}
}

func TestAcceptSymlinkIntoItsTarget(t *testing.T) {
	ctx := testutils.Context(t)
	sb := testutils.NewSandbox(t)
	v := validate.New(fsops.New())
	require.NoError(t, os.Symlink(sb.Path("2/21"), sb.Path("link")))

	err := v.Accept(ctx, nil, sb.Operation("link", "2/21/link"))
	assert.NoError(t, err, "the link is not the directory it points to")

	err = v.Accept(ctx, nil, sb.Operation("2/21", "2/21/211/moved"))
	require.Error(t, err)
	assert.Equal(t, entry.ConflictSourceContainsDestination, entry.ConflictOf(err), "a directory cannot move into itself")
}

func TestAcceptSwapIsRejected(t *testing.T) {
	ctx := testutils.Context(t)
	sb := testutils.NewSandbox(t)
	v := validate.New(fsops.New())

	accepted := []entry.Operation{sb.Operation("1/12", "1/free")}
	err := v.Accept(ctx, accepted, sb.Operation("1/11", "1/12"))
	require.Error(t, err, "the target is only freed later, so it still exists now")
	assert.Equal(t, entry.ConflictDestinationExists, entry.ConflictOf(err))
}

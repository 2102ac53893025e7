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

package edit

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/walteh/mvedit/pkg/entry"
	"github.com/walteh/mvedit/pkg/testutils"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "blank_lines_dropped",
			text: "a\n\n  \nb\n",
			want: []string{"a", "b"},
		},
		{
			name: "whitespace_trimmed",
			text: "  a.txt \r\n\tdir/ \n",
			want: []string{"a.txt", "dir/"},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.text))
		})
	}
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := testutils.Context(t)
	sb := testutils.NewSandbox(t)
	sources := []entry.Source{sb.Source("1/1.txt"), sb.Source("1/11")}

	var seen []string
	editor := EditorFunc(func(ctx context.Context, text string) (string, error) {
		seen = append(seen, text)
		return text + "\n\n", nil
	})

	s := NewSession(editor, sources)
	lines, err := s.Next(ctx)
	require.NoError(t, err)

	want := filepath.FromSlash("1/1.txt") + "\n" + filepath.FromSlash("1/11") + string(filepath.Separator)
	assert.Equal(t, want, seen[0], "directories should be listed with a trailing separator")
	assert.Equal(t, []string{filepath.FromSlash("1/1.txt"), filepath.FromSlash("1/11/")}, lines)

	_, err = s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, want+"\n\n", seen[1], "redo should start from the last edited text")
}

func TestExternalEditor(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script as editor")
	}
	ctx := testutils.Context(t)

	script := filepath.Join(t.TempDir(), "editor.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\necho renamed.txt > \"$1\"\n"), 0755))

	e := NewExternal(script)
	got, err := e.Edit(ctx, "original.txt\n")
	require.NoError(t, err)
	assert.Equal(t, "renamed.txt\n", got)
}

func TestNewExternalFallback(t *testing.T) {
	t.Setenv("VISUAL", "")
	t.Setenv("EDITOR", "code --wait")
	assert.Equal(t, []string{"code", "--wait"}, NewExternal("").Command())

	t.Setenv("VISUAL", "nano")
	assert.Equal(t, []string{"nano"}, NewExternal("").Command())
	assert.Equal(t, []string{"hx"}, NewExternal("hx").Command())
}

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

package fsops

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestExists(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	m := New()

	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing"), filepath.Join(dir, "dangling")))

	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "file", path: "a.txt", want: true},
		{name: "dangling_symlink", path: "dangling", want: true},
		{name: "missing", path: "nope", want: false},
		{name: "beneath_a_file", path: "a.txt/inner", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.Exists(ctx, filepath.Join(dir, filepath.FromSlash(tt.path)))
			require.NoError(t, err, "existence check should not fail")
			assert.Equal(t, tt.want, got, "existence of %s should match", tt.path)
		})
	}
}

func TestRename(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	m := New()

	writeFile(t, filepath.Join(dir, "a.txt"), "a")
	writeFile(t, filepath.Join(dir, "b.txt"), "b")

	err := m.Rename(ctx, filepath.Join(dir, "a.txt"), filepath.Join(dir, "b.txt"))
	require.Error(t, err, "rename onto an existing entry should fail")
	assert.ErrorIs(t, err, fs.ErrExist)

	require.NoError(t, m.Rename(ctx, filepath.Join(dir, "a.txt"), filepath.Join(dir, "c.txt")))
	content, err := os.ReadFile(filepath.Join(dir, "c.txt"))
	require.NoError(t, err)
	assert.Equal(t, "a", string(content))
	assert.NoFileExists(t, filepath.Join(dir, "a.txt"))
}

func TestMove(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	m := New()

	writeFile(t, filepath.Join(dir, "src", "tree", "leaf.txt"), "leaf")
	require.NoError(t, m.CreateDir(ctx, filepath.Join(dir, "dst", "deep")))

	require.NoError(t, m.Move(ctx, filepath.Join(dir, "src", "tree"), filepath.Join(dir, "dst", "deep")))
	assert.FileExists(t, filepath.Join(dir, "dst", "deep", "tree", "leaf.txt"))
	assert.NoDirExists(t, filepath.Join(dir, "src", "tree"))

	writeFile(t, filepath.Join(dir, "src", "tree", "other.txt"), "other")
	err := m.Move(ctx, filepath.Join(dir, "src", "tree"), filepath.Join(dir, "dst", "deep"))
	require.Error(t, err, "move onto an occupied basename should fail")
	assert.ErrorIs(t, err, fs.ErrExist)
	assert.FileExists(t, filepath.Join(dir, "src", "tree", "other.txt"), "source should be untouched")
}

func TestCopy(t *testing.T) {
	ctx := testContext(t)
	dir := t.TempDir()
	m := New()

	writeFile(t, filepath.Join(dir, "tree", "a", "b.txt"), "b")
	require.NoError(t, os.Symlink("a", filepath.Join(dir, "tree", "link")))

	require.NoError(t, m.Copy(ctx, filepath.Join(dir, "tree"), filepath.Join(dir, "copy")))
	assert.FileExists(t, filepath.Join(dir, "tree", "a", "b.txt"), "original should remain")
	assert.FileExists(t, filepath.Join(dir, "copy", "a", "b.txt"))

	target, err := os.Readlink(filepath.Join(dir, "copy", "link"))
	require.NoError(t, err, "symlinks should be copied as links")
	assert.Equal(t, "a", target)

	err = m.Copy(ctx, filepath.Join(dir, "tree"), filepath.Join(dir, "copy"))
	assert.ErrorIs(t, err, fs.ErrExist)
}

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
	"syscall"

	cp "github.com/otiai10/copy"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 💾 FileManager is the set of filesystem primitives the execution engine relies on
type FileManager interface {
	// Exists reports whether anything (including a dangling symlink) is at path.
	Exists(ctx context.Context, path string) (bool, error)
	// CreateDir creates path and any missing ancestors.
	CreateDir(ctx context.Context, path string) error
	// Rename changes the basename of an entry inside one directory.
	Rename(ctx context.Context, from, to string) error
	// Move relocates src into dir keeping its basename.
	Move(ctx context.Context, src, dir string) error
	// Copy duplicates src (recursively for directories) at dst.
	Copy(ctx context.Context, src, dst string) error
}

// 🔧 Manager implements FileManager on the real filesystem
type Manager struct{}

var _ FileManager = (*Manager)(nil)

// 🏭 New creates a new filesystem manager
func New() *Manager {
	return &Manager{}
}

func (m *Manager) Exists(ctx context.Context, path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	// a path beneath a file cannot exist either
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOTDIR) {
		return false, nil
	}
	return false, errors.Errorf("checking existence of %s: %w", path, err)
}

func (m *Manager) CreateDir(ctx context.Context, path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return errors.Errorf("creating directory %s: %w", path, err)
	}
	return nil
}

func (m *Manager) Rename(ctx context.Context, from, to string) error {
	if err := m.refuseExisting(ctx, to); err != nil {
		return err
	}
	if err := os.Rename(from, to); err != nil {
		return errors.Errorf("renaming %s to %s: %w", from, to, err)
	}
	return nil
}

func (m *Manager) Move(ctx context.Context, src, dir string) error {
	target := filepath.Join(dir, filepath.Base(src))
	if err := m.refuseExisting(ctx, target); err != nil {
		return err
	}

	err := os.Rename(src, target)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return errors.Errorf("moving %s to %s: %w", src, dir, err)
	}

	// different filesystems: copy then remove the original
	zerolog.Ctx(ctx).Debug().Str("src", src).Str("dir", dir).Msg("rename crosses filesystems, falling back to copy")
	if err := m.Copy(ctx, src, target); err != nil {
		return errors.Errorf("moving %s to %s: %w", src, dir, err)
	}
	if err := os.RemoveAll(src); err != nil {
		return errors.Errorf("removing %s after copy: %w", src, err)
	}
	return nil
}

func (m *Manager) Copy(ctx context.Context, src, dst string) error {
	if err := m.refuseExisting(ctx, dst); err != nil {
		return err
	}
	opts := cp.Options{
		OnSymlink: func(string) cp.SymlinkAction {
			return cp.Shallow
		},
		PreserveTimes: true,
	}
	if err := cp.Copy(src, dst, opts); err != nil {
		return errors.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return nil
}

// 🔒 refuseExisting fails if path is already occupied
func (m *Manager) refuseExisting(ctx context.Context, path string) error {
	exists, err := m.Exists(ctx, path)
	if err != nil {
		return err
	}
	if exists {
		return errors.Errorf("refusing to overwrite %s: %w", path, fs.ErrExist)
	}
	return nil
}

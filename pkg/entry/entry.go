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

package entry

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Separators are the characters treated as path separators in listings.
const Separators = "/" + string(filepath.Separator)

// 🗂️ EntryType is the kind of filesystem entry observed at discovery
type EntryType int

const (
	TypeOther EntryType = iota
	TypeFile
	TypeDir
	TypeSymlink
)

// String returns a string representation of EntryType
func (t EntryType) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeDir:
		return "directory"
	case TypeSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// 📸 Meta is a snapshot of an entry taken without following symlinks
type Meta struct {
	Type EntryType
	Mode fs.FileMode
	Size int64
}

// MetaOf builds a Meta from lstat output.
func MetaOf(fi fs.FileInfo) Meta {
	m := Meta{Mode: fi.Mode(), Size: fi.Size()}
	switch {
	case fi.Mode()&fs.ModeSymlink != 0:
		m.Type = TypeSymlink
	case fi.IsDir():
		m.Type = TypeDir
	case fi.Mode().IsRegular():
		m.Type = TypeFile
	}
	return m
}

// IsDir reports whether the entry is a real directory (not a symlink to one).
func (m Meta) IsDir() bool { return m.Type == TypeDir }

// 📄 Source is one filesystem entry offered for rename
type Source struct {
	Text     string // display form, directories carry a trailing separator
	Path     string // as resolved from the input, relative or absolute
	Abs      string // canonical identity, fully resolved through symlinks
	Location string // lexical absolute path
	Meta     Meta
}

// 🏭 NewSource captures the entry at path. Relative paths are resolved against cwd.
// When absolute is set the source path is made absolute with its parent resolved
// through symlinks, so a symlink is still presented under its own name.
func NewSource(path, cwd string, absolute bool) (Source, error) {
	path = filepath.FromSlash(path)
	if !utf8.ValidString(path) {
		return Source{}, Errorf(KindInput, path, "path is not valid UTF-8: %q", path)
	}

	location := filepath.Clean(path)
	if !filepath.IsAbs(location) {
		location = filepath.Join(cwd, location)
	}
	if filepath.Dir(location) == location {
		return Source{}, Errorf(KindInput, path, "source should not be the root directory: %s", path)
	}

	parent, err := filepath.EvalSymlinks(filepath.Dir(location))
	if err != nil {
		return Source{}, Errorf(KindInput, path, "resolving %s: %w", path, err)
	}
	canonical := filepath.Join(parent, filepath.Base(location))

	// identity follows symlinks all the way; a dangling link is its own identity
	abs, err := filepath.EvalSymlinks(location)
	if err != nil {
		abs = canonical
	}

	if absolute {
		path = canonical
	}

	fi, err := os.Lstat(location)
	if err != nil {
		return Source{}, Errorf(KindInput, path, "failed to access %s: %w", path, err)
	}

	src := Source{
		Text:     strings.TrimRight(path, Separators),
		Path:     path,
		Abs:      abs,
		Location: location,
		Meta:     MetaOf(fi),
	}
	if src.Text == "" {
		return Source{}, Errorf(KindInput, path, "source should not be the root directory: %s", path)
	}
	if src.Meta.IsDir() {
		src.Text += string(filepath.Separator)
	}

	return src, nil
}

// Bare returns Text without trailing separators.
func (s Source) Bare() string {
	return strings.TrimRight(s.Text, Separators)
}

// Name returns the basename of the entry.
func (s Source) Name() string {
	return filepath.Base(s.Location)
}

// 🎯 Destination is the target implied by one edited line
type Destination struct {
	Text       string // trimmed raw line
	Path       string // interpreted path, trailing separators removed
	Normalized string // lexically collapsed form of Path
	Abs        string // Normalized resolved against the working directory
}

// 🏭 NewDestination interprets an edited line relative to cwd.
func NewDestination(line, cwd string) Destination {
	text := strings.TrimSpace(line)
	path := filepath.FromSlash(strings.TrimRight(text, Separators))
	normalized := filepath.Clean(path)
	abs := normalized
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(cwd, normalized)
	}
	return Destination{
		Text:       text,
		Path:       path,
		Normalized: normalized,
		Abs:        abs,
	}
}

// HasTrailingSeparator reports whether the raw line names a directory target.
func (d Destination) HasTrailingSeparator() bool {
	return d.Text != "" && strings.ContainsRune(Separators, rune(d.Text[len(d.Text)-1]))
}

// Parent returns the absolute directory the destination lives in.
func (d Destination) Parent() string {
	return filepath.Dir(d.Abs)
}

// Name returns the destination basename.
func (d Destination) Name() string {
	return filepath.Base(d.Abs)
}

// 🔄 Operation pairs a Source with the Destination it should end up at
type Operation struct {
	Source      Source
	Destination Destination
}

// String returns a string representation of the operation
func (o Operation) String() string {
	return o.Source.Bare() + " → " + o.Destination.Text
}

// Unchanged reports whether line leaves src where it is.
func Unchanged(src Source, dst Destination) bool {
	if dst.Path == src.Bare() {
		return true
	}
	if dst.Normalized == filepath.Clean(src.Path) || dst.Abs == src.Location {
		return true
	}
	// a symlink resolves to its target, which is a different entry
	return src.Meta.Type != TypeSymlink && dst.Abs == src.Abs
}

// Contains reports whether child equals parent or lies beneath it. Both must be clean absolute paths.
func Contains(parent, child string) bool {
	if parent == child {
		return true
	}
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}

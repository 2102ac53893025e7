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
	"fmt"

	"gitlab.com/tozd/go/errors"
)

// ⚠️ ErrorKind classifies failures of an edit round
type ErrorKind int

const (
	KindUnknown      ErrorKind = iota
	KindInput                  // bad pattern, unreadable path, duplicate or root source
	KindEditProtocol           // edited line count does not match the sources
	KindConflict               // candidate operation rejected by validation
	KindFilesystem             // mutation failed during execution
	KindEnvironment            // working directory cannot be resolved
)

// String returns a string representation of ErrorKind
func (k ErrorKind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindEditProtocol:
		return "edit protocol"
	case KindConflict:
		return "conflict"
	case KindFilesystem:
		return "filesystem"
	case KindEnvironment:
		return "environment"
	default:
		return "unknown"
	}
}

// 🚧 Conflict names the validation check a candidate failed
type Conflict int

const (
	ConflictNone Conflict = iota
	ConflictMissingName
	ConflictDuplicateDestination
	ConflictNestedDestination
	ConflictDestinationExists
	ConflictSourceContainsDestination
)

// String returns a string representation of Conflict
func (c Conflict) String() string {
	switch c {
	case ConflictMissingName:
		return "missing file name"
	case ConflictDuplicateDestination:
		return "duplicated destination"
	case ConflictNestedDestination:
		return "destination should not be included in other destination"
	case ConflictDestinationExists:
		return "destination exists"
	case ConflictSourceContainsDestination:
		return "destination should not be included in source"
	default:
		return "none"
	}
}

// 💥 Error is the structured error returned to the CLI layer
type Error struct {
	Kind     ErrorKind
	Conflict Conflict
	Path     string // offending path, if any
	Err      error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Errorf creates an Error of the given kind. The format follows errors.Errorf, so %w wraps.
func Errorf(kind ErrorKind, path string, format string, args ...any) error {
	return &Error{
		Kind: kind,
		Path: path,
		Err:  errors.Errorf(format, args...),
	}
}

// Conflictf creates a KindConflict error for the given check.
func Conflictf(c Conflict, path string, format string, args ...any) error {
	return &Error{
		Kind:     KindConflict,
		Conflict: c,
		Path:     path,
		Err:      errors.Errorf("%s: %s", c, fmt.Sprintf(format, args...)),
	}
}

// KindOf returns the kind of the first Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// ConflictOf returns the conflict check carried by err, or ConflictNone.
func ConflictOf(err error) Conflict {
	var e *Error
	if errors.As(err, &e) {
		return e.Conflict
	}
	return ConflictNone
}

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

// Package testutils builds sandbox trees shared by package tests.
package testutils

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
	"github.com/walteh/mvedit/pkg/entry"
)

// 🧪 Sandbox is a temporary directory holding a known tree
type Sandbox struct {
	t   *testing.T
	Dir string
}

// SandboxDirs is the directory layout created by NewSandbox. Each directory
// also holds a file named after it, e.g. 2/21/211/211.txt.
var SandboxDirs = []string{"1", "1/11", "1/12", "2", "2/21", "2/21/211", "2/22"}

// NewSandbox creates the following tree under a temporary directory:
//
//	1/
//	├─1.txt
//	├─11/
//	│  └─11.txt
//	└─12/
//	   └─12.txt
//	2/
//	├─2.txt
//	├─21/
//	│  ├─21.txt
//	│  └─211/
//	│     └─211.txt
//	└─22/
//	   └─22.txt
func NewSandbox(t *testing.T) *Sandbox {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err, "resolving temp dir")

	for _, d := range SandboxDirs {
		p := filepath.Join(dir, filepath.FromSlash(d))
		require.NoError(t, os.MkdirAll(p, 0755), "creating %s", d)
		f := filepath.Join(p, filepath.Base(p)+".txt")
		require.NoError(t, os.WriteFile(f, []byte(d), 0644), "creating %s", f)
	}

	return &Sandbox{t: t, Dir: dir}
}

// Context returns a context carrying a test logger.
func Context(t *testing.T) context.Context {
	return zerolog.New(zerolog.NewTestWriter(t)).WithContext(context.Background())
}

// Path returns the absolute path of rel inside the sandbox.
func (s *Sandbox) Path(rel string) string {
	return filepath.Join(s.Dir, filepath.FromSlash(rel))
}

// Source captures rel as a Source with the sandbox as working directory.
func (s *Sandbox) Source(rel string) entry.Source {
	s.t.Helper()
	src, err := entry.NewSource(rel, s.Dir, false)
	require.NoError(s.t, err, "creating source %s", rel)
	return src
}

// Destination interprets rel with the sandbox as working directory.
func (s *Sandbox) Destination(rel string) entry.Destination {
	return entry.NewDestination(rel, s.Dir)
}

// Operation pairs Source(src) with Destination(dst).
func (s *Sandbox) Operation(src, dst string) entry.Operation {
	s.t.Helper()
	return entry.Operation{
		Source:      s.Source(src),
		Destination: s.Destination(dst),
	}
}

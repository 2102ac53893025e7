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

// Package edit runs the text round trip between the source listing and the user's editor.
package edit

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/mvedit/pkg/entry"
	"gitlab.com/tozd/go/errors"
)

// ✏️ Editor turns a listing into an edited listing
type Editor interface {
	Edit(ctx context.Context, text string) (string, error)
}

// EditorFunc adapts a function to the Editor interface.
type EditorFunc func(ctx context.Context, text string) (string, error)

func (f EditorFunc) Edit(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// 🖊️ External edits text in an external program through a temporary file
type External struct {
	command []string
}

// 🏭 NewExternal creates an editor running command. An empty command falls back
// to $VISUAL, then $EDITOR, then the platform default.
func NewExternal(command string) *External {
	if strings.TrimSpace(command) == "" {
		command = os.Getenv("VISUAL")
	}
	if strings.TrimSpace(command) == "" {
		command = os.Getenv("EDITOR")
	}
	if strings.TrimSpace(command) == "" {
		if runtime.GOOS == "windows" {
			command = "notepad"
		} else {
			command = "vi"
		}
	}
	return &External{command: strings.Fields(command)}
}

// Command returns the program and arguments the editor runs.
func (e *External) Command() []string {
	return e.command
}

func (e *External) Edit(ctx context.Context, text string) (string, error) {
	f, err := os.CreateTemp("", "mvedit-*.txt")
	if err != nil {
		return "", errors.Errorf("creating temp file: %w", err)
	}
	path := f.Name()
	defer os.Remove(path)

	if _, err := f.WriteString(text); err != nil {
		f.Close()
		return "", errors.Errorf("writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", errors.Errorf("closing temp file: %w", err)
	}

	args := append(append([]string{}, e.command[1:]...), path)
	cmd := exec.CommandContext(ctx, e.command[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	zerolog.Ctx(ctx).Debug().Strs("command", cmd.Args).Msg("opening editor")
	if err := cmd.Run(); err != nil {
		return "", entry.Errorf(entry.KindEnvironment, "", "running editor %s: %w", e.command[0], err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Errorf("reading edited file: %w", err)
	}
	return string(edited), nil
}

// 📝 Session holds the current listing across redo rounds
type Session struct {
	editor Editor
	text   string
}

// 🏭 NewSession creates a session whose first listing is built from sources
func NewSession(editor Editor, sources []entry.Source) *Session {
	return &Session{
		editor: editor,
		text:   Serialize(sources),
	}
}

// Next hands the current listing to the editor and returns the parsed result.
// A redo calls Next again, starting from what the user left last time.
func (s *Session) Next(ctx context.Context) ([]string, error) {
	edited, err := s.editor.Edit(ctx, s.text)
	if err != nil {
		return nil, errors.Errorf("editing listing: %w", err)
	}
	s.text = edited
	return Parse(edited), nil
}

// Serialize renders one line per source, in order.
func Serialize(sources []entry.Source) string {
	lines := make([]string, 0, len(sources))
	for _, src := range sources {
		lines = append(lines, src.Text)
	}
	return strings.Join(lines, "\n")
}

// Parse splits edited text into non-blank lines trimmed of surrounding whitespace.
// Trailing separators are kept here; entry.NewDestination strips them from the path.
func Parse(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

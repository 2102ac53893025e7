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

package log

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	// Disable color for testing
	color.NoColor = true
	defer func() { color.NoColor = false }()

	tests := []struct {
		name     string
		opts     Options
		op       func(t *testing.T, logger *Logger)
		wantLogs []string
	}{
		{
			name: "plan_and_done",
			op: func(t *testing.T, logger *Logger) {
				logger.Plan("Move", "a.txt", "b.txt")
				logger.Done("a.txt", "b.txt")
			},
			wantLogs: []string{
				"Move a.txt → b.txt",
				"a.txt → b.txt",
			},
		},
		{
			name: "steps_hidden_without_verbose",
			op: func(t *testing.T, logger *Logger) {
				logger.Step("Creating directory", "x/y")
				logger.Info("shown")
			},
			wantLogs: []string{
				"Info: shown",
			},
		},
		{
			name: "steps_when_verbose",
			opts: Options{Verbose: true},
			op: func(t *testing.T, logger *Logger) {
				logger.Step("Creating directory", "x/y")
				logger.Step("Moving", "/a/c.txt", "x/y")
				logger.Step("Renaming", "x/y/c.txt", "x/y/d.txt")
			},
			wantLogs: []string{
				"Creating directory x/y",
				"Moving /a/c.txt x/y",
				"Renaming x/y/c.txt → x/y/d.txt",
			},
		},
		{
			name: "summary",
			op: func(t *testing.T, logger *Logger) {
				logger.Summary(0)
				logger.Summary(3)
			},
			wantLogs: []string{
				"Info: Nothing to do",
				"Success: Processed total 3",
			},
		},
		{
			name: "warning_and_error",
			op: func(t *testing.T, logger *Logger) {
				logger.Warning("destination exists: b")
				logger.Error(errors.New("boom"))
			},
			wantLogs: []string{
				"destination exists: b",
				"Error: boom",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logger := New(buf, zerolog.New(zerolog.NewTestWriter(t)), tt.opts)

			tt.op(t, logger)

			output := strings.TrimSpace(buf.String())
			lines := strings.Split(output, "\n")

			require.Equal(t, len(tt.wantLogs), len(lines), "number of log lines should match")
			for i, want := range tt.wantLogs {
				assert.Equal(t, want, strings.TrimSpace(lines[i]), "log line %d should match", i)
			}
		})
	}
}

func TestLoggerQuiet(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := New(buf, zerolog.Nop(), Options{Quiet: true, Verbose: true})

	logger.Plan("Move", "a", "b")
	logger.Step("Renaming", "a", "b")
	logger.Error(errors.New("boom"))
	logger.Summary(1)

	assert.Empty(t, buf.String(), "quiet should silence the console")
	assert.False(t, logger.Verbose(), "quiet wins over verbose")
}

func TestLoggerContext(t *testing.T) {
	logger := New(io.Discard, zerolog.Nop(), Options{})

	ctx := NewContext(context.Background(), logger)
	assert.Same(t, logger, FromContext(ctx), "logger from context should be the same instance")

	assert.Panics(t, func() {
		FromContext(context.Background())
	}, "FromContext should panic when logger is missing")
}

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
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// 🎛️ Options controls how much reaches the console
type Options struct {
	Verbose bool // print each filesystem step
	Quiet   bool // print nothing, even errors
}

// 🎯 Logger writes user-facing lines to the console and mirrors them into zerolog
type Logger struct {
	zlog    zerolog.Logger
	console io.Writer
	opts    Options
	mu      sync.Mutex
}

// 🏭 New creates a new logger
func New(console io.Writer, zlog zerolog.Logger, opts Options) *Logger {
	return &Logger{
		zlog:    zlog,
		console: console,
		opts:    opts,
	}
}

// 🔑 contextKey is the type for context values
type contextKey struct{}

// 🎯 FromContext gets the logger from context
func FromContext(ctx context.Context) *Logger {
	logger, ok := ctx.Value(contextKey{}).(*Logger)
	if !ok {
		panic("logger not found in context")
	}
	return logger
}

// 🎯 NewContext adds the logger to context
func NewContext(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}

// Verbose reports whether step lines are printed.
func (l *Logger) Verbose() bool {
	return l.opts.Verbose && !l.opts.Quiet
}

func (l *Logger) println(line string) {
	if l.opts.Quiet {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.console, line)
}

func underline(attrs ...color.Attribute) *color.Color {
	return color.New(append(attrs, color.Underline)...)
}

// 📋 Plan prints the intended transformation of one operation
func (l *Logger) Plan(action, src, dst string) {
	dim := color.New(color.Faint)
	l.println(fmt.Sprintf("%s %s%s%s",
		dim.Sprint(action),
		underline(color.Faint).Sprint(src),
		dim.Sprint(" → "),
		underline(color.Faint).Sprint(dst)))
	l.zlog.Info().Str("action", action).Str("src", src).Str("dst", dst).Msg("planned operation")
}

// 🔧 Step prints one filesystem step when verbose
func (l *Logger) Step(action string, paths ...string) {
	l.zlog.Debug().Str("action", action).Strs("paths", paths).Msg("filesystem step")
	if !l.Verbose() {
		return
	}
	parts := make([]string, 0, len(paths))
	for _, p := range paths {
		parts = append(parts, underline(color.Faint).Sprint(p))
	}
	sep := " "
	if len(paths) == 2 && (action == "Renaming" || action == "Copying") {
		sep = color.New(color.Faint).Sprint(" → ")
	}
	l.println(color.New(color.Faint).Sprint(action) + " " + strings.Join(parts, sep))
}

// ✅ Done prints a completed operation
func (l *Logger) Done(src, dst string) {
	green := underline(color.FgGreen)
	l.println(fmt.Sprintf("%s → %s", green.Sprint(src), green.Sprint(dst)))
	l.zlog.Info().Str("src", src).Str("dst", dst).Msg("operation complete")
}

// 📊 Summary prints the processed count
func (l *Logger) Summary(processed int) {
	if processed == 0 {
		l.println(fmt.Sprintf("%s %s", color.New(color.FgHiCyan).Sprint("Info:"), color.New(color.Faint).Sprint("Nothing to do")))
	} else {
		l.println(fmt.Sprintf("%s Processed total %s", color.New(color.FgGreen, color.Bold).Sprint("Success:"), color.CyanString("%d", processed)))
	}
	l.zlog.Info().Int("processed", processed).Msg("batch complete")
}

// 📝 Info logs an info message
func (l *Logger) Info(msg string) {
	l.println(fmt.Sprintf("%s %s", color.New(color.FgHiCyan).Sprint("Info:"), msg))
	l.zlog.Info().Msg(msg)
}

// 📝 Warning logs a warning message
func (l *Logger) Warning(msg string) {
	l.println(color.YellowString("%s", msg))
	l.zlog.Warn().Msg(msg)
}

// 📝 Error logs an error
func (l *Logger) Error(err error) {
	l.println(fmt.Sprintf("%s %v", color.New(color.FgHiRed, color.Bold).Sprint("Error:"), err))
	l.zlog.Error().Err(err).Msg("run failed")
}

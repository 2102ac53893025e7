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

package main

import (
	"context"
	"io"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/walteh/mvedit/pkg/config"
	"github.com/walteh/mvedit/pkg/edit"
	"github.com/walteh/mvedit/pkg/fsops"
	"github.com/walteh/mvedit/pkg/log"
	"github.com/walteh/mvedit/pkg/operation"
	"github.com/walteh/mvedit/pkg/prompt"
	"github.com/walteh/mvedit/pkg/source"
	"gitlab.com/tozd/go/errors"
)

// exitError is the status of every failed run
const exitError = 2

// 🔌 streams is what the command talks to
type streams struct {
	in          io.Reader
	out         io.Writer
	errOut      io.Writer
	interactive func() bool
	editor      edit.Editor // replaces the external editor when set
}

// 🎛️ rootOpts holds the parsed flags and the options resolved from them
type rootOpts struct {
	configFile string
	debug      bool
	flags      config.Config
	resolved   *config.Config
}

func (ro *rootOpts) quiet() bool {
	if ro.resolved != nil {
		return ro.resolved.Quiet
	}
	return ro.flags.Quiet
}

// execute runs the command line and returns the process exit status.
func execute(ctx context.Context, s *streams, args []string) int {
	cmd, ro := newRootCmd(s)
	cmd.SetArgs(args)
	cmd.SetIn(s.in)
	cmd.SetOut(s.out)
	cmd.SetErr(s.errOut)

	if err := cmd.ExecuteContext(ctx); err != nil {
		if !ro.quiet() {
			log.New(s.errOut, zerolog.Nop(), log.Options{}).Error(err)
		}
		return exitError
	}
	return 0
}

func newRootCmd(s *streams) (*cobra.Command, *rootOpts) {
	ro := &rootOpts{}

	cmd := &cobra.Command{
		Use:   "mvedit [flags] PATH...",
		Short: "Rename and move files and directories with your text editor",
		Long: `mvedit lists the given paths in your editor, one per line. Edit a line to
move or rename that entry, then save and quit. The edited listing is checked
as a whole before anything on disk changes.

Paths may be glob patterns (** is supported). A directory stands for its
children unless --directory is given.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			zlog := setupLogging(s.errOut, ro.debug)
			cmd.SetContext(zlog.WithContext(cmd.Context()))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return ro.run(cmd, s, args)
		},
	}

	addRootFlags(cmd, ro)
	cmd.AddCommand(newVersionCmd())

	return cmd, ro
}

// addRootFlags binds the command-line flags
func addRootFlags(cmd *cobra.Command, ro *rootOpts) {
	f := cmd.Flags()
	f.BoolVarP(&ro.flags.Verbose, "verbose", "v", false, "verbose output")
	f.BoolVarP(&ro.flags.Sort, "sort", "s", false, "sort in natural order")
	f.BoolVarP(&ro.flags.Absolute, "absolute", "a", false, "treat as absolute paths")
	f.BoolVarP(&ro.flags.Directory, "directory", "d", false, "directories themselves, not their contents")
	f.BoolVarP(&ro.flags.WithHidden, "with-hidden", "w", false, "include hidden files")
	f.StringVarP(&ro.flags.Exclude, "exclude", "e", "", "exclude entries matching a regular expression")
	f.BoolVarP(&ro.flags.Copy, "copy", "c", false, "copy without moving")
	f.BoolVarP(&ro.flags.DryRun, "dry-run", "u", false, "show what would happen, change nothing")
	f.BoolVarP(&ro.flags.Strict, "oops", "o", false, "abort in case of collision (prompt as default)")
	f.BoolVarP(&ro.flags.Quiet, "quiet", "q", false, "no output to stdout/stderr even on error")
	f.StringVar(&ro.flags.Editor, "editor", "", "editor command (defaults to $VISUAL, then $EDITOR)")

	cmd.PersistentFlags().StringVar(&ro.configFile, "config", "", "options file (defaults to $XDG_CONFIG_HOME/mvedit/config.yaml)")
	cmd.PersistentFlags().BoolVar(&ro.debug, "debug", false, "enable debug logging")
}

// setupLogging builds the diagnostic logger. It stays silent unless debug is set,
// the console reporter already covers what users need.
func setupLogging(w io.Writer, debug bool) zerolog.Logger {
	if !debug {
		return zerolog.Nop()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w}).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

func (ro *rootOpts) loadConfig(ctx context.Context) (*config.Config, error) {
	if ro.configFile != "" {
		return config.Load(ctx, ro.configFile)
	}
	return config.LoadDefault(ctx)
}

// merge copies every flag the user set over the file options
func (ro *rootOpts) merge(flags *pflag.FlagSet, cfg *config.Config) {
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "verbose":
			cfg.Verbose = ro.flags.Verbose
		case "sort":
			cfg.Sort = ro.flags.Sort
		case "absolute":
			cfg.Absolute = ro.flags.Absolute
		case "directory":
			cfg.Directory = ro.flags.Directory
		case "with-hidden":
			cfg.WithHidden = ro.flags.WithHidden
		case "exclude":
			cfg.Exclude = ro.flags.Exclude
		case "copy":
			cfg.Copy = ro.flags.Copy
		case "dry-run":
			cfg.DryRun = ro.flags.DryRun
		case "oops":
			cfg.Strict = ro.flags.Strict
		case "quiet":
			cfg.Quiet = ro.flags.Quiet
		case "editor":
			cfg.Editor = ro.flags.Editor
		}
	})
}

func (ro *rootOpts) run(cmd *cobra.Command, s *streams, args []string) error {
	ctx := cmd.Context()
	zlog := zerolog.Ctx(ctx)

	cfg, err := ro.loadConfig(ctx)
	if err != nil {
		return errors.Errorf("loading config: %w", err)
	}
	ro.merge(cmd.Flags(), cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !cfg.Strict && !s.interactive() {
		zlog.Debug().Msg("input is not a terminal, collisions are fatal")
		cfg.Strict = true
	}
	ro.resolved = cfg
	zlog.Debug().Stringer("config", cfg).Strs("patterns", args).Msg("starting")

	logger := log.New(s.out, *zlog, log.Options{Verbose: cfg.Verbose, Quiet: cfg.Quiet})
	ctx = log.NewContext(ctx, logger)

	editor := s.editor
	if editor == nil {
		ext := edit.NewExternal(cfg.Editor)
		zlog.Debug().Strs("editor", ext.Command()).Msg("using external editor")
		editor = ext
	}

	op, err := operation.New(operation.Options{
		Source: source.Options{
			Directory:  cfg.Directory,
			WithHidden: cfg.WithHidden,
			Absolute:   cfg.Absolute,
			Sort:       cfg.Sort,
			Exclude:    cfg.ExcludePattern(),
		},
		Copy:     cfg.Copy,
		DryRun:   cfg.DryRun,
		Strict:   cfg.Strict,
		Editor:   editor,
		Prompter: prompt.NewTerminal(s.in, s.out),
		FS:       fsops.New(),
	})
	if err != nil {
		return errors.Errorf("creating operator: %w", err)
	}

	processed, err := op.Run(ctx, args)
	if errors.Is(err, operation.ErrAborted) {
		logger.Info("Aborted, nothing was changed")
		return nil
	}
	if err != nil {
		return err
	}

	logger.Summary(processed)
	return nil
}

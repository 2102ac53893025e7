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

package operation

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/walteh/mvedit/pkg/edit"
	"github.com/walteh/mvedit/pkg/entry"
	"github.com/walteh/mvedit/pkg/fsops"
	"github.com/walteh/mvedit/pkg/prompt"
	"github.com/walteh/mvedit/pkg/source"
	"github.com/walteh/mvedit/pkg/validate"
	"gitlab.com/tozd/go/errors"
)

// 🔧 Options contains configuration for the operator
type Options struct {
	// Source controls how patterns expand into sources
	Source source.Options
	// Copy duplicates instead of moving
	Copy bool
	// DryRun reports the plan without touching the filesystem
	DryRun bool
	// Strict turns every rejected line into a fatal error
	Strict bool
	// Cwd anchors relative patterns and destinations, defaults to the process working directory
	Cwd string

	Editor   edit.Editor
	Prompter prompt.Prompter
	FS       fsops.FileManager
}

// 🎮 Operator drives one collect, edit, validate, execute cycle
type Operator struct {
	opts Options
}

// 🏭 New creates a new operator with the given options
func New(opts Options) (*Operator, error) {
	if opts.Editor == nil {
		return nil, errors.Errorf("editor is required")
	}
	if opts.FS == nil {
		return nil, errors.Errorf("file manager is required")
	}
	if opts.Prompter == nil && !opts.Strict {
		return nil, errors.Errorf("prompter is required unless strict")
	}
	return &Operator{opts: opts}, nil
}

// Run collects the sources named by patterns, lets the user edit them and
// applies the resulting batch. It returns the number of operations that
// changed the filesystem. ErrAborted means the user quit at the redo prompt.
// ctx must carry a log.Logger (see log.NewContext).
func (o *Operator) Run(ctx context.Context, patterns []string) (int, error) {
	cwd := o.opts.Cwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return 0, entry.Errorf(entry.KindEnvironment, "", "getting working directory: %w", err)
		}
		cwd = wd
	}

	sources, err := source.NewCollector(cwd, o.opts.Source).Collect(ctx, patterns)
	if err != nil {
		return 0, err
	}
	zerolog.Ctx(ctx).Debug().Int("sources", len(sources)).Msg("collected sources")

	builder := NewBuilder(BuilderOptions{
		Editor:    o.opts.Editor,
		Validator: validate.New(o.opts.FS),
		Prompter:  o.opts.Prompter,
		Cwd:       cwd,
		Strict:    o.opts.Strict,
	})

	ops, err := builder.Build(ctx, sources)
	if err != nil {
		return 0, err
	}
	zerolog.Ctx(ctx).Debug().Int("operations", len(ops)).Msg("batch accepted")

	executor := NewExecutor(o.opts.FS, ExecutorOptions{
		Copy:   o.opts.Copy,
		DryRun: o.opts.DryRun,
	})
	return NewRunner(executor).Run(ctx, ops)
}

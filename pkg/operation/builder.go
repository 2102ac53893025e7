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

	"github.com/walteh/mvedit/pkg/edit"
	"github.com/walteh/mvedit/pkg/entry"
	"github.com/walteh/mvedit/pkg/log"
	"github.com/walteh/mvedit/pkg/prompt"
	"github.com/walteh/mvedit/pkg/validate"
	"gitlab.com/tozd/go/errors"
)

// ErrAborted is returned when the user gives up at the redo prompt. Nothing has been changed.
var ErrAborted = errors.New("aborted by user")

// 🔧 BuilderOptions contains the collaborators of a Builder
type BuilderOptions struct {
	Editor    edit.Editor
	Validator *validate.Validator
	Prompter  prompt.Prompter
	Cwd       string // destinations without a directory land here
	Strict    bool   // fail on the first rejected line instead of prompting
}

// 🏗️ Builder turns an edited listing into the ordered batch of accepted operations
type Builder struct {
	opts BuilderOptions
}

// 🏭 NewBuilder creates a new builder
func NewBuilder(opts BuilderOptions) *Builder {
	return &Builder{opts: opts}
}

// Build runs edit rounds until one yields a valid batch. Rejections are reported
// through the log.Logger carried by ctx. In strict mode the
// first edit protocol or conflict error is returned as is; otherwise the user
// may re-edit the listing from where they left it, or abort with ErrAborted.
func (b *Builder) Build(ctx context.Context, sources []entry.Source) ([]entry.Operation, error) {
	logger := log.FromContext(ctx)
	session := edit.NewSession(b.opts.Editor, sources)

	for {
		ops, err := b.round(ctx, session, sources)
		if err == nil {
			return ops, nil
		}
		if b.opts.Strict || !recoverable(err) {
			return nil, err
		}

		logger.Warning(err.Error())
		redo, perr := b.opts.Prompter.ConfirmRedo(ctx)
		if perr != nil {
			return nil, errors.Errorf("prompting for redo: %w", perr)
		}
		if !redo {
			return nil, ErrAborted
		}
	}
}

// round edits once and folds the lines, in order, into a batch.
func (b *Builder) round(ctx context.Context, session *edit.Session, sources []entry.Source) ([]entry.Operation, error) {
	lines, err := session.Next(ctx)
	if err != nil {
		return nil, err
	}
	if len(lines) != len(sources) {
		return nil, entry.Errorf(entry.KindEditProtocol, "",
			"number of lines %d does not match the original one %d", len(lines), len(sources))
	}

	var accepted []entry.Operation
	for i, src := range sources {
		dst := entry.NewDestination(lines[i], b.opts.Cwd)
		if entry.Unchanged(src, dst) {
			continue
		}

		op := entry.Operation{Source: src, Destination: dst}
		if err := b.opts.Validator.Accept(ctx, accepted, op); err != nil {
			return nil, err
		}
		accepted = append(accepted, op)
	}
	return accepted, nil
}

func recoverable(err error) bool {
	switch entry.KindOf(err) {
	case entry.KindEditProtocol, entry.KindConflict:
		return true
	default:
		return false
	}
}

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
	"path/filepath"

	"github.com/walteh/mvedit/pkg/entry"
	"github.com/walteh/mvedit/pkg/fsops"
	"github.com/walteh/mvedit/pkg/log"
)

// 🔧 ExecutorOptions controls how accepted operations touch the filesystem
type ExecutorOptions struct {
	Copy   bool // duplicate sources instead of moving them
	DryRun bool // report the plan, change nothing
}

// ⚙️ Executor applies accepted operations one at a time
type Executor struct {
	fs   fsops.FileManager
	opts ExecutorOptions
}

// 🏭 NewExecutor creates a new executor
func NewExecutor(fs fsops.FileManager, opts ExecutorOptions) *Executor {
	return &Executor{
		fs:   fs,
		opts: opts,
	}
}

func (e *Executor) action() string {
	if e.opts.Copy {
		return "Copy"
	}
	return "Move"
}

// Execute applies op and reports whether anything on disk changed.
// Failures are FilesystemErrors and leave earlier operations in place.
// Progress goes to the log.Logger carried by ctx.
func (e *Executor) Execute(ctx context.Context, op entry.Operation) (bool, error) {
	logger := log.FromContext(ctx)
	src, dst := op.Source, op.Destination

	if e.opts.DryRun || logger.Verbose() {
		logger.Plan(e.action(), src.Bare(), dst.Text)
	}
	if e.opts.DryRun {
		return false, nil
	}

	if err := e.apply(ctx, logger, op); err != nil {
		return false, entry.Errorf(entry.KindFilesystem, src.Location, "%s %s: %w", e.action(), op, err)
	}

	logger.Done(src.Bare(), dst.Text)
	return true, nil
}

// apply relocates the source into the destination directory, then gives it its new name.
func (e *Executor) apply(ctx context.Context, logger *log.Logger, op entry.Operation) error {
	src, dst := op.Source, op.Destination
	parent := dst.Parent()

	exists, err := e.fs.Exists(ctx, parent)
	if err != nil {
		return err
	}
	if !exists {
		logger.Step("Creating directory", parent)
		if err := e.fs.CreateDir(ctx, parent); err != nil {
			return err
		}
	}

	current := src.Location
	relocated := false
	if !sameDir(src, parent) {
		if e.opts.Copy {
			current = filepath.Join(parent, src.Name())
			logger.Step("Copying", src.Location, current)
			if err := e.fs.Copy(ctx, src.Location, current); err != nil {
				return err
			}
		} else {
			logger.Step("Moving", src.Location, parent)
			if err := e.fs.Move(ctx, src.Location, parent); err != nil {
				return err
			}
			current = filepath.Join(parent, src.Name())
		}
		relocated = true
	}

	if src.Name() == dst.Name() {
		return nil
	}

	target := filepath.Join(parent, dst.Name())
	if e.opts.Copy && !relocated {
		logger.Step("Copying", current, target)
		return e.fs.Copy(ctx, current, target)
	}
	logger.Step("Renaming", current, target)
	return e.fs.Rename(ctx, current, target)
}

// sameDir reports whether src already lives in dir, looking through symlinked parents.
func sameDir(src entry.Source, dir string) bool {
	from := filepath.Dir(src.Location)
	if from == dir {
		return true
	}
	resolvedFrom, err := filepath.EvalSymlinks(from)
	if err != nil {
		return false
	}
	resolvedDir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return false
	}
	return resolvedFrom == resolvedDir
}

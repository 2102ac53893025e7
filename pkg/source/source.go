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

// Package source expands input patterns into the ordered list of entries offered for editing.
package source

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/maruel/natural"
	"github.com/rs/zerolog"
	"github.com/walteh/mvedit/pkg/entry"
)

// 🎛️ Options controls which entries are collected
type Options struct {
	Directory  bool           // take directories themselves instead of their children
	WithHidden bool           // keep dot files and entries with the hidden attribute
	Absolute   bool           // present canonical absolute paths
	Sort       bool           // natural-sort the whole list by display text
	Exclude    *regexp.Regexp // drop entries whose display text matches
}

// 📥 Collector turns patterns into Sources
type Collector struct {
	cwd  string
	opts Options
}

// 🏭 NewCollector creates a collector. Relative patterns are expanded by the glob
// library against the process working directory, which callers pass as cwd.
func NewCollector(cwd string, opts Options) *Collector {
	return &Collector{cwd: cwd, opts: opts}
}

// Collect expands every pattern in order. Directories are expanded one level
// unless Directory is set. The same entry reached twice is an error.
func (c *Collector) Collect(ctx context.Context, patterns []string) ([]entry.Source, error) {
	logger := zerolog.Ctx(ctx)
	var sources []entry.Source

	for _, pattern := range patterns {
		paths, err := expand(pattern)
		if err != nil {
			return nil, err
		}
		logger.Debug().Str("pattern", pattern).Strs("paths", paths).Msg("expanded pattern")

		for _, path := range paths {
			fi, err := os.Lstat(path)
			if err != nil {
				return nil, entry.Errorf(entry.KindInput, path, "failed to access %s: %w", path, err)
			}

			if !fi.IsDir() || c.opts.Directory {
				if _, err := c.put(ctx, &sources, path); err != nil {
					return nil, err
				}
				continue
			}

			if err := c.putChildren(ctx, &sources, path); err != nil {
				return nil, err
			}
		}
	}

	if c.opts.Sort {
		sort.SliceStable(sources, func(i, j int) bool {
			return natural.Less(sources[i].Text, sources[j].Text)
		})
	}

	return sources, nil
}

// putChildren adds the children of dir in natural order.
func (c *Collector) putChildren(ctx context.Context, sources *[]entry.Source, dir string) error {
	children, err := os.ReadDir(dir)
	if err != nil {
		return entry.Errorf(entry.KindInput, dir, "failed to list files of directory %s: %w", dir, err)
	}

	names := make([]string, 0, len(children))
	for _, child := range children {
		names = append(names, child.Name())
	}
	sort.SliceStable(names, func(i, j int) bool {
		return natural.Less(names[i], names[j])
	})

	admitted := 0
	for _, name := range names {
		ok, err := c.put(ctx, sources, filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if ok {
			admitted++
		}
	}
	if admitted == 0 {
		return entry.Errorf(entry.KindInput, dir, "directory is empty: %s (use --directory for the directory itself)", dir)
	}
	return nil
}

// put admits path unless a filter drops it. It reports whether the entry was added.
func (c *Collector) put(ctx context.Context, sources *[]entry.Source, path string) (bool, error) {
	src, err := entry.NewSource(path, c.cwd, c.opts.Absolute)
	if err != nil {
		return false, err
	}

	if !c.opts.WithHidden {
		hidden, err := isHidden(src)
		if err != nil {
			return false, entry.Errorf(entry.KindInput, path, "reading attributes of %s: %w", path, err)
		}
		if hidden {
			zerolog.Ctx(ctx).Debug().Str("path", path).Msg("skipping hidden entry")
			return false, nil
		}
	}

	if c.opts.Exclude != nil && c.opts.Exclude.MatchString(src.Bare()) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Str("exclude", c.opts.Exclude.String()).Msg("skipping excluded entry")
		return false, nil
	}

	for _, existing := range *sources {
		if existing.Abs == src.Abs {
			return false, entry.Errorf(entry.KindInput, src.Abs, "duplicated source: %s", src.Abs)
		}
	}

	*sources = append(*sources, src)
	return true, nil
}

// expand globs one pattern. Matches are ordered by absolute path and collapsed lexically.
func expand(pattern string) ([]string, error) {
	matches, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, entry.Errorf(entry.KindInput, pattern, "invalid pattern %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, entry.Errorf(entry.KindInput, pattern, "failed to access %s", pattern)
	}

	keys := make(map[string]string, len(matches))
	for _, m := range matches {
		abs, err := filepath.Abs(m)
		if err != nil {
			abs = m
		}
		keys[m] = abs
	}
	sort.SliceStable(matches, func(i, j int) bool {
		return keys[matches[i]] < keys[matches[j]]
	})

	paths := make([]string, 0, len(matches))
	for _, m := range matches {
		p := filepath.Clean(m)
		if trimmed := strings.TrimRight(p, entry.Separators); trimmed != "" {
			p = trimmed
		}
		paths = append(paths, p)
	}
	return paths, nil
}

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

package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/rs/zerolog"
	"github.com/walteh/mvedit/pkg/entry"
	"gitlab.com/tozd/go/errors"
)

// RCName is the extensionless options file, parsed as YAML or HCL.
const RCName = ".mveditrc"

// 📝 Parser decodes one options file format
type Parser interface {
	// 📝 Parse parses the config from bytes
	Parse(ctx context.Context, data []byte) (*Config, error)

	// 🔍 CanParse checks if this parser can handle the given file
	CanParse(filename string) bool
}

var (
	// 🗺️ parsers is a list of available parsers
	parsers []Parser
)

// Register adds a parser, consulted in registration order.
func Register(p Parser) {
	parsers = append(parsers, p)
}

// GetParser returns the first parser accepting filename, or nil.
func GetParser(filename string) Parser {
	for _, p := range parsers {
		if p.CanParse(filename) {
			return p
		}
	}
	return nil
}

// ⚙️ Config holds the options of one run. Every field may also be set by a flag.
type Config struct {
	Directory  bool   `json:"directory,omitempty" yaml:"directory,omitempty" toml:"directory" hcl:"directory,optional"`
	WithHidden bool   `json:"with_hidden,omitempty" yaml:"with_hidden,omitempty" toml:"with_hidden" hcl:"with_hidden,optional"`
	Absolute   bool   `json:"absolute,omitempty" yaml:"absolute,omitempty" toml:"absolute" hcl:"absolute,optional"`
	Exclude    string `json:"exclude,omitempty" yaml:"exclude,omitempty" toml:"exclude" hcl:"exclude,optional"`
	Sort       bool   `json:"sort,omitempty" yaml:"sort,omitempty" toml:"sort" hcl:"sort,optional"`
	Copy       bool   `json:"copy,omitempty" yaml:"copy,omitempty" toml:"copy" hcl:"copy,optional"`
	DryRun     bool   `json:"dry_run,omitempty" yaml:"dry_run,omitempty" toml:"dry_run" hcl:"dry_run,optional"`
	Strict     bool   `json:"strict,omitempty" yaml:"strict,omitempty" toml:"strict" hcl:"strict,optional"`
	Verbose    bool   `json:"verbose,omitempty" yaml:"verbose,omitempty" toml:"verbose" hcl:"verbose,optional"`
	Quiet      bool   `json:"quiet,omitempty" yaml:"quiet,omitempty" toml:"quiet" hcl:"quiet,optional"`
	Editor     string `json:"editor,omitempty" yaml:"editor,omitempty" toml:"editor" hcl:"editor,optional"`

	exclude *regexp.Regexp
}

// Default returns the options used when no file is present.
func Default() *Config {
	return &Config{}
}

// 📂 DefaultPath returns $XDG_CONFIG_HOME/mvedit/config.yaml, falling back to ~/.config.
func DefaultPath() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", entry.Errorf(entry.KindEnvironment, "", "locating home directory: %w", err)
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "mvedit", "config.yaml"), nil
}

// Load reads and validates the options file at path. The format follows the
// extension; RCName is tried as YAML, then as HCL.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := zerolog.Ctx(ctx)
	logger.Debug().Str("path", path).Msg("loading configuration")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config file: %w", err)
	}

	var cfg *Config
	if filepath.Base(path) == RCName {
		cfg, err = (&YAMLParser{}).Parse(ctx, data)
		if err != nil {
			logger.Debug().Err(err).Msg("options file is not YAML, trying HCL")
			cfg, err = (&HCLParser{}).Parse(ctx, data)
		}
		if err != nil {
			return nil, errors.Errorf("failed to parse %s as YAML or HCL: %w", RCName, err)
		}
	} else {
		p := GetParser(path)
		if p == nil {
			return nil, errors.Errorf("no parser found for file: %s", path)
		}
		cfg, err = p.Parse(ctx, data)
		if err != nil {
			return nil, errors.Errorf("parsing config: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// LoadDefault loads DefaultPath if it exists, otherwise returns Default.
func LoadDefault(ctx context.Context) (*Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		zerolog.Ctx(ctx).Debug().Str("path", path).Msg("no options file")
		return Default(), nil
	}
	return Load(ctx, path)
}

// Validate compiles Exclude and lets Quiet win over Verbose.
func (cfg *Config) Validate() error {
	cfg.exclude = nil
	if cfg.Exclude != "" {
		re, err := regexp.Compile(cfg.Exclude)
		if err != nil {
			return entry.Errorf(entry.KindInput, "", "invalid exclude pattern %q: %w", cfg.Exclude, err)
		}
		cfg.exclude = re
	}

	if cfg.Quiet {
		cfg.Verbose = false
	}
	cfg.Editor = strings.TrimSpace(cfg.Editor)
	return nil
}

// ExcludePattern returns the compiled Exclude, nil when unset. Valid after Validate.
func (cfg *Config) ExcludePattern() *regexp.Regexp {
	return cfg.exclude
}

func (cfg *Config) String() string {
	var flags []string
	for _, f := range []struct {
		name string
		on   bool
	}{
		{"directory", cfg.Directory},
		{"with_hidden", cfg.WithHidden},
		{"absolute", cfg.Absolute},
		{"sort", cfg.Sort},
		{"copy", cfg.Copy},
		{"dry_run", cfg.DryRun},
		{"strict", cfg.Strict},
		{"verbose", cfg.Verbose},
		{"quiet", cfg.Quiet},
	} {
		if f.on {
			flags = append(flags, f.name)
		}
	}
	return fmt.Sprintf("options[%s] exclude=%q editor=%q", strings.Join(flags, ","), cfg.Exclude, cfg.Editor)
}

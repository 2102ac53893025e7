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

// Package prompt asks the user whether to re-edit the listing or give up.
package prompt

import (
	"bufio"
	"context"
	"io"
	"regexp"
	"strings"

	"github.com/pterm/pterm"
	"gitlab.com/tozd/go/errors"
)

var (
	abortAnswer = regexp.MustCompile(`^a(bort)?$`)
	editAnswer  = regexp.MustCompile(`^(e(dit)?)?$`)
)

// ❓ Prompter decides between redo (true) and abort (false)
type Prompter interface {
	ConfirmRedo(ctx context.Context) (bool, error)
}

// 🖥️ Terminal prompts on a line-oriented reader and writer
type Terminal struct {
	in  *bufio.Reader
	out io.Writer
}

// 🏭 NewTerminal creates a prompter reading answers from in and writing the question to out
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// ConfirmRedo asks until it gets a recognised answer. An empty answer means edit.
// End of input counts as abort.
func (p *Terminal) ConfirmRedo(ctx context.Context) (bool, error) {
	key := pterm.NewStyle(pterm.Bold, pterm.Underscore)
	rest := pterm.NewStyle(pterm.Bold)
	question := key.Sprint("E") + rest.Sprint("dit") + " or " + key.Sprint("A") + rest.Sprint("bort") + "? > "

	for {
		if err := ctx.Err(); err != nil {
			return false, errors.Errorf("waiting for answer: %w", err)
		}

		pterm.Fprint(p.out, question)
		line, err := p.in.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return false, errors.Errorf("reading answer: %w", err)
		}

		ans := strings.ToLower(strings.TrimSpace(line))
		switch {
		case errors.Is(err, io.EOF) && ans == "":
			return false, nil
		case abortAnswer.MatchString(ans):
			return false, nil
		case editAnswer.MatchString(ans):
			return true, nil
		case errors.Is(err, io.EOF):
			return false, nil
		}
	}
}

// 📜 Script answers from a fixed list, then aborts
type Script struct {
	Answers []bool
	Asked   int
}

func (s *Script) ConfirmRedo(ctx context.Context) (bool, error) {
	s.Asked++
	if len(s.Answers) == 0 {
		return false, nil
	}
	ans := s.Answers[0]
	s.Answers = s.Answers[1:]
	return ans, nil
}

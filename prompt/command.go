// Copyright 2014-2015 The DevMine authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommandGenerator hands prompts to an external program. The system prompt,
// a blank line and the user prompt are written to its standard input and
// whatever it prints on standard output is the generated text.
type CommandGenerator struct {
	Name string
	Args []string
}

// NewCommandGenerator creates a generator out of a command line, the program
// name followed by its arguments.
func NewCommandGenerator(argv []string) (*CommandGenerator, error) {
	if len(argv) == 0 || strings.TrimSpace(argv[0]) == "" {
		return nil, errors.New("empty generation command")
	}
	return &CommandGenerator{Name: argv[0], Args: argv[1:]}, nil
}

// Generate runs the command once.
func (g *CommandGenerator) Generate(systemPrompt, userPrompt string) (string, error) {
	cmd := exec.Command(g.Name, g.Args...)
	cmd.Stdin = strings.NewReader(systemPrompt + "\n\n" + userPrompt)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%s: %w: %s", g.Name, err, msg)
		}
		return "", fmt.Errorf("%s: %w", g.Name, err)
	}
	return string(out), nil
}

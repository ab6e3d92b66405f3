// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// LineReader reads one line of user input without its line terminator.
// It returns io.EOF when input ends and ErrInterrupted when the user
// abandons the line.
type LineReader interface {
	ReadLine() (string, error)
}

// StreamReader reads lines from a plain stream such as a pipe or a file.
type StreamReader struct {
	r *bufio.Reader
}

// NewStreamReader creates a reader over r.
func NewStreamReader(r io.Reader) *StreamReader {
	return &StreamReader{r: bufio.NewReader(r)}
}

// ReadLine implements LineReader. A final line without a newline is
// returned before io.EOF.
func (s *StreamReader) ReadLine() (string, error) {
	line, err := s.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// TerminalReader reads lines from an interactive terminal through readline.
type TerminalReader struct {
	rl *readline.Instance
}

// TerminalConfig configures a TerminalReader.
type TerminalConfig struct {
	Prompt      string
	HistoryFile string
	Stdin       io.ReadCloser
	Stdout      io.Writer
	Stderr      io.Writer
}

// NewTerminalReader creates a readline-backed reader.
func NewTerminalReader(cfg TerminalConfig) (*TerminalReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          cfg.Prompt,
		HistoryFile:     cfg.HistoryFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "",
		Stdin:           cfg.Stdin,
		Stdout:          cfg.Stdout,
		Stderr:          cfg.Stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline instance: %w", err)
	}
	return &TerminalReader{rl: rl}, nil
}

// ReadLine implements LineReader.
func (t *TerminalReader) ReadLine() (string, error) {
	line, err := t.rl.Readline()
	switch {
	case errors.Is(err, readline.ErrInterrupt):
		return "", ErrInterrupted
	case err != nil:
		return "", err
	}
	return line, nil
}

// Close restores the terminal. A pending ReadLine returns io.EOF.
func (t *TerminalReader) Close() error {
	return t.rl.Close()
}

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd int) bool {
	return readline.IsTerminal(fd)
}

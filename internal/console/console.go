// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package console runs the interactive menu over a property store.
package console

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/oops"

	"github.com/holomush/dynconf/internal/property"
	"github.com/holomush/dynconf/pkg/errutil"
)

// Prompts written before each read.
const (
	PromptChoice = "Please enter your choice. Enter -1 to exit."
	promptValue  = "Please enter a value for %s."
)

// ExitSelection ends the session.
const ExitSelection = -1

// Loop presents the menu, reads selections and values, and applies them to
// the store until the user exits or input ends.
type Loop struct {
	store    *property.Store
	in       LineReader
	out      io.Writer
	renderer Renderer
	logger   *slog.Logger
	color    bool
}

// Option configures a Loop.
type Option func(*Loop)

// WithRenderer sets the menu renderer. The default is PlainRenderer.
func WithRenderer(r Renderer) Option {
	return func(l *Loop) { l.renderer = r }
}

// WithLogger sets the logger for debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// WithColor highlights error messages.
func WithColor(color bool) Option {
	return func(l *Loop) { l.color = color }
}

// NewLoop creates a loop over store reading from in and writing to out.
func NewLoop(store *property.Store, in LineReader, out io.Writer, opts ...Option) *Loop {
	l := &Loop{
		store:    store,
		in:       in,
		out:      out,
		renderer: PlainRenderer{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run drives the session. It returns nil when the user selects -1, an
// INPUT_CLOSED error when input ends first, and the context error when ctx
// is done. Selection and assignment errors are reported to the user and the
// menu is shown again.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := l.renderer.Menu(l.out, l.store.Visible()); err != nil {
			return oops.Wrapf(err, "render menu")
		}

		line, err := l.prompt(ctx, PromptChoice)
		if errors.Is(err, ErrInterrupted) {
			continue
		}
		if err != nil {
			return err
		}

		index, err := l.selection(line)
		if err != nil {
			l.report(err)
			continue
		}
		if index == ExitSelection {
			l.logger.Debug("session finished")
			if err := l.renderer.Listing(l.out, l.store.Visible()); err != nil {
				return oops.Wrapf(err, "render listing")
			}
			return nil
		}

		def, _ := l.store.At(index)
		if !l.store.KeyValid(def.Name) {
			l.report(property.ErrPropertyHidden(def.Name))
			continue
		}
		l.logger.Debug("property selected", "index", index, "property", def.Name)

		raw, err := l.prompt(ctx, fmt.Sprintf(promptValue, def.Name))
		if errors.Is(err, ErrInterrupted) {
			continue
		}
		if err != nil {
			return err
		}

		if err := l.store.Assign(def.Name, raw); err != nil {
			l.report(err)
			continue
		}
		v, _ := l.store.Value(def.Name)
		l.logger.Debug("property assigned",
			"property", def.Name,
			"value", v.String(),
			"dependents", l.store.Schema().Rules.Dependents(def.Name))
	}
}

// prompt writes the prompt text and reads one line.
func (l *Loop) prompt(ctx context.Context, msg string) (string, error) {
	if _, err := fmt.Fprintln(l.out, msg); err != nil {
		return "", oops.Wrapf(err, "write prompt")
	}

	line, err := l.read(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if errors.Is(err, ErrInterrupted) {
			return "", err
		}
		return "", ErrInputClosed(err)
	}
	return line, nil
}

type readResult struct {
	line string
	err  error
}

// read waits for one line or for ctx to end, whichever comes first. A
// reader blocked on a pipe cannot be interrupted, so the read runs in its
// own goroutine; after cancellation that goroutine finishes when the reader
// next returns.
func (l *Loop) read(ctx context.Context) (string, error) {
	done := make(chan readResult, 1)
	go func() {
		line, err := l.in.ReadLine()
		done <- readResult{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.line, r.err
	}
}

// selection parses a menu index. -1 is returned as ExitSelection; every
// other negative index is out of range.
func (l *Loop) selection(line string) (int, error) {
	input := strings.TrimSpace(line)
	n, err := strconv.Atoi(input)
	if err != nil {
		return 0, ErrNonNumericSelection(input)
	}
	if n == ExitSelection {
		return n, nil
	}
	if count := len(l.store.Definitions()); n < 0 || n >= count {
		return 0, ErrOutOfRangeSelection(n, count)
	}
	return n, nil
}

func (l *Loop) report(err error) {
	errutil.LogRejected(l.logger, "input rejected", err)

	msg := UserMessage(err)
	if l.color {
		msg = text.FgHiRed.Sprint(msg)
	}
	_, _ = fmt.Fprintln(l.out, msg)
}

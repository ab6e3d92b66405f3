// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/holomush/dynconf/internal/console"
	"github.com/holomush/dynconf/internal/xdg"
	"github.com/holomush/dynconf/pkg/errutil"
)

// editConfig holds configuration for the edit command.
type editConfig struct {
	sets []string
}

// NewEditCmd creates the edit subcommand.
func NewEditCmd() *cobra.Command {
	cfg := &editConfig{}

	cmd := &cobra.Command{
		Use:   "edit <document>",
		Short: "Edit property values from an interactive menu",
		Long: `Load a definition document and present its properties as a numbered
menu. Enter a property's index, then its value. Enter -1 to print the final
values and exit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, args[0], cfg)
		},
	}

	cmd.Flags().StringArrayVar(&cfg.sets, "set", nil, "assign name=value before the menu opens (repeatable)")

	return cmd
}

func runEdit(cmd *cobra.Command, path string, cfg *editConfig) error {
	sess, err := openSession(cmd, path, cfg.sets)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
	defer stop()

	in, closeInput, err := newLineReader(cmd)
	if err != nil {
		return err
	}
	defer closeInput()
	stopClose := context.AfterFunc(ctx, closeInput)
	defer stopClose()

	loop := console.NewLoop(sess.store, in, cmd.OutOrStdout(),
		console.WithRenderer(sess.renderer()),
		console.WithLogger(sess.logger),
		console.WithColor(sess.cfg.Color),
	)
	if err := loop.Run(ctx); err != nil {
		errutil.LogError(sess.logger, "edit session ended", err)
		return fmt.Errorf("edit session ended: %w", err)
	}
	return nil
}

// newLineReader uses readline when stdin is a terminal and a plain line
// reader otherwise.
func newLineReader(cmd *cobra.Command) (console.LineReader, func(), error) {
	stdin := cmd.InOrStdin()
	f, ok := stdin.(*os.File)
	if !ok || !console.IsTerminal(int(f.Fd())) { //nolint:gosec // fd fits in int
		return console.NewStreamReader(stdin), func() {}, nil
	}

	history := ""
	if p, err := xdg.HistoryFile(); err == nil {
		if err := xdg.EnsureDir(filepath.Dir(p)); err == nil {
			history = p
		}
	}

	tr, err := console.NewTerminalReader(console.TerminalConfig{
		Prompt:      "> ",
		HistoryFile: history,
		Stdin:       f,
		Stdout:      cmd.OutOrStdout(),
		Stderr:      cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, nil, err
	}
	return tr, sync.OnceFunc(func() { _ = tr.Close() }), nil
}

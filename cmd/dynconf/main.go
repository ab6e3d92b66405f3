// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package main is the entry point for the dynconf editor.
package main

import (
	"fmt"
	"os"

	"github.com/holomush/dynconf/internal/console"
	"github.com/holomush/dynconf/internal/schema"
	"github.com/holomush/dynconf/pkg/errutil"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	cmd := NewRootCmd()
	cmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date)

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorLine(err))
		os.Exit(1)
	}
}

// errorLine renders a command failure for stderr. Document and input
// failures get the same wording the editor uses in the menu.
func errorLine(err error) string {
	if errutil.HasCode(err, schema.CodeSchemaParse) || errutil.HasCode(err, console.CodeInputClosed) {
		return console.UserMessage(err)
	}
	return "Error: " + err.Error()
}

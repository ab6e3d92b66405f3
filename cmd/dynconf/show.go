// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/spf13/cobra"
)

// NewShowCmd creates the show subcommand.
func NewShowCmd() *cobra.Command {
	var sets []string

	cmd := &cobra.Command{
		Use:   "show <document>",
		Short: "Print the visible properties without prompting",
		Long: `Load a definition document, apply any --set assignments in order, and
print the listing the editor would show on exit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := openSession(cmd, args[0], sets)
			if err != nil {
				return err
			}
			return sess.renderer().Listing(cmd.OutOrStdout(), sess.store.Visible())
		},
	}

	cmd.Flags().StringArrayVar(&sets, "set", nil, "assign name=value before printing (repeatable)")

	return cmd
}

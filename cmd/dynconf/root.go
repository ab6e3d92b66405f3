// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/holomush/dynconf/internal/config"
)

// NewRootCmd creates the root command for the dynconf CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dynconf",
		Short: "dynconf - an interactive conditional configuration editor",
		Long: `dynconf loads a definition document of properties, their types and the
conditions between them, and lets you set values from a numbered menu.
Properties and choices appear only while their conditions hold.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flag for config file path
	cmd.PersistentFlags().String("config", "", "settings file path (default: XDG_CONFIG_HOME/dynconf/config.yaml)")
	config.BindFlags(cmd.PersistentFlags())

	// Add subcommands
	cmd.AddCommand(NewEditCmd())
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewValidateCmd())
	cmd.AddCommand(NewSchemaCmd())

	return cmd
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/holomush/dynconf/internal/schema"
)

// NewValidateCmd creates the validate subcommand.
func NewValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <document>...",
		Short: "Check definition documents without editing",
		Long: `Parse each definition document, check its conditions, and print a
summary of its properties. Exits non-zero if any document is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if _, err := setupLogging(cmd, cfg); err != nil {
				return fmt.Errorf("failed to set up logging: %w", err)
			}

			var failed []string
			for _, path := range args {
				s, err := schema.LoadFile(path)
				if err != nil {
					cmd.PrintErrf("%s: %v\n", path, err)
					failed = append(failed, path)
					continue
				}
				if err := writeSummary(cmd.OutOrStdout(), path, s); err != nil {
					return err
				}
			}

			if len(failed) > 0 {
				return fmt.Errorf("invalid definition documents: %s", strings.Join(failed, ", "))
			}
			return nil
		},
	}
}

func writeSummary(w io.Writer, path string, s *schema.Schema) error {
	header := path
	if s.Title != "" {
		header += " (" + s.Title
		if s.Version != nil {
			header += " " + s.Version.String()
		}
		header += ")"
	}
	if _, err := fmt.Fprintf(w, "%s: ok, %d properties\n", header, s.Len()); err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "PROPERTY", "TYPE", "KEY CONDITIONS", "GATED CHOICES"})
	for i, d := range s.Definitions {
		t.AppendRow(table.Row{i, d.Name, typeLabel(d), len(s.Rules.Key[d.Name]), gatedChoices(s, d.Name)})
	}
	t.Render()
	return nil
}

func typeLabel(d schema.Definition) string {
	if d.Kind == schema.KindChoice {
		return "[" + strings.Join(d.Choices, ", ") + "]"
	}
	return d.TypeName
}

func gatedChoices(s *schema.Schema, name string) string {
	byValue := s.Rules.Value[name]
	if len(byValue) == 0 {
		return "-"
	}
	gated := make([]string, 0, len(byValue))
	for candidate := range byValue {
		gated = append(gated, candidate)
	}
	sort.Strings(gated)
	return strings.Join(gated, ", ")
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/holomush/dynconf/internal/config"
	"github.com/holomush/dynconf/internal/console"
	"github.com/holomush/dynconf/internal/logging"
	"github.com/holomush/dynconf/internal/property"
	"github.com/holomush/dynconf/internal/schema"
	"github.com/holomush/dynconf/internal/xdg"
)

const serviceName = "dynconf"

// loadSettings reads the settings file named by --config, or the default
// XDG settings file when it exists, with the setting flags on top.
func loadSettings(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return config.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}

	required := path != ""
	if path == "" {
		if p, err := xdg.ConfigFile(); err == nil {
			path = p
		}
	}

	cfg, err := config.Load(config.LoadOptions{
		Path:     path,
		Required: required,
		Flags:    cmd.Flags(),
	})
	if err != nil {
		return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// setupLogging installs the default logger on the command's stderr.
func setupLogging(cmd *cobra.Command, cfg config.Config) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	logger := logging.Setup(logging.Options{
		Service: serviceName,
		Version: version,
		Format:  cfg.LogFormat,
		Level:   level,
	}, cmd.ErrOrStderr())
	slog.SetDefault(logger)
	return logger, nil
}

// session is the state shared by the commands that open a document.
type session struct {
	cfg    config.Config
	logger *slog.Logger
	schema *schema.Schema
	store  *property.Store
}

// openSession loads settings, logging and the definition document at path,
// then applies the --set assignments in order.
func openSession(cmd *cobra.Command, path string, sets []string) (*session, error) {
	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, err
	}

	logger, err := setupLogging(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}

	s, err := schema.LoadFile(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("definition document loaded",
		"path", path,
		"properties", s.Len(),
		"key_conditions", len(s.Rules.Key),
		"value_conditions", len(s.Rules.Value),
	)

	store := property.NewStore(s)
	if err := applyAssignments(store, sets); err != nil {
		return nil, err
	}

	return &session{cfg: cfg, logger: logger, schema: s, store: store}, nil
}

// applyAssignments applies "name=value" pairs. Names may be unique prefixes.
// Each property must be visible when its turn comes, so order matters.
func applyAssignments(store *property.Store, sets []string) error {
	for _, set := range sets {
		name, raw, ok := strings.Cut(set, "=")
		if !ok {
			return fmt.Errorf("--set %q: expected name=value", set)
		}

		def, err := store.Resolve(strings.TrimSpace(name))
		if err != nil {
			return fmt.Errorf("--set %q: %w", set, err)
		}
		if !store.KeyValid(def.Name) {
			return fmt.Errorf("--set %q: %w", set, property.ErrPropertyHidden(def.Name))
		}
		if err := store.Assign(def.Name, raw); err != nil {
			return fmt.Errorf("--set %q: %s: %w", set, console.UserMessage(err), err)
		}
	}
	return nil
}

func (s *session) renderer() console.Renderer {
	return console.NewRenderer(s.cfg.Style, s.schema.Title, s.cfg.Color)
}

package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"presskit/internal/config"
	"presskit/internal/draftstore"
	"presskit/internal/logging"
	"presskit/internal/textutil"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *slog.Logger
	loggerErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds a file-backed logger so command output stays clean.
func (c *commandContext) ensureLogger() (*slog.Logger, error) {
	c.loggerOnce.Do(func() {
		cfg, err := c.ensureConfig()
		if err != nil {
			c.loggerErr = err
			return
		}
		c.logger, c.loggerErr = logging.NewFromConfig(cfg)
	})
	return c.logger, c.loggerErr
}

// withStore opens the draft store, runs fn, and closes the store.
func (c *commandContext) withStore(fn func(*draftstore.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := draftstore.Open(cfg)
	if err != nil {
		return fmt.Errorf("open draft store: %w", err)
	}
	defer store.Close()
	return fn(store)
}

// loadRecord fetches a draft record or fails with a user-facing error.
func loadRecord(cmd *cobra.Command, store *draftstore.Store, id string) (*draftstore.Record, error) {
	rec, err := store.GetByID(cmd.Context(), id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, fmt.Errorf("draft %s not found", id)
	}
	return rec, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	return textutil.Ternary(value, "yes", "no")
}

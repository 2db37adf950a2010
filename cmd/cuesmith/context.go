package main

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"cuesmith/internal/config"
	"cuesmith/internal/generation"
	"cuesmith/internal/logging"
	"cuesmith/internal/runlog"
)

type commandContext struct {
	configFlag   *string
	logLevelFlag *string

	configOnce sync.Once
	config     *config.Config
	configPath string
	configSeen bool
	configErr  error
}

func newCommandContext(configFlag, logLevelFlag *string) *commandContext {
	return &commandContext{
		configFlag:   configFlag,
		logLevelFlag: logLevelFlag,
	}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if level := c.logLevelOverride(); level != "" {
			cfg.Logging.Level = level
			if err := cfg.Validate(); err != nil {
				c.configErr = fmt.Errorf("--log-level: %w", err)
				return
			}
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configSeen = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) logLevelOverride() string {
	if c.logLevelFlag == nil {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(*c.logLevelFlag))
}

// commandLogger writes to the command's stderr so stdout stays clean for
// subtitle output.
func (c *commandContext) commandLogger(cmd *cobra.Command, cfg *config.Config) (*slog.Logger, error) {
	logger, err := logging.NewWriter(cmd.ErrOrStderr(), cfg.Logging.Format, cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	return logger, nil
}

// openService builds a generation service. When withStore is true the run
// log is opened and must be closed with the returned function.
func (c *commandContext) openService(cmd *cobra.Command, withStore bool) (*generation.Service, *runlog.Store, func(), error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load configuration: %w", err)
	}
	logger, err := c.commandLogger(cmd, cfg)
	if err != nil {
		return nil, nil, nil, err
	}
	if !withStore {
		return generation.NewService(cfg, nil, logger), nil, func() {}, nil
	}
	store, err := runlog.Open(cfg)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open run log: %w", err)
	}
	return generation.NewService(cfg, store, logger), store, func() { _ = store.Close() }, nil
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
	if value {
		return "yes"
	}
	return "no"
}

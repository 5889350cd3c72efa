package config

import (
	"fmt"
	"strings"

	"github.com/zubzet/tooling/internal/messages"
	"github.com/zubzet/tooling/internal/upgrade"
)

// Validate checks value ranges. path is used for error context.
func (c *Config) Validate(path string) error {
	if _, ok := upgrade.ParseColorMode(c.Output.Color); !ok {
		return fmt.Errorf(messages.ConfigColorInvalidFmt, path, c.Output.Color)
	}
	if c.Upgrade.DiffLines != nil && *c.Upgrade.DiffLines < 0 {
		return fmt.Errorf(messages.ConfigDiffLinesInvalidFmt, path, *c.Upgrade.DiffLines)
	}
	for _, step := range c.Upgrade.Skip {
		if strings.TrimSpace(step) == "" {
			return fmt.Errorf(messages.ConfigSkipEmptyFmt, path)
		}
	}
	return nil
}

// ColorMode returns the configured color mode, auto when unset.
func (c *Config) ColorMode() upgrade.ColorMode {
	mode, _ := upgrade.ParseColorMode(c.Output.Color)
	return mode
}

// Package config loads the optional upgrade run configuration.
package config

import (
	"path/filepath"
	"strings"

	"github.com/zubzet/tooling/internal/messages"
)

// Config is the decoded zubzet-upgrade.toml.
type Config struct {
	Upgrade UpgradeConfig `toml:"upgrade"`
	Output  OutputConfig  `toml:"output"`
}

// UpgradeConfig holds defaults for the upgrade command.
type UpgradeConfig struct {
	// Skip lists composed step names skipped on every run. Command-line skips are added to it.
	Skip []string `toml:"skip"`
	// DiffLines caps rendered diffs; nil keeps the built-in default.
	DiffLines *int `toml:"diff_lines"`
}

// OutputConfig controls terminal output.
type OutputConfig struct {
	Color string `toml:"color"`
}

// DefaultPath returns the configuration file looked up in a project root.
func DefaultPath(root string) string {
	return filepath.Join(root, messages.ConfigFileName)
}

// MergeSkip unions the configured skips with extra, keeping first occurrence order.
func (c *Config) MergeSkip(extra []string) []string {
	seen := make(map[string]struct{}, len(c.Upgrade.Skip)+len(extra))
	merged := make([]string, 0, len(c.Upgrade.Skip)+len(extra))
	for _, list := range [][]string{c.Upgrade.Skip, extra} {
		for _, step := range list {
			step = strings.TrimSpace(step)
			if step == "" {
				continue
			}
			if _, ok := seen[step]; ok {
				continue
			}
			seen[step] = struct{}{}
			merged = append(merged, step)
		}
	}
	return merged
}

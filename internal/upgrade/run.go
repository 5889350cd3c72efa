package upgrade

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// DryMode is the run-wide dry-run switch. It only ever moves from off to on:
// an unresolved abort turns it on so no later step mutates anything.
type DryMode struct {
	enabled bool
}

// NewDryMode returns a DryMode with the given initial state.
func NewDryMode(enabled bool) *DryMode {
	return &DryMode{enabled: enabled}
}

// Enabled reports whether dry-run is active.
func (d *DryMode) Enabled() bool {
	return d.enabled
}

// Enable switches dry-run on. There is no way back.
func (d *DryMode) Enable() {
	d.enabled = true
}

// RunConfig is created once per invocation. Steps read the skip set but never write it.
type RunConfig struct {
	// Root is the absolute project directory all relative modifier paths resolve against.
	Root string
	Dry  *DryMode
	// DiffMaxLines caps the diff shown per automated change; zero uses the default.
	DiffMaxLines int
	skip         map[string]struct{}
}

// NewRunConfig builds a RunConfig. Skip names are trimmed; blanks are ignored.
func NewRunConfig(root string, dry bool, skip []string) *RunConfig {
	set := make(map[string]struct{}, len(skip))
	for _, name := range skip {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			continue
		}
		set[trimmed] = struct{}{}
	}
	return &RunConfig{Root: root, Dry: NewDryMode(dry), skip: set}
}

// Skips reports whether the composed step name is in the skip set.
func (c *RunConfig) Skips(stepName string) bool {
	_, ok := c.skip[stepName]
	return ok
}

// SkipList returns the skip set sorted.
func (c *RunConfig) SkipList() []string {
	out := make([]string, 0, len(c.skip))
	for name := range c.skip {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Path resolves a project-relative path. Absolute paths are returned cleaned.
func (c *RunConfig) Path(rel string) string {
	if filepath.IsAbs(rel) {
		return filepath.Clean(rel)
	}
	return filepath.Join(c.Root, filepath.FromSlash(rel))
}

// Run carries the collaborators shared by every step of one upgrade run.
type Run struct {
	Config   *RunConfig
	Printer  *Printer
	Prompter Prompter
	Commands CommandRunner
	Sys      System
	// Files holds bundled reference files laid out as <tag>/<name>.
	Files   fs.FS
	Journal *Journal
}

// Version is the context a Script receives for one target version.
type Version struct {
	Tag       string
	Stability Stability
	Run       *Run
}

// Package versions holds the upgrade scripts for every released framework version
// and the reference files they install.
package versions

import (
	"embed"
	"io/fs"

	"github.com/zubzet/tooling/internal/upgrade"
)

// Known lists every version a project can be upgraded from or to.
var Known = []string{"0.10.0", "0.11.0", "1.0.0"}

//go:embed all:files
var bundled embed.FS

// Files exposes the bundled reference files as <tag>/<name>.
var Files fs.FS = mustSub(bundled, "files")

// Registry binds each known version to its script. 0.10.0 is a starting point only.
func Registry() (*upgrade.Registry, error) {
	return upgrade.NewRegistry(Known,
		upgrade.Entry{Tag: "0.11.0", Stability: upgrade.StabilityStable, Script: upgrade.ScriptFunc(v0110)},
		upgrade.Entry{Tag: "1.0.0", Stability: upgrade.StabilityStable, Script: upgrade.ScriptFunc(v100)},
	)
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

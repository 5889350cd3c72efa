package modifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/zubzet/tooling/internal/messages"
	"github.com/zubzet/tooling/internal/upgrade"
)

// Composer reads the locked framework version and proposes a composer require
// when it is older than the target.
type Composer struct {
	*JSON
}

// NewComposer begins the named step and loads composer.lock when present.
func NewComposer(v *upgrade.Version, name string) (*Composer, error) {
	m := &Composer{JSON: NewJSON(v, name)}
	m.Optional()
	if err := m.From(messages.ComposerLockFile); err != nil {
		return nil, err
	}
	return m, nil
}

// InstalledVersion returns the locked framework version without a leading "v" or
// a "-suffix". It is "0.0.0" when the lock file or the package is missing.
func (m *Composer) InstalledVersion() string {
	if m.doc == nil {
		return "0.0.0"
	}
	query := fmt.Sprintf(`packages.#(name==%q).version`, messages.ComposerPackageName)
	raw := m.doc.Get(query)
	if !raw.Exists() {
		return "0.0.0"
	}
	return normalizeInstalled(raw.String())
}

func normalizeInstalled(raw string) string {
	version := strings.TrimPrefix(strings.TrimSpace(raw), "v")
	if i := strings.Index(version, "-"); i >= 0 {
		version = version[:i]
	}
	return version
}

// Constraint builds "^MAJOR.MINOR" with a "-stability" suffix for pre-releases.
func Constraint(desired string, stability upgrade.Stability) (string, error) {
	parts := strings.Split(desired, ".")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf(messages.ComposerInvalidVersionFmt, desired)
	}
	constraint := "^" + parts[0] + "." + parts[1]
	if stability != "" && stability != upgrade.StabilityStable {
		constraint += "-" + string(stability)
	}
	return constraint, nil
}

// UpgradeToCurrentVersion proposes updating the framework to desired, defaulting to
// the step's version tag. An installed version that does not parse is treated as older.
func (m *Composer) UpgradeToCurrentVersion(ctx context.Context, desired string) error {
	if desired == "" {
		desired = m.Version().Tag
	}
	installed := m.InstalledVersion()
	if satisfies(installed, desired) {
		p := m.Printer()
		p.Println(p.Comment(fmt.Sprintf(messages.ComposerAlreadyAtFmt, installed, desired)))
		return nil
	}

	constraint, err := Constraint(desired, m.Version().Stability)
	if err != nil {
		return err
	}
	_, err = m.RunCommand(ctx, fmt.Sprintf(messages.ComposerRequireFmt, messages.ComposerPackageName, constraint))
	return err
}

func satisfies(installed string, desired string) bool {
	have, err := semver.NewVersion(installed)
	if err != nil {
		return false
	}
	want, err := semver.NewVersion(desired)
	if err != nil {
		return false
	}
	return !have.LessThan(want)
}

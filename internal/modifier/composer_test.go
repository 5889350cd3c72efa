package modifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zubzet/tooling/internal/testutil"
	"github.com/zubzet/tooling/internal/upgrade"
)

func composerLock(version string) string {
	return `{"packages":[{"name":"other/lib","version":"9.9.9"},{"name":"zubzet/framework","version":"` + version + `"}]}`
}

func TestComposer_InstalledVersion(t *testing.T) {
	cases := map[string]string{
		"v0.10.3":      "0.10.3",
		"1.0.0-beta.2": "1.0.0",
		"0.11.0":       "0.11.0",
	}
	for raw, want := range cases {
		h := newHarness(t, map[string]string{"composer.lock": composerLock(raw)}, nil)
		m, err := NewComposer(h.version("1.0.0"), "composer")
		require.NoError(t, err)
		assert.Equal(t, want, m.InstalledVersion(), raw)
	}

	h := newHarness(t, nil, nil)
	m, err := NewComposer(h.version("1.0.0"), "composer")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0", m.InstalledVersion())
	assert.Contains(t, h.out.String(), "JSON file composer.lock not found. Skipping...")
}

func TestConstraint(t *testing.T) {
	got, err := Constraint("1.0.0", upgrade.StabilityStable)
	require.NoError(t, err)
	assert.Equal(t, "^1.0", got)

	got, err = Constraint("1.0.0", upgrade.StabilityReleaseCandidate)
	require.NoError(t, err)
	assert.Equal(t, "^1.0-RC", got)

	_, err = Constraint("1", upgrade.StabilityStable)
	assert.EqualError(t, err, "invalid version: 1")
}

func TestComposer_AlreadySatisfied(t *testing.T) {
	h := newHarness(t, map[string]string{"composer.lock": composerLock("v1.2.0")}, nil, confirming())
	m, err := NewComposer(h.version("1.0.0"), "composer")
	require.NoError(t, err)

	require.NoError(t, m.UpgradeToCurrentVersion(context.Background(), ""))
	assert.Empty(t, h.runner.commands)
	assert.Contains(t, h.out.String(), "Already at version 1.2.0, satisfying version 1.0.0. Skipping...")
}

func TestComposer_ProposesRequire(t *testing.T) {
	h := newHarness(t, map[string]string{"composer.lock": composerLock("v0.11.0")}, nil, confirming())
	v := h.version("1.0.0")
	v.Stability = upgrade.StabilityReleaseCandidate
	m, err := NewComposer(v, "composer")
	require.NoError(t, err)

	require.NoError(t, m.UpgradeToCurrentVersion(context.Background(), ""))
	assert.Equal(t, []string{`composer require "zubzet/framework:^1.0-RC" --with-all-dependencies --ignore-platform-reqs`}, h.runner.commands)
}

func TestComposer_ShellRunnerExecutesComposer(t *testing.T) {
	bin := t.TempDir()
	testutil.WriteStubExpectArg(t, bin, "composer", "--with-all-dependencies")
	testutil.PrependPath(t, bin)

	h := newHarness(t, map[string]string{"composer.lock": composerLock("dev-main")}, nil, confirming())
	h.run.Commands = upgrade.ShellRunner{}
	m, err := NewComposer(h.version("1.0.0"), "composer")
	require.NoError(t, err)

	require.NoError(t, m.UpgradeToCurrentVersion(context.Background(), ""))
	assert.True(t, h.records()[0].Changed)
	assert.NotContains(t, h.out.String(), "Command exited with code")
}

package versions

import (
	"bytes"
	"context"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zubzet/tooling/internal/testutil"
	"github.com/zubzet/tooling/internal/upgrade"
)

const settingsIni = `host = localhost
mail_smtp = smtp.example.com
lite_mode = 0
anonymous_language = en
dedicated_mail = 1
registerRoleId = 2
uploadFolder = uploads/
`

const indexPHP = `<?php
    chdir(__DIR__);
    require_once "vendor/autoload.php";

    $z_framework->handleRequest();
?>
`

const dockerCompose = `services:
  app:
    environment:
      CONFIG_MAIL_USER: "user"
      CONFIG_MAIL_PASSWORD: "secret"
      CONFIG_MAIL_HOST: "smtp"
`

// legacyProject is a 0.10.0 project whose framework dependency is already on Composer.
func legacyProject() map[string]string {
	return map[string]string{
		"z_config/z_settings.ini":                settingsIni,
		"index.php":                              indexPHP,
		"composer.json":                          `{"require": {"zubzet/framework": "^1.0"}}`,
		"composer.lock":                          `{"packages": [{"name": "zubzet/framework", "version": "v1.0.0"}]}`,
		"package.json":                           `{"scripts": {"seed": "php z_database/seed.php", "build": "vite build"}}`,
		".htaccess":                              "RewriteEngine On\n",
		"z_controllers/IndexController.php":      "<?php // index",
		"z_controllers/admin/UserController.php": "<?php // user",
		"z_views/index.php":                      "<h1>Hi</h1>",
		"assets/app.css":                         "body {}",
		"uploads/avatar.png":                     "png",
		"docs/README.md":                         "# docs",
	}
}

type scenario struct {
	root     string
	out      *bytes.Buffer
	commands []string
	prompts  int
	o        *upgrade.Orchestrator
}

type recordingRunner struct {
	s *scenario
}

func (r recordingRunner) Run(_ context.Context, _ string, command string) (upgrade.CommandResult, error) {
	r.s.commands = append(r.s.commands, command)
	return upgrade.CommandResult{}, nil
}

func newScenario(t *testing.T, files map[string]string, confirm bool) *scenario {
	t.Helper()
	s := &scenario{root: t.TempDir(), out: &bytes.Buffer{}}
	testutil.WriteTree(t, s.root, files)

	reg, err := Registry()
	require.NoError(t, err)
	s.o, err = upgrade.NewOrchestrator(upgrade.Options{
		Registry: reg,
		Printer:  upgrade.NewPrinter(s.out, upgrade.ColorNever),
		Prompter: upgrade.PromptFuncs{ConfirmFunc: func(string) (bool, error) {
			s.prompts++
			return confirm, nil
		}},
		Commands: recordingRunner{s: s},
		Files:    Files,
	})
	require.NoError(t, err)
	return s
}

func (s *scenario) run(t *testing.T, dry bool, skip ...string) (upgrade.Report, error) {
	t.Helper()
	return s.o.Run(context.Background(), upgrade.Request{Location: s.root, From: "0.10.0", To: "1.0.0", Dry: dry, Skip: skip})
}

func bundledFile(t *testing.T, name string) string {
	t.Helper()
	data, err := fs.ReadFile(Files, name)
	require.NoError(t, err)
	return string(data)
}

func TestRegistry_PlansEveryKnownVersion(t *testing.T) {
	reg, err := Registry()
	require.NoError(t, err)
	assert.Equal(t, Known, reg.Tags())

	plan, err := reg.Plan("0.10.0", "1.0.0")
	require.NoError(t, err)
	require.Len(t, plan, 2)
	assert.Equal(t, "0.11.0", plan[0].To)
	assert.Equal(t, "1.0.0", plan[1].To)
}

func TestFiles_BundlesReferenceFiles(t *testing.T) {
	for _, name := range []string{"1.0.0/ExampleRouter.php", "1.0.0/.htaccess", "1.0.0/index.php"} {
		_, err := fs.Stat(Files, name)
		assert.NoError(t, err, name)
	}
}

func TestUpgrade_LegacyProjectToCurrent(t *testing.T) {
	s := newScenario(t, legacyProject(), false)

	report, err := s.run(t, false)
	require.NoError(t, err, s.out.String())
	assert.True(t, report.Completed)
	assert.Equal(t, []string{"0.11.0", "1.0.0"}, report.Planned)
	assert.Empty(t, s.commands)
	assert.Zero(t, s.prompts)

	tree := testutil.Snapshot(t, s.root)
	assert.Equal(t, "<?php // index", tree["app/Controllers/IndexController.php"])
	assert.Equal(t, "<?php // user", tree["app/Controllers/admin/UserController.php"])
	assert.Equal(t, "<h1>Hi</h1>", tree["app/Views/index.php"])
	for _, dir := range []string{"app/Models/", "app/Database/", "app/Routes/", "webroot/"} {
		assert.Equal(t, "/", tree[dir], dir)
	}
	for _, gone := range []string{"z_controllers/", "z_views/", "assets/", "uploads/", ".htaccess"} {
		assert.NotContains(t, tree, gone)
	}

	assert.Equal(t, bundledFile(t, "1.0.0/ExampleRouter.php"), tree["app/Routes/ExampleRouter.php"])
	assert.Equal(t, bundledFile(t, "1.0.0/.htaccess"), tree["webroot/.htaccess"])
	assert.Equal(t, bundledFile(t, "1.0.0/index.php"), tree["webroot/index.php"])
	assert.Equal(t, "body {}", tree["webroot/assets/app.css"])
	assert.Equal(t, "png", tree["webroot/uploads/avatar.png"])
	assert.Equal(t, indexPHP, tree["index.php"])

	settings := tree["z_config/z_settings.ini"]
	assert.Contains(t, settings, "mail_smtp = smtp.example.com\nmail_security = tls\n")
	assert.Contains(t, settings, "registerRoleId = 2\nregisterRoleIdSecondary =\n")
	assert.Contains(t, settings, "uploadFolder = webroot/uploads/")
	assert.Contains(t, settings, "allow_env_config = true")
	assert.Contains(t, settings, "execution_type = test")
	for _, removed := range []string{"lite_mode", "anonymous_language", "dedicated_mail"} {
		assert.NotContains(t, settings, removed)
	}

	assert.Contains(t, tree["package.json"], `"seed": "php app/Database/import.php"`)
	assert.Contains(t, tree["package.json"], `"build": "vite build"`)

	assert.Contains(t, s.out.String(), "Planning upgrade from 0.10.0 to 1.0.0 (in 2 steps)")
	assert.Contains(t, s.out.String(), "  - docs")
}

func TestUpgrade_RerunIsIdempotent(t *testing.T) {
	s := newScenario(t, legacyProject(), false)
	_, err := s.run(t, false)
	require.NoError(t, err)
	after := testutil.Snapshot(t, s.root)

	report, err := s.run(t, false)
	require.NoError(t, err, s.out.String())
	assert.Equal(t, after, testutil.Snapshot(t, s.root))
	for _, record := range report.Steps {
		assert.False(t, record.Changed, record.Name)
	}
}

func TestUpgrade_DryRunLeavesTreeUntouched(t *testing.T) {
	files := legacyProject()
	files["packaging/docker-compose-base.yml"] = dockerCompose
	s := newScenario(t, files, true)
	before := testutil.Snapshot(t, s.root)

	report, err := s.run(t, true)
	require.NoError(t, err, s.out.String())
	assert.True(t, report.Completed)
	assert.Equal(t, before, testutil.Snapshot(t, s.root))
	assert.Empty(t, s.commands)
	assert.Zero(t, s.prompts)
	assert.Contains(t, s.out.String(), "Dry-run mode: no changes will be made.")
}

func TestUpgrade_MailDockerAbortThenSkip(t *testing.T) {
	files := legacyProject()
	files["packaging/docker-compose-base.yml"] = dockerCompose
	s := newScenario(t, files, false)

	report, err := s.run(t, false)
	var abort *upgrade.AbortError
	require.ErrorAs(t, err, &abort)
	assert.Equal(t, "0.11.0-mail-docker", abort.Step)
	assert.Equal(t, "--skip 0.11.0-mail-docker", abort.SkipFlag())
	var transition *upgrade.TransitionError
	require.ErrorAs(t, err, &transition)
	assert.Equal(t, "0.11.0-mail-docker", transition.Step)
	assert.False(t, report.Completed)
	assert.Equal(t, 1, s.prompts)
	assert.Equal(t, dockerCompose, testutil.ReadFile(t, s.root, "packaging/docker-compose-base.yml"))
	assert.NoDirExists(t, filepath.Join(s.root, "app"))

	report, err = s.run(t, false, "0.11.0-mail-docker")
	require.NoError(t, err, s.out.String())
	assert.True(t, report.Completed)
	assert.Equal(t, dockerCompose, testutil.ReadFile(t, s.root, "packaging/docker-compose-base.yml"))
	assert.DirExists(t, filepath.Join(s.root, "app", "Controllers"))
}

func TestUpgrade_MailDockerConfirmed(t *testing.T) {
	files := legacyProject()
	files["packaging/docker-compose-base.yml"] = dockerCompose
	s := newScenario(t, files, true)

	_, err := s.run(t, false)
	require.NoError(t, err, s.out.String())
	assert.Equal(t, 1, s.prompts)
	assert.Contains(t, testutil.ReadFile(t, s.root, "packaging/docker-compose-base.yml"),
		"      CONFIG_MAIL_PASSWORD: \"secret\"\n      CONFIG_MAIL_SECURITY: \"false\"\n")
}

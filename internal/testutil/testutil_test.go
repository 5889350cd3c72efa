package testutil

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteStubCreatesExecutableThatSucceeds(t *testing.T) {
	dir := t.TempDir()
	stubPath := filepath.Join(dir, "ok-stub")
	WriteStub(t, dir, "ok-stub")

	info, err := os.Stat(stubPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())

	out, err := exec.Command(stubPath, "a", "b").Output()
	require.NoError(t, err)
	assert.Equal(t, "ok-stub a b\n", string(out))
}

func TestWriteStubWithExitCreatesExecutableWithRequestedExitCode(t *testing.T) {
	dir := t.TempDir()
	stubPath := filepath.Join(dir, "exit-stub")
	WriteStubWithExit(t, dir, "exit-stub", 7)

	err := exec.Command(stubPath).Run()
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 7, exitErr.ExitCode())
}

func TestWriteStubExpectArgHonorsRequiredArg(t *testing.T) {
	dir := t.TempDir()
	stubPath := filepath.Join(dir, "arg-stub")
	WriteStubExpectArg(t, dir, "arg-stub", "--ready")

	require.NoError(t, exec.Command(stubPath, "--ready").Run())
	assert.Error(t, exec.Command(stubPath, "--missing").Run())
}

func TestWriteTreeAndSnapshot(t *testing.T) {
	root := t.TempDir()
	WriteTree(t, root, map[string]string{
		"z_config/z_settings.ini": "a = 1\n",
		"app/Controllers/":        "",
	})

	assert.Equal(t, "a = 1\n", ReadFile(t, root, "z_config/z_settings.ini"))
	assert.Equal(t, map[string]string{
		"z_config/":               "/",
		"z_config/z_settings.ini": "a = 1\n",
		"app/":                    "/",
		"app/Controllers/":        "/",
	}, Snapshot(t, root))
}

func TestRecordingSystemRecordsMutationsAndInjectsFaults(t *testing.T) {
	root := t.TempDir()
	sys := NewRecordingSystem()
	target := filepath.Join(root, "file.txt")
	boom := errors.New("boom")
	sys.WriteErrs[filepath.Join(root, "blocked.txt")] = boom

	require.NoError(t, sys.WriteFileAtomic(target, []byte("x"), 0o644))
	require.NoError(t, sys.MkdirAll(filepath.Join(root, "dir"), 0o755))
	require.ErrorIs(t, sys.WriteFileAtomic(filepath.Join(root, "blocked.txt"), []byte("x"), 0o644), boom)

	assert.Equal(t, []string{
		"write " + target,
		"mkdir " + filepath.Join(root, "dir"),
		"write " + filepath.Join(root, "blocked.txt"),
	}, sys.Mutations())
}

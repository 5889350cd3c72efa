package testutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/zubzet/tooling/internal/fsutil"
)

// RecordingSystem operates on the real filesystem, records every mutating call,
// and fails any call whose path has an injected error.
type RecordingSystem struct {
	mu         sync.Mutex
	mutations  []string
	ReadErrs   map[string]error
	StatErrs   map[string]error
	WriteErrs  map[string]error
	RemoveErrs map[string]error
	MkdirErrs  map[string]error
}

// NewRecordingSystem returns a RecordingSystem with no injected faults.
func NewRecordingSystem() *RecordingSystem {
	return &RecordingSystem{
		ReadErrs:   map[string]error{},
		StatErrs:   map[string]error{},
		WriteErrs:  map[string]error{},
		RemoveErrs: map[string]error{},
		MkdirErrs:  map[string]error{},
	}
}

// Mutations returns the mutating calls in order, formatted as "<op> <path>".
func (r *RecordingSystem) Mutations() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.mutations...)
}

func (r *RecordingSystem) record(op string, path string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.mutations = append(r.mutations, op+" "+path)
}

func fault(errs map[string]error, path string) error {
	return errs[filepath.Clean(path)]
}

// Stat returns a FileInfo describing the named file.
func (r *RecordingSystem) Stat(name string) (os.FileInfo, error) {
	if err := fault(r.StatErrs, name); err != nil {
		return nil, err
	}
	return os.Stat(name)
}

// Lstat returns a FileInfo describing the named file without following symlinks.
func (r *RecordingSystem) Lstat(name string) (os.FileInfo, error) {
	if err := fault(r.StatErrs, name); err != nil {
		return nil, err
	}
	return os.Lstat(name)
}

// ReadFile reads the named file.
func (r *RecordingSystem) ReadFile(name string) ([]byte, error) {
	if err := fault(r.ReadErrs, name); err != nil {
		return nil, err
	}
	return os.ReadFile(name)
}

// ReadDir reads the named directory.
func (r *RecordingSystem) ReadDir(name string) ([]os.DirEntry, error) {
	if err := fault(r.ReadErrs, name); err != nil {
		return nil, err
	}
	return os.ReadDir(name)
}

// Readlink returns the destination of a symbolic link.
func (r *RecordingSystem) Readlink(name string) (string, error) {
	return os.Readlink(name)
}

// EvalSymlinks resolves symbolic links in path.
func (r *RecordingSystem) EvalSymlinks(path string) (string, error) {
	return filepath.EvalSymlinks(path)
}

// WalkDir walks the tree rooted at root.
func (r *RecordingSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	if err := fault(r.ReadErrs, root); err != nil {
		return err
	}
	return filepath.WalkDir(root, fn)
}

// MkdirAll records and creates path.
func (r *RecordingSystem) MkdirAll(path string, perm os.FileMode) error {
	r.record("mkdir", path)
	if err := fault(r.MkdirErrs, path); err != nil {
		return err
	}
	return os.MkdirAll(path, perm)
}

// Remove records and removes name.
func (r *RecordingSystem) Remove(name string) error {
	r.record("remove", name)
	if err := fault(r.RemoveErrs, name); err != nil {
		return err
	}
	return os.Remove(name)
}

// RemoveAll records and removes path recursively.
func (r *RecordingSystem) RemoveAll(path string) error {
	r.record("remove-all", path)
	if err := fault(r.RemoveErrs, path); err != nil {
		return err
	}
	return os.RemoveAll(path)
}

// Symlink records and creates a symbolic link.
func (r *RecordingSystem) Symlink(oldname string, newname string) error {
	r.record("symlink", newname)
	return os.Symlink(oldname, newname)
}

// Chmod records and changes the mode of name.
func (r *RecordingSystem) Chmod(name string, mode os.FileMode) error {
	r.record("chmod", name)
	return os.Chmod(name, mode)
}

// WriteFileAtomic records and writes filename.
func (r *RecordingSystem) WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	r.record("write", filename)
	if err := fault(r.WriteErrs, filename); err != nil {
		return err
	}
	return fsutil.WriteFileAtomic(filename, data, perm)
}

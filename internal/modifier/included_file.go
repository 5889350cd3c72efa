package modifier

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"

	"github.com/zubzet/tooling/internal/messages"
	"github.com/zubzet/tooling/internal/upgrade"
)

// IncludedFile installs a reference file shipped with the tool for the step's version.
type IncludedFile struct {
	*upgrade.Step

	optional bool
	source   string
}

// NewIncludedFile begins the named step.
func NewIncludedFile(v *upgrade.Version, name string) *IncludedFile {
	return &IncludedFile{Step: upgrade.NewStep(v, name)}
}

// Optional tolerates a missing target directory.
func (m *IncludedFile) Optional() {
	m.optional = true
}

// From selects the bundled file <tag>/<file>.
func (m *IncludedFile) From(file string) error {
	source := path.Join(m.Version().Tag, filepath.ToSlash(file))
	files := m.Version().Run.Files
	if files == nil {
		return &upgrade.PreconditionError{Kind: upgrade.MissingBundledFile, Path: source}
	}
	info, err := fs.Stat(files, source)
	if err != nil || !info.Mode().IsRegular() {
		return &upgrade.PreconditionError{Kind: upgrade.MissingBundledFile, Path: source, Err: err}
	}
	m.source = source
	return nil
}

// To copies the selected file into dir with mode 0644. An identical existing file is
// left alone. A different one is replaced only after confirmation; otherwise the step
// takes the abort path and the file is kept.
func (m *IncludedFile) To(dir string) error {
	if m.source == "" {
		return errors.New(messages.IncludedSourceRequired)
	}
	dir = trimSeparator(dir)
	sys := m.Sys()
	p := m.Printer()
	name := path.Base(m.source)
	display := filepath.Join(dir, name)

	if !isDir(sys, m.Step.Path(dir)) {
		if m.optional || m.Dry() {
			p.Println(p.Comment(fmt.Sprintf(messages.IncludedTargetMissingFmt, dir)))
			return nil
		}
		return &upgrade.PreconditionError{Kind: upgrade.MissingDirectory, Path: dir}
	}

	data, err := fs.ReadFile(m.Version().Run.Files, m.source)
	if err != nil {
		return fmt.Errorf(messages.FailedReadFmt, m.source, err)
	}

	target := m.Step.Path(display)
	if isRegular(sys, target) {
		current, err := sys.ReadFile(target)
		if err != nil {
			return fmt.Errorf(messages.FailedReadFmt, display, err)
		}
		if sameDigest(current, data) {
			p.Println(p.Comment(fmt.Sprintf(messages.IncludedExistsSameFmt, display)))
			return nil
		}
		p.Println(p.Error(fmt.Sprintf(messages.IncludedExistsDifferentFmt, display)))
		ok, err := m.ConfirmAutomatedChange()
		if err != nil {
			return err
		}
		if !ok {
			return m.AbortRequiringUserAction()
		}
	}

	p.Println(p.Info(fmt.Sprintf(messages.IncludedCopyingFmt, name, dir)))
	m.MarkChanged()
	if m.Dry() {
		return nil
	}
	if err := sys.WriteFileAtomic(target, data, 0o644); err != nil {
		return fmt.Errorf(messages.FailedCopyFmt, m.source, display, err)
	}
	if err := sys.Chmod(target, 0o644); err != nil {
		return fmt.Errorf(messages.FailedWriteFmt, display, err)
	}
	return nil
}

func sameDigest(a []byte, b []byte) bool {
	left := sha256.Sum256(a)
	right := sha256.Sum256(b)
	return bytes.Equal(left[:], right[:])
}

package modifier

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zubzet/tooling/internal/messages"
	"github.com/zubzet/tooling/internal/upgrade"
)

// FolderContent moves everything inside one directory into another.
type FolderContent struct {
	*upgrade.Step

	requireSource bool
}

// NewFolderContent begins the named step.
func NewFolderContent(v *upgrade.Version, name string) *FolderContent {
	return &FolderContent{Step: upgrade.NewStep(v, name)}
}

// RequireSource makes a missing source directory a precondition failure.
func (m *FolderContent) RequireSource() {
	m.requireSource = true
}

// Move overlays the contents of from onto to and then empties from. Existing
// destination files are overwritten; destination-only files are kept. The source
// directory itself stays. The destination must exist outside dry-run.
func (m *FolderContent) Move(from string, to string) error {
	from, to = trimSeparator(from), trimSeparator(to)
	sys := m.Sys()
	p := m.Printer()
	fromAbs, toAbs := m.Step.Path(from), m.Step.Path(to)

	if !isDir(sys, fromAbs) {
		return m.missingSource(from)
	}

	fromReal, toReal, err := m.guardMove(from, to)
	if err != nil {
		return err
	}
	if !isDir(sys, toAbs) && !m.Dry() {
		return &upgrade.PreconditionError{Kind: upgrade.MissingDirectory, Path: to}
	}

	files, dirs, err := countTree(sys, fromReal)
	if err != nil {
		return err
	}
	p.Printf(messages.FolderMovingFmt,
		p.Info(strconv.Itoa(files)), plural(files, "", "s"),
		p.Info(strconv.Itoa(dirs)), plural(dirs, "y", "ies"),
		p.Info(from), p.Info(to))
	if files+dirs == 0 {
		return nil
	}
	m.MarkChanged()
	if m.Dry() {
		return nil
	}

	if err := overlay(sys, fromReal, toReal); err != nil {
		return err
	}
	entries, err := sys.ReadDir(fromReal)
	if err != nil {
		return fmt.Errorf(messages.FailedReadFmt, from, err)
	}
	for _, entry := range entries {
		if err := sys.RemoveAll(filepath.Join(fromReal, entry.Name())); err != nil {
			return fmt.Errorf(messages.FailedRemoveFmt, filepath.Join(from, entry.Name()), err)
		}
	}
	return nil
}

// MoveWithParentFolder creates to when missing, moves the contents of from into it,
// and removes the emptied from directory.
func (m *FolderContent) MoveWithParentFolder(from string, to string) error {
	from, to = trimSeparator(from), trimSeparator(to)
	sys := m.Sys()
	p := m.Printer()
	fromAbs, toAbs := m.Step.Path(from), m.Step.Path(to)

	if !isDir(sys, fromAbs) {
		return m.missingSource(from)
	}
	if _, _, err := m.guardMove(from, to); err != nil {
		return err
	}
	if !isDir(sys, toAbs) {
		p.Println(p.Info(fmt.Sprintf(messages.FolderCreatingFmt, to)))
		m.MarkChanged()
		if !m.Dry() {
			if err := sys.MkdirAll(toAbs, 0o755); err != nil {
				return fmt.Errorf(messages.FailedCreateDirFmt, to, err)
			}
		}
	}
	if err := m.Move(from, to); err != nil {
		return err
	}
	p.Println(p.Info(fmt.Sprintf(messages.FolderRemovingFmt, from)))
	m.MarkChanged()
	if m.Dry() {
		return nil
	}
	if err := sys.Remove(fromAbs); err != nil {
		return fmt.Errorf(messages.FailedRemoveFmt, from, err)
	}
	return nil
}

// guardMove rejects a move onto the source itself or into one of its descendants,
// symlinks resolved. It returns the resolved source and destination.
func (m *FolderContent) guardMove(from string, to string) (string, string, error) {
	sys := m.Sys()
	fromReal, toReal := realPath(sys, m.Step.Path(from)), realPath(sys, m.Step.Path(to))
	if fromReal == toReal {
		return "", "", fmt.Errorf(messages.FolderSamePathFmt, from)
	}
	if strings.HasPrefix(toReal, fromReal+string(filepath.Separator)) {
		return "", "", fmt.Errorf(messages.FolderCycleFmt, to, from)
	}
	return fromReal, toReal, nil
}

func (m *FolderContent) missingSource(from string) error {
	if m.requireSource {
		return &upgrade.PreconditionError{Kind: upgrade.MissingDirectory, Path: from}
	}
	p := m.Printer()
	p.Println(p.Comment(fmt.Sprintf(messages.FolderSourceMissingFmt, from)))
	return nil
}

// countTree counts files and directories below root, root excluded.
func countTree(sys upgrade.System, root string) (int, int, error) {
	files, dirs := 0, 0
	err := sys.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		if d.IsDir() {
			dirs++
		} else {
			files++
		}
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf(messages.FailedReadFmt, root, err)
	}
	return files, dirs, nil
}

// overlay mirrors src onto dst. Symlinks are recreated, not followed.
func overlay(sys upgrade.System, src string, dst string) error {
	return sys.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)

		switch {
		case d.IsDir():
			if err := sys.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf(messages.FailedCreateDirFmt, target, err)
			}
		case d.Type()&fs.ModeSymlink != 0:
			link, err := sys.Readlink(path)
			if err != nil {
				return fmt.Errorf(messages.FailedReadFmt, path, err)
			}
			if err := sys.RemoveAll(target); err != nil {
				return fmt.Errorf(messages.FailedRemoveFmt, target, err)
			}
			if err := sys.Symlink(link, target); err != nil {
				return fmt.Errorf(messages.FailedCopyFmt, path, target, err)
			}
		default:
			data, err := sys.ReadFile(path)
			if err != nil {
				return fmt.Errorf(messages.FailedReadFmt, path, err)
			}
			if err := sys.WriteFileAtomic(target, data, fileMode(sys, path, 0o644)); err != nil {
				return fmt.Errorf(messages.FailedCopyFmt, path, target, err)
			}
		}
		return nil
	})
}

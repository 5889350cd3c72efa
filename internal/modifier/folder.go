package modifier

import (
	"fmt"

	"github.com/zubzet/tooling/internal/messages"
	"github.com/zubzet/tooling/internal/upgrade"
)

// Folder ensures directories exist or are gone.
type Folder struct {
	*upgrade.Step
}

// NewFolder begins the named step.
func NewFolder(v *upgrade.Version, name string) *Folder {
	return &Folder{Step: upgrade.NewStep(v, name)}
}

// ShouldExist creates each missing directory with mode 0755.
func (m *Folder) ShouldExist(paths ...string) error {
	p := m.Printer()
	sys := m.Sys()
	for _, path := range paths {
		abs := m.Step.Path(path)
		if isDir(sys, abs) {
			p.Println(p.Comment(fmt.Sprintf(messages.FolderExistsFmt, path)))
			continue
		}
		p.Println(p.Info(fmt.Sprintf(messages.FolderCreatingFmt, path)))
		m.MarkChanged()
		if m.Dry() {
			continue
		}
		if err := sys.MkdirAll(abs, 0o755); err != nil {
			return fmt.Errorf(messages.FailedCreateDirFmt, path, err)
		}
	}
	return nil
}

// ShouldNotExist removes each directory. Removing a non-empty directory fails.
func (m *Folder) ShouldNotExist(paths ...string) error {
	return m.shouldNotExist(paths, false)
}

// ShouldNotExistIfEmpty removes each directory that is empty and keeps the others.
func (m *Folder) ShouldNotExistIfEmpty(paths ...string) error {
	return m.shouldNotExist(paths, true)
}

func (m *Folder) shouldNotExist(paths []string, onlyIfEmpty bool) error {
	p := m.Printer()
	sys := m.Sys()
	for _, path := range paths {
		abs := m.Step.Path(path)
		if !isDir(sys, abs) {
			p.Println(p.Comment(fmt.Sprintf(messages.FolderAbsentFmt, path)))
			continue
		}
		if onlyIfEmpty {
			entries, err := sys.ReadDir(abs)
			if err != nil {
				return fmt.Errorf(messages.FailedReadFmt, path, err)
			}
			if len(entries) > 0 {
				p.Println(p.Comment(fmt.Sprintf(messages.FolderNotEmptyKeepFmt, path)))
				continue
			}
		}
		p.Println(p.Info(fmt.Sprintf(messages.FolderRemovingFmt, path)))
		m.MarkChanged()
		if m.Dry() {
			continue
		}
		if err := sys.Remove(abs); err != nil {
			return fmt.Errorf(messages.FailedRemoveFmt, path, err)
		}
	}
	return nil
}

package modifier

import (
	"fmt"

	"github.com/zubzet/tooling/internal/messages"
	"github.com/zubzet/tooling/internal/upgrade"
)

// RemoveFile deletes files that are no longer part of a project.
type RemoveFile struct {
	*upgrade.Step
}

// NewRemoveFile begins the named step.
func NewRemoveFile(v *upgrade.Version, name string) *RemoveFile {
	return &RemoveFile{Step: upgrade.NewStep(v, name)}
}

// From removes each path that exists. Missing paths are reported and skipped.
func (m *RemoveFile) From(paths ...string) error {
	sys := m.Sys()
	p := m.Printer()
	for _, path := range paths {
		abs := m.Step.Path(path)
		present, err := exists(sys, abs)
		if err != nil {
			return fmt.Errorf(messages.FailedStatFmt, path, err)
		}
		if !present {
			p.Println(p.Comment(fmt.Sprintf(messages.RemoveAlreadyGoneFmt, path)))
			continue
		}
		p.Println(p.Info(fmt.Sprintf(messages.RemovingFileFmt, path)))
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

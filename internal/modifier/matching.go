package modifier

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/zubzet/tooling/internal/messages"
	"github.com/zubzet/tooling/internal/upgrade"
)

// Issue is one line flagged by MatchLineByLine.
type Issue struct {
	File     string
	Line     int
	Messages []string
}

// Matching scans source files for lines that need manual attention.
type Matching struct {
	*upgrade.Step

	filters      []string
	files        []string
	linesChecked int
	issues       []Issue
}

// NewMatching begins the named step.
func NewMatching(v *upgrade.Version, name string) *Matching {
	return &Matching{Step: upgrade.NewStep(v, name)}
}

// Only restricts From to files whose root-relative slash path matches any of the
// doublestar patterns, for example "**/*.php". Call it before From.
func (m *Matching) Only(patterns ...string) error {
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf(messages.MatchingBadGlobFmt, pattern, doublestar.ErrBadPattern)
		}
	}
	m.filters = append(m.filters, patterns...)
	return nil
}

// From collects every file below each directory in paths. Missing directories are ignored.
func (m *Matching) From(paths ...string) error {
	sys := m.Sys()
	root := m.Step.Path(".")
	for _, path := range paths {
		abs := m.Step.Path(path)
		if !isDir(sys, abs) {
			continue
		}
		err := sys.WalkDir(abs, func(file string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			if m.selected(root, file) {
				m.files = append(m.files, file)
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf(messages.MatchingReadFailFmt, path, err)
		}
	}
	p := m.Printer()
	p.Printf(messages.MatchingFilesFmt, p.Info(strconv.Itoa(len(m.files))))
	return nil
}

func (m *Matching) selected(root string, file string) bool {
	if len(m.filters) == 0 {
		return true
	}
	rel, err := filepath.Rel(root, file)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range m.filters {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// Files returns the collected files.
func (m *Matching) Files() []string {
	return append([]string(nil), m.files...)
}

// MatchLineByLine records an issue carrying notes for every non-empty line matching
// pattern. Unreadable files are skipped.
func (m *Matching) MatchLineByLine(pattern *regexp.Regexp, notes ...string) {
	sys := m.Sys()
	for _, file := range m.files {
		data, err := sys.ReadFile(file)
		if err != nil {
			continue
		}
		for i, line := range lineBreak.Split(string(data), -1) {
			m.linesChecked++
			if strings.TrimSpace(line) == "" {
				continue
			}
			if pattern.MatchString(line) {
				m.issues = append(m.issues, Issue{File: file, Line: i + 1, Messages: notes})
			}
		}
	}
}

// Issues returns the recorded issues.
func (m *Matching) Issues() []Issue {
	return append([]Issue(nil), m.issues...)
}

// Warn reports the recorded issues and, when there are any, takes the abort path.
func (m *Matching) Warn() error {
	p := m.Printer()
	p.Printf(messages.MatchingChecksFmt, p.Info(strconv.Itoa(m.linesChecked)))
	if len(m.issues) == 0 {
		return nil
	}
	for _, issue := range m.issues {
		p.Blank()
		p.Println(p.Error(fmt.Sprintf(messages.MatchingInFmt, issue.File, issue.Line)))
		for _, msg := range issue.Messages {
			p.Println(msg)
		}
	}
	p.Blank()
	p.Println(p.Error(fmt.Sprintf(messages.MatchingTotalFmt, len(m.issues))))
	return m.AbortRequiringUserAction()
}

package modifier

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/zubzet/tooling/internal/messages"
	"github.com/zubzet/tooling/internal/upgrade"
)

// DefaultWarnIf lists the values that make removing a property worth a confirmation.
var DefaultWarnIf = []string{"1", "true", "on", "yes"}

var lineBreak = regexp.MustCompile(`\r\n|\n|\r`)

// Settings edits the line-oriented project settings file. Edits accumulate in memory
// until Save.
type Settings struct {
	*upgrade.Step

	file     string
	path     string
	original string
	eol      string
	lines    []string

	firstAddition   bool
	collapse        bool
	assertEmptyLast bool
}

// NewSettings begins the named step on the default settings file.
func NewSettings(v *upgrade.Version, name string) (*Settings, error) {
	return NewSettingsAt(v, name, messages.SettingsDefaultFile)
}

// NewSettingsAt begins the named step on file. A missing file is a precondition failure.
func NewSettingsAt(v *upgrade.Version, name string, file string) (*Settings, error) {
	m := &Settings{Step: upgrade.NewStep(v, name), file: file, firstAddition: true}
	m.path = m.Step.Path(file)
	sys := m.Sys()
	if !isRegular(sys, m.path) {
		return nil, &upgrade.PreconditionError{Kind: upgrade.FileNotFound, Path: file, Folder: "."}
	}
	data, err := sys.ReadFile(m.path)
	if err != nil {
		return nil, fmt.Errorf(messages.FailedReadFmt, m.path, err)
	}
	m.original = string(data)
	m.lines = lineBreak.Split(m.original, -1)
	m.eol = "\n"
	if found := lineBreak.FindString(m.original); found != "" {
		m.eol = found
	}
	return m, nil
}

// Lines returns the current in-memory lines.
func (m *Settings) Lines() []string {
	return append([]string(nil), m.lines...)
}

// findProperty returns the first line containing name, or -1.
func (m *Settings) findProperty(name string) int {
	for i, line := range m.lines {
		if strings.Contains(line, name) {
			return i
		}
	}
	return -1
}

func formatProperty(name string, value string) string {
	line := name + " ="
	if value != "" {
		line += " " + value
	}
	return line
}

// propertyValue returns the text after the first "=", or the whole line.
func propertyValue(line string) string {
	if _, value, ok := strings.Cut(line, "="); ok {
		return value
	}
	return line
}

// AddProperty appends "name = value" unless a line containing name exists. The first
// append of a session is preceded by a blank line.
func (m *Settings) AddProperty(name string, value string) {
	m.AddPropertyAfter(name, value, "")
}

// AddPropertyAfter inserts "name = value" directly below the line containing after.
// When after is empty or not found it behaves like AddProperty.
func (m *Settings) AddPropertyAfter(name string, value string, after string) {
	p := m.Printer()
	if m.findProperty(name) >= 0 {
		p.Println(p.Comment(fmt.Sprintf(messages.SettingsAlreadyExistsFmt, name)))
		return
	}
	p.Println(p.Info(fmt.Sprintf(messages.SettingsAddingFmt, name, value)))
	line := formatProperty(name, value)

	if after != "" {
		if index := m.findProperty(after); index >= 0 {
			m.lines = append(m.lines[:index+1], append([]string{line}, m.lines[index+1:]...)...)
			return
		}
	}
	if m.firstAddition {
		m.lines = append(m.lines, "")
		m.firstAddition = false
	}
	m.lines = append(m.lines, line)
}

// RemoveProperty removes the line containing name, warning with DefaultWarnIf.
func (m *Settings) RemoveProperty(name string, warning ...string) error {
	return m.RemovePropertyWarnIf(name, DefaultWarnIf, warning...)
}

// RemovePropertyWarnIf removes the line containing name. When warning is given and the
// property's value contains any of warnIf (case-insensitive), the operator must confirm
// first; declining takes the abort path and leaves the property in place.
func (m *Settings) RemovePropertyWarnIf(name string, warnIf []string, warning ...string) error {
	p := m.Printer()
	index := m.findProperty(name)
	if index < 0 {
		p.Println(p.Comment(fmt.Sprintf(messages.SettingsMissingFmt, name)))
		return nil
	}

	if len(warning) > 0 && valueTriggers(propertyValue(m.lines[index]), warnIf) {
		p.Println(p.Error(messages.SettingsWarningHeader))
		for _, line := range warning {
			p.Println(p.Error(fmt.Sprintf(messages.SettingsWarningLineFmt, line)))
		}
		ok, err := m.ConfirmAutomatedChange()
		if err != nil {
			return err
		}
		if !ok {
			return m.AbortRequiringUserAction()
		}
	}

	p.Println(p.Info(fmt.Sprintf(messages.SettingsRemovingFmt, name)))
	m.lines = append(m.lines[:index], m.lines[index+1:]...)
	return nil
}

func valueTriggers(value string, warnIf []string) bool {
	lower := strings.ToLower(value)
	for _, trigger := range warnIf {
		if trigger != "" && strings.Contains(lower, strings.ToLower(trigger)) {
			return true
		}
	}
	return false
}

// ModifyProperty rewrites the line containing name to "name = value", adding it when missing.
func (m *Settings) ModifyProperty(name string, value string) {
	p := m.Printer()
	index := m.findProperty(name)
	if index < 0 {
		m.AddProperty(name, value)
		return
	}
	if strings.Contains(m.lines[index], value) {
		p.Println(p.Comment(fmt.Sprintf(messages.SettingsAlreadySetFmt, name, value)))
		return
	}
	p.Println(p.Info(fmt.Sprintf(messages.SettingsModifyingFmt, name, value)))
	m.lines[index] = formatProperty(name, value)
}

// CollapseConsecutiveEmptyRows collapses runs of empty lines into one on Save.
func (m *Settings) CollapseConsecutiveEmptyRows() {
	m.collapse = true
}

// AssertEmptyLastRow makes Save end the file with an empty line.
func (m *Settings) AssertEmptyLastRow() {
	m.assertEmptyLast = true
}

// Save applies the styling options and writes the file with the line terminator it was
// read with. Unchanged content is not rewritten.
func (m *Settings) Save() error {
	p := m.Printer()
	if m.collapse {
		m.collapseEmptyRows()
	}
	if m.assertEmptyLast {
		if len(m.lines) == 0 || m.lines[len(m.lines)-1] != "" {
			p.Println(p.Info(messages.SettingsLastRowAdded))
			m.lines = append(m.lines, "")
		} else {
			p.Println(p.Comment(messages.SettingsLastRowPresent))
		}
	}

	content := strings.Join(m.lines, m.eol)
	if content == m.original {
		p.Println(p.Comment(fmt.Sprintf(messages.SettingsNoChangesFmt, m.file)))
		return nil
	}
	m.MarkChanged()
	if m.Dry() {
		return nil
	}
	sys := m.Sys()
	if err := sys.WriteFileAtomic(m.path, []byte(content), fileMode(sys, m.path, 0o644)); err != nil {
		return fmt.Errorf(messages.FailedWriteFmt, m.path, err)
	}
	m.original = content
	return nil
}

func (m *Settings) collapseEmptyRows() {
	p := m.Printer()
	collapsed := make([]string, 0, len(m.lines))
	removed := 0
	previousEmpty := false
	for _, line := range m.lines {
		empty := line == ""
		if empty && previousEmpty {
			removed++
			continue
		}
		collapsed = append(collapsed, line)
		previousEmpty = empty
	}
	if removed == 0 {
		p.Println(p.Comment(messages.SettingsNoCollapse))
		return
	}
	p.Println(p.Info(fmt.Sprintf(messages.SettingsCollapsedFmt, fmt.Sprintf(messages.SettingsCollapsedRowsFmt, removed+1))))
	m.lines = collapsed
}

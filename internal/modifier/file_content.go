package modifier

import (
	"context"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"

	"github.com/zubzet/tooling/internal/messages"
	"github.com/zubzet/tooling/internal/upgrade"
)

// maxFindDepth bounds the breadth-first file search below the search folder.
const maxFindDepth = 10

// FileContent edits a single text file found by name.
type FileContent struct {
	*upgrade.Step

	optional           bool
	optionalIfNotFound bool

	searched string
	path     string
	content  string
	loaded   bool

	shouldChange bool
	automated    func(content string) string
	automatedCmd string
}

// changeProposal drives diff, confirm, and apply inside DemandChange.
type changeProposal struct {
	original    string
	proposed    string
	explanation string
	command     string
}

// NewFileContent begins the named step.
func NewFileContent(v *upgrade.Version, name string) *FileContent {
	return &FileContent{Step: upgrade.NewStep(v, name)}
}

// Optional makes a missing file and an unresolved change non-fatal.
func (m *FileContent) Optional() {
	m.optional = true
}

// OptionalIfNotFound downgrades a missing file to a skip with notice.
func (m *FileContent) OptionalIfNotFound() {
	m.optionalIfNotFound = true
}

// FilePath returns the located file, empty when nothing was found.
func (m *FileContent) FilePath() string {
	return m.path
}

// Content returns the loaded content.
func (m *FileContent) Content() string {
	return m.content
}

// Find locates file below folder (the project root when empty), preferring the
// shallowest match. Unreadable directories are skipped.
func (m *FileContent) Find(file string, folder string) error {
	m.searched = file
	if strings.TrimSpace(folder) == "" {
		folder = "."
	}
	folder = trimSeparator(folder)

	sys := m.Sys()
	if found, ok := findShallowest(sys, m.Step.Path(folder), file, maxFindDepth); ok {
		data, err := sys.ReadFile(found)
		if err != nil {
			return fmt.Errorf(messages.FailedReadFmt, found, err)
		}
		m.path = found
		m.content = string(data)
		m.loaded = true
		return nil
	}

	if m.optionalIfNotFound {
		m.optional = true
		p := m.Printer()
		p.Println(p.Comment(fmt.Sprintf(messages.FileNotFoundSkippingFmt, file, folder)))
	}
	if m.optional {
		return nil
	}
	return &upgrade.PreconditionError{Kind: upgrade.FileNotFound, Path: file, Folder: folder}
}

// findShallowest runs a breadth-first search for name below root.
// The root itself is checked first; directories deeper than maxDepth are not entered.
func findShallowest(sys upgrade.System, root string, name string, maxDepth int) (string, bool) {
	if atRoot := filepath.Join(root, name); isRegular(sys, atRoot) {
		return atRoot, true
	}

	type queued struct {
		dir   string
		depth int
	}
	queue := []queued{{dir: root, depth: 0}}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]

		entries, err := sys.ReadDir(next.dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			full := filepath.Join(next.dir, entry.Name())
			info, err := sys.Stat(full)
			if err != nil {
				continue
			}
			if info.Mode().IsRegular() {
				if entry.Name() == name {
					return full, true
				}
				continue
			}
			if info.IsDir() && next.depth < maxDepth {
				queue = append(queue, queued{dir: full, depth: next.depth + 1})
			}
		}
	}
	return "", false
}

// ShouldChangeIfPattern flags the file when pattern matches its content.
func (m *FileContent) ShouldChangeIfPattern(pattern *regexp.Regexp) {
	if m.loaded && pattern.MatchString(m.content) {
		m.shouldChange = true
	}
}

// ShouldChangeIfIncludes flags the file when it contains search.
func (m *FileContent) ShouldChangeIfIncludes(search string) {
	if m.loaded && strings.Contains(m.content, search) {
		m.shouldChange = true
	}
}

// ShouldChangeIfNotIncludes flags the file when it lacks search.
func (m *FileContent) ShouldChangeIfNotIncludes(search string) {
	if m.loaded && !strings.Contains(m.content, search) {
		m.shouldChange = true
	}
}

// AutomateChange registers a textual transform offered after a diff review.
func (m *FileContent) AutomateChange(change func(content string) string) {
	m.automated = change
}

// AutomateChangeCmd registers a shell command offered before any textual transform.
func (m *FileContent) AutomateChangeCmd(command string) {
	m.automatedCmd = command
}

// DemandChange resolves a flagged file: first through the registered command, then
// through the reviewed textual transform. When neither resolves it and the modifier is
// not optional, the step aborts.
func (m *FileContent) DemandChange(ctx context.Context, explanation ...string) error {
	p := m.Printer()
	if !m.loaded || !m.shouldChange {
		p.Printf(messages.FileNoChangesFmt, p.Comment(m.searched))
		return nil
	}

	proposal := changeProposal{
		original:    m.content,
		explanation: joinExplanation(explanation),
		command:     m.automatedCmd,
	}
	p.Println(p.Error(fmt.Sprintf(messages.FileConcerningFmt, m.path)))
	p.Blank()
	p.Println(p.Error(proposal.explanation))

	if proposal.command != "" {
		ok, err := m.RunCommand(ctx, proposal.command)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}

	if m.automated != nil {
		proposal.proposed = m.automated(proposal.original)
		applied, err := m.offerAutomatedChange(proposal)
		if err != nil || applied {
			return err
		}
	}

	if m.optional {
		return nil
	}
	return m.AbortRequiringUserAction()
}

func (m *FileContent) offerAutomatedChange(proposal changeProposal) (bool, error) {
	p := m.Printer()
	p.Blank()
	p.Println(messages.FileAutomatedAvailable)

	diff, _ := upgrade.RenderDiff(proposal.original, proposal.proposed, m.DiffMaxLines())
	if diff == "" {
		p.Printf(messages.FileAutomatedNoDiffFmt, p.Comment(m.searched))
		return false, nil
	}
	if err := validateStructured(m.path, proposal.original, proposal.proposed); err != nil {
		p.Println(p.Error(fmt.Sprintf(messages.FileAutomatedInvalidFmt, m.searched, err)))
		return false, nil
	}

	p.Blank()
	p.Println(p.Info(messages.FileDiffHeader))
	p.Println(strings.TrimRight(diff, "\n"))

	ok, err := m.ConfirmAutomatedChange()
	if err != nil || !ok {
		return false, err
	}
	p.Println(p.Info(fmt.Sprintf(messages.FileAutomatedAppliedFmt, p.Comment(m.searched))))
	if !m.Dry() {
		sys := m.Sys()
		if err := sys.WriteFileAtomic(m.path, []byte(proposal.proposed), fileMode(sys, m.path, 0o644)); err != nil {
			return false, fmt.Errorf(messages.FailedWriteFmt, m.path, err)
		}
	}
	m.content = proposal.proposed
	m.MarkChanged()
	return true, nil
}

// validateStructured rejects a transform that breaks a YAML or JSON file which
// parsed before the edit. Other file types are not checked.
func validateStructured(path string, original string, proposed string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		var before any
		if yaml.Unmarshal([]byte(original), &before) != nil {
			return nil
		}
		var after any
		return yaml.Unmarshal([]byte(proposed), &after)
	case ".json":
		if !gjson.Valid(original) || gjson.Valid(proposed) {
			return nil
		}
		return fmt.Errorf("invalid JSON")
	default:
		return nil
	}
}

func joinExplanation(lines []string) string {
	trimmed := make([]string, 0, len(lines))
	for _, line := range lines {
		trimmed = append(trimmed, strings.TrimSpace(line))
	}
	return strings.Join(trimmed, "\n")
}

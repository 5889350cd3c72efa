package modifier

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/google/go-cmp/cmp"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"github.com/zubzet/tooling/internal/messages"
	"github.com/zubzet/tooling/internal/upgrade"
)

// prettyOptions expand every object and array onto its own lines with four-space indentation.
var prettyOptions = &pretty.Options{Width: 0, Prefix: "", Indent: "    ", SortKeys: false}

// Document is a JSON value edited in place by path. Key order is preserved.
// Paths use gjson syntax, for example "require.zubzet/framework" or "packages.0.name".
type Document struct {
	raw []byte
}

// NewDocument wraps raw JSON.
func NewDocument(raw []byte) *Document {
	return &Document{raw: append([]byte(nil), raw...)}
}

// Get reads the value at path.
func (d *Document) Get(path string) gjson.Result {
	return gjson.GetBytes(d.raw, path)
}

// Set writes value at path, creating intermediate objects.
func (d *Document) Set(path string, value any) error {
	raw, err := sjson.SetBytes(d.raw, path, value)
	if err != nil {
		return fmt.Errorf(messages.JSONSetFailedFmt, path, err)
	}
	d.raw = raw
	return nil
}

// Delete removes path. A missing path is not an error.
func (d *Document) Delete(path string) error {
	raw, err := sjson.DeleteBytes(d.raw, path)
	if err != nil {
		return fmt.Errorf(messages.JSONDeleteFailedFmt, path, err)
	}
	d.raw = raw
	return nil
}

func (d *Document) clone() *Document {
	return NewDocument(d.raw)
}

// JSON loads a JSON file and applies a structural transform to it.
type JSON struct {
	*upgrade.Step

	optional bool
	file     string
	path     string
	doc      *Document
	modified bool
}

// NewJSON begins the named step.
func NewJSON(v *upgrade.Version, name string) *JSON {
	return &JSON{Step: upgrade.NewStep(v, name)}
}

// Optional makes a missing file non-fatal.
func (m *JSON) Optional() {
	m.optional = true
}

// From loads file. A missing required file or a file that does not parse as a JSON
// value is a precondition failure.
func (m *JSON) From(file string) error {
	m.file = file
	m.path = m.Step.Path(file)
	sys := m.Sys()

	if !isRegular(sys, m.path) {
		if m.optional {
			p := m.Printer()
			p.Println(p.Comment(fmt.Sprintf(messages.JSONNotFoundSkippingFmt, file)))
			return nil
		}
		return &upgrade.PreconditionError{Kind: upgrade.FileNotFound, Path: filepath.Base(file), Folder: filepath.Dir(file)}
	}

	raw, err := sys.ReadFile(m.path)
	if err != nil {
		return fmt.Errorf(messages.FailedReadFmt, m.path, err)
	}
	if _, err := decodeJSON(raw); err != nil {
		return &upgrade.PreconditionError{Kind: upgrade.InvalidJSON, Path: file, Err: err}
	}
	m.doc = NewDocument(raw)
	return nil
}

// Loaded reports whether a document was read.
func (m *JSON) Loaded() bool {
	return m.doc != nil
}

// Modify applies transform to a copy of the document. The transform reports whether it
// produced a new document; a structurally equal result counts as no change. A changed
// document is written back pretty-printed unless in dry-run.
func (m *JSON) Modify(transform func(doc *Document) (bool, error)) error {
	if m.doc == nil {
		return nil
	}
	p := m.Printer()

	working := m.doc.clone()
	changed, err := transform(working)
	if err != nil {
		return fmt.Errorf(messages.JSONTransformFailedFmt, m.file, err)
	}
	if changed {
		changed, err = structurallyDifferent(m.doc.raw, working.raw)
		if err != nil {
			return fmt.Errorf(messages.JSONTransformFailedFmt, m.file, err)
		}
	}
	if !changed {
		p.Println(p.Comment(fmt.Sprintf(messages.JSONNoChangesFmt, m.file)))
		return nil
	}

	p.Printf(messages.JSONModifyingFmt, p.Info(m.file))
	out := unescapeSlashes(pretty.PrettyOptions(working.raw, prettyOptions))
	m.MarkChanged()
	if m.Dry() {
		return nil
	}
	sys := m.Sys()
	if err := sys.WriteFileAtomic(m.path, out, fileMode(sys, m.path, 0o644)); err != nil {
		return fmt.Errorf(messages.FailedWriteFmt, m.path, err)
	}
	m.doc = NewDocument(out)
	m.modified = true
	return nil
}

// Modified reports whether Modify persisted a change.
func (m *JSON) Modified() bool {
	return m.modified
}

// IfModified runs fn only after a persisted change.
func (m *JSON) IfModified(fn func() error) error {
	if !m.modified {
		return nil
	}
	return fn()
}

func decodeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	if v == nil {
		return nil, fmt.Errorf("document is null")
	}
	return v, nil
}

func structurallyDifferent(before []byte, after []byte) (bool, error) {
	a, err := decodeJSON(before)
	if err != nil {
		return false, err
	}
	b, err := decodeJSON(after)
	if err != nil {
		return false, err
	}
	return !cmp.Equal(a, b), nil
}

// unescapeSlashes rewrites \/ to / outside of escaped backslashes.
func unescapeSlashes(raw []byte) []byte {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' || i+1 >= len(raw) {
			out = append(out, c)
			continue
		}
		next := raw[i+1]
		if next != '/' {
			out = append(out, c, next)
		} else {
			out = append(out, '/')
		}
		i++
	}
	return out
}

package upgrade

import (
	"context"
	"fmt"
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/zubzet/tooling/internal/messages"
)

// Stability is the release state of a target version.
type Stability string

// Release states used to build composer version constraints.
const (
	StabilityStable           Stability = "stable"
	StabilityReleaseCandidate Stability = "RC"
	StabilityDevelopment      Stability = "dev"
	StabilityAlpha            Stability = "alpha"
	StabilityBeta             Stability = "beta"
)

// Script is the ordered sequence of modifier invocations for one target version.
type Script interface {
	Upgrade(ctx context.Context, v *Version) error
}

// ScriptFunc adapts a function into a Script.
type ScriptFunc func(ctx context.Context, v *Version) error

// Upgrade calls f.
func (f ScriptFunc) Upgrade(ctx context.Context, v *Version) error {
	return f(ctx, v)
}

// Entry binds a Script to the version it upgrades to.
type Entry struct {
	Tag       string
	Stability Stability
	Script    Script
}

// Transition is one planned step of the version chain.
type Transition struct {
	From  string
	To    string
	Entry Entry
}

// Registry is the ascending catalog of known version tags and their scripts.
// Tags without a script (typically the oldest) are valid starting points only.
type Registry struct {
	tags    []string
	entries map[string]Entry
}

// NewRegistry validates and sorts known tags and binds entries to them.
func NewRegistry(known []string, entries ...Entry) (*Registry, error) {
	parsed := make(map[string]*semver.Version, len(known))
	tags := make([]string, 0, len(known))
	for _, tag := range known {
		if _, dup := parsed[tag]; dup {
			return nil, fmt.Errorf(messages.UpgradeDuplicateTagFmt, tag)
		}
		v, err := semver.StrictNewVersion(tag)
		if err != nil {
			return nil, fmt.Errorf(messages.UpgradeInvalidTagFmt, tag, err)
		}
		parsed[tag] = v
		tags = append(tags, tag)
	}
	sort.SliceStable(tags, func(i, j int) bool {
		return parsed[tags[i]].LessThan(parsed[tags[j]])
	})

	bound := make(map[string]Entry, len(entries))
	for _, entry := range entries {
		if _, ok := parsed[entry.Tag]; !ok {
			return nil, fmt.Errorf(messages.UpgradeScriptUnknownTagFmt, entry.Tag)
		}
		if _, dup := bound[entry.Tag]; dup {
			return nil, fmt.Errorf(messages.UpgradeDuplicateScriptFmt, entry.Tag)
		}
		if entry.Script == nil {
			return nil, fmt.Errorf(messages.UpgradeScriptRequiredFmt, entry.Tag)
		}
		if entry.Stability == "" {
			entry.Stability = StabilityStable
		}
		bound[entry.Tag] = entry
	}
	return &Registry{tags: tags, entries: bound}, nil
}

// Tags returns the known tags in ascending order.
func (r *Registry) Tags() []string {
	return append([]string(nil), r.tags...)
}

func (r *Registry) index(tag string) int {
	for i, known := range r.tags {
		if known == tag {
			return i
		}
	}
	return -1
}

// Plan validates from/to and resolves the script for every version strictly after
// from up to and including to. Nothing is executed; a missing script fails the
// whole plan.
func (r *Registry) Plan(from string, to string) ([]Transition, error) {
	fromIndex := r.index(from)
	if fromIndex < 0 {
		return nil, newUnknownVersionError("from", from, r.tags)
	}
	toIndex := r.index(to)
	if toIndex < 0 {
		return nil, newUnknownVersionError("to", to, r.tags)
	}
	if fromIndex >= toIndex {
		return nil, newRangeError(from, to)
	}

	transitions := make([]Transition, 0, toIndex-fromIndex)
	current := from
	for _, target := range r.tags[fromIndex+1 : toIndex+1] {
		entry, ok := r.entries[target]
		if !ok {
			return nil, &UnknownVersionScriptError{Tag: target}
		}
		transitions = append(transitions, Transition{From: current, To: target, Entry: entry})
		current = target
	}
	return transitions, nil
}

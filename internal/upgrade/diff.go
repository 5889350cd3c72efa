package upgrade

import (
	"fmt"
	"strings"

	"github.com/aymanbagabas/go-udiff"

	"github.com/zubzet/tooling/internal/messages"
)

const (
	// DefaultDiffMaxLines is the default maximum number of diff lines shown per change.
	DefaultDiffMaxLines = 80

	diffOriginalName = "Original"
	diffUpdatedName  = "Updated"
)

func normalizeDiffMaxLines(value int) int {
	if value <= 0 {
		return DefaultDiffMaxLines
	}
	return value
}

// RenderDiff renders a unified diff headed "--- Original" / "+++ Updated".
// It returns an empty string when the contents are equal and reports whether the
// output was cut at maxLines.
func RenderDiff(original string, updated string, maxLines int) (string, bool) {
	if original == updated {
		return "", false
	}
	limit := normalizeDiffMaxLines(maxLines)
	diff := udiff.Unified(diffOriginalName, diffUpdatedName, original, updated)
	lines := splitDiffLines(diff)
	if len(lines) <= limit {
		return ensureTrailingNewline(strings.Join(lines, "\n")), false
	}
	truncated := append(lines[:limit:limit], fmt.Sprintf(messages.DiffTruncatedFmt, limit))
	return ensureTrailingNewline(strings.Join(truncated, "\n")), true
}

func splitDiffLines(content string) []string {
	trimmed := strings.TrimRight(content, "\n")
	if trimmed == "" {
		return []string{}
	}
	return strings.Split(trimmed, "\n")
}

func ensureTrailingNewline(content string) string {
	if content == "" || strings.HasSuffix(content, "\n") {
		return content
	}
	return content + "\n"
}

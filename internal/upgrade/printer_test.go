package upgrade

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseColorMode(t *testing.T) {
	cases := map[string]ColorMode{"": ColorAuto, "AUTO": ColorAuto, "always": ColorAlways, " never ": ColorNever}
	for raw, want := range cases {
		got, ok := ParseColorMode(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, want, got, raw)
	}
	_, ok := ParseColorMode("sometimes")
	assert.False(t, ok)
}

func TestPrinter_TitleAndSection(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, ColorNever)
	p.Title("Upgrade complete")
	p.Section("Upgrading a -> b")

	assert.Equal(t, "\nUpgrade complete\n================\n\nUpgrading a -> b\n----------------\n\n", out.String())
}

func TestPrinter_ColorAlwaysStyles(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, ColorAlways)
	assert.Contains(t, p.Info("x"), "\x1b[")
	assert.Equal(t, "x", NewPrinter(&bytes.Buffer{}, ColorNever).Error("x"))
}

func TestPrinter_StickyError(t *testing.T) {
	p := NewPrinter(failingWriter{}, ColorNever)
	p.Println("a")
	p.Printf("%s", "b")
	assert.EqualError(t, p.Err(), "write failed")
}

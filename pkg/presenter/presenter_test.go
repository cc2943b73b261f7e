package presenter

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	p := New()
	assert.NotNil(t, p)
	assert.Equal(t, os.Stdout, p.output)
	assert.Equal(t, os.Stderr, p.errorOutput)
	assert.False(t, p.quiet)
}

func TestDetectColorMode(t *testing.T) {
	tests := []struct {
		name       string
		noColor    string
		skillColor string
		expected   ColorMode
	}{
		{"NO_COLOR set", "1", "", ColorNever},
		{"SKILLCHECK_COLOR always", "", "always", ColorAlways},
		{"SKILLCHECK_COLOR force", "", "force", ColorAlways},
		{"SKILLCHECK_COLOR never", "", "never", ColorNever},
		{"SKILLCHECK_COLOR off", "", "off", ColorNever},
		{"SKILLCHECK_COLOR auto", "", "auto", ColorAuto},
		{"default", "", "", ColorAuto},
		{"unknown value", "", "sometimes", ColorAuto},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			t.Setenv("SKILLCHECK_COLOR", tt.skillColor)

			assert.Equal(t, tt.expected, detectColorMode())
		})
	}
}

func TestError(t *testing.T) {
	var errorOutput bytes.Buffer
	p := NewWithOptions(nil, &errorOutput, ColorNever)

	p.Error(errors.New("boom"), "reading SKILL.md")
	assert.Equal(t, "[ERROR] reading SKILL.md: boom\n", errorOutput.String())

	errorOutput.Reset()
	p.Error(errors.New("boom"), "")
	assert.Equal(t, "[ERROR] boom\n", errorOutput.String())

	errorOutput.Reset()
	p.Error(nil, "context")
	assert.Empty(t, errorOutput.String())
}

func TestLineIcons(t *testing.T) {
	tests := []struct {
		name     string
		emit     func(p *TerminalPresenter)
		expected string
	}{
		{"success", func(p *TerminalPresenter) { p.Success("Valid") }, "✓ Valid\n"},
		{"failure", func(p *TerminalPresenter) { p.Failure("ERROR: bad") }, "✗ ERROR: bad\n"},
		{"warning", func(p *TerminalPresenter) { p.Warning("WARNING: meh") }, "⚠ WARNING: meh\n"},
		{"info", func(p *TerminalPresenter) { p.Info("Checking: a/SKILL.md") }, "Checking: a/SKILL.md\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var output bytes.Buffer
			p := NewWithOptions(&output, nil, ColorNever)
			tt.emit(p)
			assert.Equal(t, tt.expected, output.String())
		})
	}
}

func TestQuietMode(t *testing.T) {
	var output bytes.Buffer
	p := NewWithOptions(&output, nil, ColorNever)
	assert.False(t, p.IsQuiet())

	p.SetQuiet(true)
	assert.True(t, p.IsQuiet())

	p.Success("hidden")
	p.Warning("hidden")
	p.Info("hidden")
	p.Section("hidden")
	assert.Empty(t, output.String())

	// failures belong to the report and survive quiet mode
	p.Failure("ERROR: shown")
	assert.Equal(t, "✗ ERROR: shown\n", output.String())
}

func TestSection(t *testing.T) {
	var output bytes.Buffer
	p := NewWithOptions(&output, nil, ColorNever)

	p.Section("🔍 Validating skill files")

	lines := strings.Split(strings.TrimSpace(output.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "🔍 Validating skill files", lines[0])
	assert.Equal(t, strings.Repeat("-", len([]rune("🔍 Validating skill files"))), lines[1])
}

func TestColorModeConfiguration(t *testing.T) {
	oldNoColor := color.NoColor
	defer func() { color.NoColor = oldNoColor }()

	p := NewWithOptions(&bytes.Buffer{}, &bytes.Buffer{}, ColorNever)
	assert.Equal(t, ColorNever, p.colorMode)
	assert.True(t, color.NoColor)

	p = NewWithOptions(&bytes.Buffer{}, &bytes.Buffer{}, ColorAlways)
	assert.Equal(t, ColorAlways, p.colorMode)
	assert.False(t, color.NoColor)
}

func TestGlobalFunctions(t *testing.T) {
	originalPresenter := defaultPresenter
	var output, errorOutput bytes.Buffer
	defaultPresenter = NewWithOptions(&output, &errorOutput, ColorNever)
	defer func() {
		defaultPresenter = originalPresenter
	}()

	assert.Same(t, defaultPresenter, Default())

	Error(errors.New("test error"), "error context")
	assert.Contains(t, errorOutput.String(), "error context: test error")

	Success("success message")
	Failure("failure message")
	Warning("warning message")
	Info("info message")
	Section("Heading")
	result := output.String()
	assert.Contains(t, result, "✓ success message")
	assert.Contains(t, result, "✗ failure message")
	assert.Contains(t, result, "⚠ warning message")
	assert.Contains(t, result, "info message")
	assert.Contains(t, result, "Heading\n-------")

	SetQuiet(true)
	output.Reset()
	Info("should not appear")
	assert.Empty(t, output.String())
	SetQuiet(false)
}

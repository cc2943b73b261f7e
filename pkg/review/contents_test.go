package review

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadContents(t *testing.T) {
	files := map[string]string{
		"a.md": "alpha",
		"b.md": "beta",
	}
	readFile := func(path string) ([]byte, error) {
		switch path {
		case "locked.md":
			return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrPermission}
		case "binary.bin":
			return []byte{0xff, 0xfe}, nil
		}
		if content, ok := files[path]; ok {
			return []byte(content), nil
		}
		return nil, &fs.PathError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}

	contents, err := LoadContents([]string{"a.md", "gone.md", "locked.md", "b.md", "binary.bin"}, readFile)

	assert.Equal(t, map[string]string{
		"a.md":       "alpha",
		"b.md":       "beta",
		"locked.md":  "[Error reading file: open locked.md: permission denied]",
		"binary.bin": "[Error reading file: content is not valid UTF-8]",
	}, contents)

	require.Error(t, err)
	var merr *multierror.Error
	require.True(t, errors.As(err, &merr))
	assert.Len(t, merr.Errors, 2)
}

func TestLoadContentsFromDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "SKILL.md")
	require.NoError(t, os.WriteFile(path, []byte(validSkill), 0o644))

	contents, err := LoadContents([]string{path, filepath.Join(dir, "missing.md"), dir}, nil)
	require.Error(t, err)

	assert.Equal(t, validSkill, contents[path])
	assert.NotContains(t, contents, filepath.Join(dir, "missing.md"))
	assert.Contains(t, contents[dir], "[Error reading file: ")
}

func TestWriteResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "claude_review.md")
	require.NoError(t, WriteResult(path, "review text"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "review text", string(data))

	assert.Error(t, WriteResult(filepath.Join(t.TempDir(), "missing", "out.md"), "x"))
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{Model: "custom"}.withDefaults()
	assert.Equal(t, "custom", cfg.Model)
	assert.Equal(t, DefaultMaxTokens, cfg.MaxTokens)
	assert.Equal(t, DefaultAttempts, cfg.Retry.Attempts)
	assert.Equal(t, DefaultInitialDelay, cfg.Retry.InitialDelay)
	assert.Equal(t, DefaultOutput, cfg.Output)
}

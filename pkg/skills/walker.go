package skills

import (
	"context"
	"io/fs"
	"os"
	"slices"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"

	"github.com/jingkaihe/skillcheck/pkg/frontmatter"
	"github.com/jingkaihe/skillcheck/pkg/logger"
)

// DefaultExcludedDirs are directory names whose contents are never validated
var DefaultExcludedDirs = []string{".git", "node_modules"}

// Walker discovers SKILL.md files under a root directory and validates them
type Walker struct {
	root         string
	fsys         fs.FS
	excludedDirs []string
	sections     []string
	strict       bool
}

// Option is a function that configures a Walker
type Option func(*Walker) error

// WithExcludedDirs replaces the default excluded directory names
func WithExcludedDirs(dirs ...string) Option {
	return func(w *Walker) error {
		w.excludedDirs = dirs
		return nil
	}
}

// WithSections replaces the recommended section markers
func WithSections(sections ...string) Option {
	return func(w *Walker) error {
		w.sections = sections
		return nil
	}
}

// WithStrictSections switches the section check to real markdown headings
func WithStrictSections(strict bool) Option {
	return func(w *Walker) error {
		w.strict = strict
		return nil
	}
}

// WithFS reads from fsys instead of the directory at root
func WithFS(fsys fs.FS) Option {
	return func(w *Walker) error {
		if fsys == nil {
			return errors.New("filesystem must not be nil")
		}
		w.fsys = fsys
		return nil
	}
}

// NewWalker creates a walker rooted at root
func NewWalker(root string, opts ...Option) (*Walker, error) {
	w := &Walker{
		root:         root,
		excludedDirs: DefaultExcludedDirs,
		sections:     RecommendedSections,
	}

	for _, opt := range opts {
		if err := opt(w); err != nil {
			return nil, err
		}
	}

	if w.fsys == nil {
		if root == "" {
			return nil, errors.New("root directory is required")
		}
		w.fsys = os.DirFS(root)
	}

	return w, nil
}

// Root returns the directory the walker was created for
func (w *Walker) Root() string {
	return w.root
}

// Discover returns the slash-separated paths, relative to the root, of every
// SKILL.md outside the excluded directories, in lexical order.
func (w *Walker) Discover(ctx context.Context) ([]string, error) {
	matches, err := doublestar.Glob(w.fsys, "**/"+SkillFileName, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Wrap(err, "failed to search for skill files")
	}

	files := make([]string, 0, len(matches))
	for _, match := range matches {
		if w.isExcluded(match) {
			logger.G(ctx).WithField("file", match).Debug("skipping skill file in excluded directory")
			continue
		}
		files = append(files, match)
	}
	sort.Strings(files)

	return files, nil
}

func (w *Walker) isExcluded(path string) bool {
	segments := strings.Split(path, "/")
	for _, dir := range segments[:len(segments)-1] {
		if slices.Contains(w.excludedDirs, dir) {
			return true
		}
	}
	return false
}

// ValidateFile reads and validates one discovered file. Read failures are
// reported as the file's only error.
func (w *Walker) ValidateFile(ctx context.Context, path string) FileResult {
	log := logger.G(ctx).WithField("file", path)

	data, err := fs.ReadFile(w.fsys, path)
	if err != nil {
		log.WithError(err).Debug("failed to read skill file")
		return FileResult{Path: path, Errors: []string{"error reading file: " + err.Error()}}
	}
	if !utf8.Valid(data) {
		return FileResult{Path: path, Errors: []string{"error reading file: content is not valid UTF-8"}}
	}

	result := w.ValidateContent(path, string(data))
	log.WithField("errors", len(result.Errors)).WithField("warnings", len(result.Warnings)).Debug("validated skill file")
	return result
}

// ValidateContent runs the extractor, the metadata rules and the section
// check on content. A frontmatter failure short-circuits the other checks.
func (w *Walker) ValidateContent(path, content string) FileResult {
	result := FileResult{Path: path}

	block, err := frontmatter.Extract(content)
	if err != nil {
		result.Errors = []string{err.Error()}
		return result
	}

	errs, warnings := ValidateMetadata(block)
	result.Errors = append(result.Errors, errs...)
	result.Warnings = append(result.Warnings, warnings...)

	if w.strict {
		result.Warnings = append(result.Warnings, CheckHeadings(content, w.sections)...)
	} else {
		result.Warnings = append(result.Warnings, CheckSections(content, w.sections)...)
	}

	return result
}

// Run validates every discovered file, in discovery order
func (w *Walker) Run(ctx context.Context) (*Report, error) {
	files, err := w.Discover(ctx)
	if err != nil {
		return nil, err
	}

	report := &Report{Root: w.root, Files: make([]FileResult, 0, len(files))}
	for _, file := range files {
		report.Files = append(report.Files, w.ValidateFile(ctx, file))
	}

	return report, nil
}

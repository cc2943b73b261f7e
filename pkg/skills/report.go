package skills

import (
	"context"
	"path/filepath"

	"github.com/jingkaihe/skillcheck/pkg/logger"
	"github.com/jingkaihe/skillcheck/pkg/presenter"
)

// FileResult holds the findings for one skill file
type FileResult struct {
	Path     string
	Errors   []string
	Warnings []string
}

// Valid reports whether the file has no blocking errors
func (r FileResult) Valid() bool {
	return len(r.Errors) == 0
}

// Report aggregates the results of one walk
type Report struct {
	Root  string
	Files []FileResult
}

// Failed returns the number of files with at least one error
func (r *Report) Failed() int {
	failed := 0
	for _, f := range r.Files {
		if !f.Valid() {
			failed++
		}
	}
	return failed
}

// ExitCode is 1 when any file has an error and 0 otherwise, including when
// no files were found
func (r *Report) ExitCode() int {
	if r.Failed() > 0 {
		return 1
	}
	return 0
}

// Print writes the per-file results and the summary in discovery order
func (r *Report) Print(p presenter.Presenter) {
	p.Info("🔍 Validating skill files...")

	if len(r.Files) == 0 {
		p.Success("No SKILL.md files found to validate")
		return
	}

	for _, f := range r.Files {
		p.Info("")
		p.Info("Checking: " + filepath.FromSlash(f.Path))

		for _, e := range f.Errors {
			p.Failure("ERROR: " + e)
		}
		for _, w := range f.Warnings {
			p.Warning("WARNING: " + w)
		}

		switch {
		case !f.Valid():
		case len(f.Warnings) == 0:
			p.Success("Valid")
		default:
			p.Success("Valid (with warnings)")
		}
	}

	p.Info("")
	if r.ExitCode() != 0 {
		p.Failure("Skill validation failed. Please fix the errors above.")
		return
	}
	p.Success("All skill files validated successfully!")
}

// Run walks root, prints the report through p and returns the process exit code
func Run(ctx context.Context, root string, p presenter.Presenter, opts ...Option) int {
	walker, err := NewWalker(root, opts...)
	if err != nil {
		p.Error(err, "Failed to configure skill validation")
		return 1
	}

	report, err := walker.Run(ctx)
	if err != nil {
		p.Error(err, "Failed to validate skill files")
		return 1
	}

	report.Print(p)

	logger.G(ctx).WithField("root", root).
		WithField("files", len(report.Files)).
		WithField("failed", report.Failed()).
		Debug("skill validation finished")

	return report.ExitCode()
}

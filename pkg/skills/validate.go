// Package skills validates SKILL.md files: the frontmatter metadata, the
// recommended body sections, and the repository-wide walk that aggregates
// both into a pass/fail report.
package skills

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jingkaihe/skillcheck/pkg/frontmatter"
)

const (
	// SkillFileName is the file the walker looks for
	SkillFileName = "SKILL.md"

	// MinDescriptionLength is the recommended minimum description length in characters
	MinDescriptionLength = 50

	// ProactiveKeyword marks a description as eligible for auto-activation
	ProactiveKeyword = "PROACTIVELY"
)

// RecommendedSections are the body headings every skill should carry, in the
// order they are reported.
var RecommendedSections = []string{
	"## Purpose",
	"## IMPORTANT: Proactive Usage",
	"## When to Use",
	"## How to Use",
	"## Best Practices",
	"## Examples",
}

// ValidateMetadata applies the required-field rules to a parsed frontmatter
// block. Every rule runs; errors make the document invalid, warnings never do.
func ValidateMetadata(block *frontmatter.Block) (errs []string, warnings []string) {
	if name, ok := block.Get("name"); !ok {
		errs = append(errs, "missing required field: name")
	} else if s, isString := name.(string); !isString || strings.TrimSpace(s) == "" {
		errs = append(errs, "field name must be a non-empty string")
	}

	description, ok := block.Get("description")
	if !ok {
		errs = append(errs, "missing required field: description")
		return errs, warnings
	}

	desc, isString := description.(string)
	if !isString {
		errs = append(errs, "field description must be a string")
		return errs, warnings
	}

	if n := utf8.RuneCountInString(desc); n < MinDescriptionLength {
		warnings = append(warnings, fmt.Sprintf("description is short (%d chars, recommend %d+)", n, MinDescriptionLength))
	}
	if !hasProactiveKeyword(desc) {
		warnings = append(warnings, fmt.Sprintf("description should include '%s' for auto-activation", ProactiveKeyword))
	}

	return errs, warnings
}

// CheckSections reports every required marker that does not occur anywhere in
// content. The test is a plain substring match, so a marker inside a code
// fence or a quote counts as present.
func CheckSections(content string, required []string) []string {
	var warnings []string
	for _, section := range required {
		if !strings.Contains(content, section) {
			warnings = append(warnings, missingSection(section))
		}
	}
	return warnings
}

func missingSection(section string) string {
	return fmt.Sprintf("missing recommended section: '%s'", section)
}

// only the upper and lower case spellings count, "Proactively" does not
func hasProactiveKeyword(desc string) bool {
	return strings.Contains(desc, ProactiveKeyword) || strings.Contains(desc, strings.ToLower(ProactiveKeyword))
}

package review

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/jingkaihe/skillcheck/pkg/frontmatter"
	"github.com/jingkaihe/skillcheck/pkg/skills"
)

const inlineValidMessage = "YAML frontmatter is valid"

// ValidateSkillInline is the check embedded in review prompts. Unlike the
// pre-commit validator it stops at the first problem and treats a short or
// non-proactive description as a failure.
func ValidateSkillInline(content string) (bool, string) {
	if !strings.HasPrefix(content, frontmatter.Delimiter) {
		return false, "Missing YAML frontmatter"
	}

	parts := strings.SplitN(content, frontmatter.Delimiter, 3)
	if len(parts) < 3 {
		return false, "Invalid YAML frontmatter format"
	}

	var header any
	if err := yaml.Unmarshal([]byte(parts[1]), &header); err != nil {
		return false, fmt.Sprintf("YAML parsing error: %v", err)
	}

	metadata, ok := header.(map[string]any)
	if !ok {
		return false, "Validation error: frontmatter is not a mapping"
	}

	if _, ok := metadata["name"]; !ok {
		return false, "Missing 'name' field in YAML frontmatter"
	}
	raw, ok := metadata["description"]
	if !ok {
		return false, "Missing 'description' field in YAML frontmatter"
	}

	description, ok := raw.(string)
	if !ok {
		return false, "Validation error: description must be a string"
	}

	if n := utf8.RuneCountInString(description); n < skills.MinDescriptionLength {
		return false, fmt.Sprintf("Description too short (%d chars, minimum %d)", n, skills.MinDescriptionLength)
	}

	if !strings.Contains(description, skills.ProactiveKeyword) && !strings.Contains(description, strings.ToLower(skills.ProactiveKeyword)) {
		return false, "Description should include 'PROACTIVELY' to indicate auto-activation"
	}

	return true, inlineValidMessage
}

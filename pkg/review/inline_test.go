package review

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSkillInline(t *testing.T) {
	long := strings.Repeat("x", 50)

	tests := []struct {
		name    string
		content string
		valid   bool
		message string
	}{
		{"valid", validSkill, true, "YAML frontmatter is valid"},
		{"no frontmatter", "# Title", false, "Missing YAML frontmatter"},
		{"unterminated", "---\nname: x\n", false, "Invalid YAML frontmatter format"},
		{"empty header", "---\n---\nbody", false, "Validation error: frontmatter is not a mapping"},
		{"missing name", "---\ndescription: " + long + " PROACTIVELY\n---\n", false, "Missing 'name' field in YAML frontmatter"},
		{"missing description", "---\nname: x\n---\n", false, "Missing 'description' field in YAML frontmatter"},
		{"description not a string", "---\nname: x\ndescription: 12\n---\n", false, "Validation error: description must be a string"},
		{"short description", "---\nname: x\ndescription: Use PROACTIVELY\n---\n", false, "Description too short (15 chars, minimum 50)"},
		{"no keyword", "---\nname: x\ndescription: " + long + "\n---\n", false, "Description should include 'PROACTIVELY' to indicate auto-activation"},
		{"lower case keyword", "---\nname: x\ndescription: " + long + " proactively\n---\n", true, "YAML frontmatter is valid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			valid, message := ValidateSkillInline(tt.content)
			assert.Equal(t, tt.valid, valid)
			assert.Equal(t, tt.message, message)
		})
	}
}

func TestValidateSkillInlineParseError(t *testing.T) {
	valid, message := ValidateSkillInline("---\nname: [unclosed\n---\n")
	assert.False(t, valid)
	assert.True(t, strings.HasPrefix(message, "YAML parsing error: "), message)
}

package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckHeadings(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		required []string
		expected []string
	}{
		{
			name:     "all headings present",
			content:  fullSkill,
			required: RecommendedSections,
		},
		{
			name:     "marker in code fence does not count",
			content:  "# Title\n\n```md\n## Purpose\n```\n",
			required: []string{"## Purpose"},
			expected: []string{"missing recommended section: '## Purpose'"},
		},
		{
			name:     "marker in blockquote does not count",
			content:  "> ## Purpose\n",
			required: []string{"## Purpose"},
			expected: []string{"missing recommended section: '## Purpose'"},
		},
		{
			name:     "marker in prose does not count",
			content:  "Add a `## Purpose` section.\n",
			required: []string{"## Purpose"},
			expected: []string{"missing recommended section: '## Purpose'"},
		},
		{
			name:     "level must match",
			content:  "### Examples\n",
			required: []string{"## Examples"},
			expected: []string{"missing recommended section: '## Examples'"},
		},
		{
			name:     "heading text may continue",
			content:  "## Examples and Recipes\n",
			required: []string{"## Examples"},
		},
		{
			name:     "emphasis inside heading",
			content:  "## **IMPORTANT**: Proactive Usage\n",
			required: []string{"## IMPORTANT: Proactive Usage"},
		},
		{
			name:     "setext heading",
			content:  "When to Use\n-----------\n",
			required: []string{"## When to Use"},
		},
		{
			name:     "frontmatter is not a heading",
			content:  "---\nname: Purpose\n---\nbody\n",
			required: []string{"## name: Purpose"},
			expected: []string{"missing recommended section: '## name: Purpose'"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CheckHeadings(tt.content, tt.required))
		})
	}
}

func TestParseMarker(t *testing.T) {
	assert.Equal(t, heading{level: 2, text: "Purpose"}, parseMarker("## Purpose"))
	assert.Equal(t, heading{level: 0, text: "Purpose"}, parseMarker("Purpose"))
}

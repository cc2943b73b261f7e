package review

import (
	"bytes"
	"embed"
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/jingkaihe/skillcheck/pkg/skills"
)

// Template files
//
//go:embed templates/*
var TemplateFS embed.FS

const (
	// PromptTemplate is the entry point template of the review prompt
	PromptTemplate = "review_prompt.md.tmpl"
)

var promptTemplates = template.Must(template.ParseFS(TemplateFS, "templates/*.tmpl"))

// Request describes one pull request to review
type Request struct {
	PRNumber     string
	Repo         string
	ChangedFiles []string
	// Contents maps a changed path to its text. A missing key means the file
	// was not available.
	Contents map[string]string
}

// Prompt renders the review prompt for the request
func (r Request) Prompt() (string, error) {
	return BuildPrompt(r.ChangedFiles, r.Contents)
}

type promptFile struct {
	Path            string
	Content         string
	Available       bool
	ValidationError string
}

type promptData struct {
	Files []promptFile
}

// BuildPrompt renders the guidelines, one section per changed file in the
// given order and the review instructions. SKILL.md files that fail the
// inline check get a validation banner above their content. The output only
// depends on the arguments.
func BuildPrompt(changedFiles []string, contents map[string]string) (string, error) {
	data := promptData{Files: make([]promptFile, 0, len(changedFiles))}

	for _, path := range changedFiles {
		file := promptFile{Path: path}
		if content, ok := contents[path]; ok {
			file.Content = content
			file.Available = true
			if strings.HasSuffix(path, skills.SkillFileName) {
				if valid, message := ValidateSkillInline(content); !valid {
					file.ValidationError = message
				}
			}
		}
		data.Files = append(data.Files, file)
	}

	var buf bytes.Buffer
	if err := promptTemplates.ExecuteTemplate(&buf, PromptTemplate, data); err != nil {
		return "", errors.Wrap(err, "failed to execute prompt template")
	}

	return strings.TrimRight(buf.String(), "\n") + "\n", nil
}

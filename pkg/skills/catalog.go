package skills

import (
	"bytes"
	"context"
	"io/fs"
	"path"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"

	"github.com/jingkaihe/skillcheck/pkg/frontmatter"
	"github.com/jingkaihe/skillcheck/pkg/logger"
)

// Skill is a catalog entry for one discovered SKILL.md
type Skill struct {
	Name        string // name from frontmatter
	Description string // description from frontmatter
	Path        string // slash-separated path relative to the walker root
	Directory   string // directory holding the SKILL.md
	Content     string // body without the frontmatter header
}

// Catalog loads the name and description of every discovered skill. Files
// whose metadata cannot be loaded are left out; the validator reports them.
func (w *Walker) Catalog(ctx context.Context) ([]*Skill, error) {
	files, err := w.Discover(ctx)
	if err != nil {
		return nil, err
	}

	catalog := make([]*Skill, 0, len(files))
	for _, file := range files {
		skill, err := w.loadSkill(file)
		if err != nil {
			logger.G(ctx).WithError(err).WithField("file", file).Debug("skipping skill")
			continue
		}
		catalog = append(catalog, skill)
	}

	return catalog, nil
}

func (w *Walker) loadSkill(file string) (*Skill, error) {
	content, err := fs.ReadFile(w.fsys, file)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read skill file")
	}

	md := goldmark.New(
		goldmark.WithExtensions(meta.Meta),
	)

	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := md.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, errors.Wrap(err, "failed to parse markdown")
	}

	metaData, err := meta.TryGet(pctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse frontmatter")
	}
	if metaData == nil {
		return nil, errors.New("missing frontmatter")
	}

	name, _ := metaData["name"].(string)
	description, _ := metaData["description"].(string)
	if name == "" {
		return nil, errors.New("skill name is required in frontmatter")
	}

	return &Skill{
		Name:        name,
		Description: description,
		Path:        file,
		Directory:   path.Dir(file),
		Content:     frontmatter.Body(string(content)),
	}, nil
}

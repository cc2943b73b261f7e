// Package frontmatter splits a markdown document into its YAML header and body
// and parses the header into an ordered key/value block.
package frontmatter

import (
	"slices"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Delimiter marks the start and the end of the frontmatter header
const Delimiter = "---"

// Block is the parsed frontmatter header. Keys keeps the order in which the
// fields were written.
type Block struct {
	Keys   []string
	Fields map[string]any
}

// Get returns the value stored under key and whether the key was present
func (b *Block) Get(key string) (any, bool) {
	if b == nil || b.Fields == nil {
		return nil, false
	}
	v, ok := b.Fields[key]
	return v, ok
}

// Len returns the number of top-level fields
func (b *Block) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Keys)
}

// FormatError reports a malformed frontmatter header
type FormatError struct {
	Reason string
	Cause  error
}

func (e *FormatError) Error() string {
	if e.Cause != nil {
		return e.Reason + ": " + e.Cause.Error()
	}
	return e.Reason
}

// Unwrap returns the underlying parser error, if any
func (e *FormatError) Unwrap() error {
	return e.Cause
}

// IsFormatError reports whether err is, or wraps, a *FormatError
func IsFormatError(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// Extract parses the frontmatter at the very start of content.
//
// The content is split on the delimiter into at most three parts, so a
// delimiter appearing inside a header value terminates the header early.
func Extract(content string) (*Block, error) {
	if !strings.HasPrefix(content, Delimiter) {
		return nil, &FormatError{Reason: "missing opening delimiter"}
	}

	parts := strings.SplitN(content, Delimiter, 3)
	if len(parts) < 3 {
		return nil, &FormatError{Reason: "missing closing delimiter"}
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(strings.TrimSpace(parts[1])), &doc); err != nil {
		return nil, &FormatError{Reason: "parse error", Cause: err}
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return nil, &FormatError{Reason: "frontmatter must be a mapping"}
	}

	fields := make(map[string]any, len(root.Content)/2)
	if err := root.Decode(&fields); err != nil {
		return nil, &FormatError{Reason: "parse error", Cause: err}
	}

	keys := make([]string, 0, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		key := root.Content[i].Value
		if _, ok := fields[key]; !ok {
			continue
		}
		if !slices.Contains(keys, key) {
			keys = append(keys, key)
		}
	}

	return &Block{Keys: keys, Fields: fields}, nil
}

// Body returns the text following the closing delimiter, or the whole content
// when there is no complete frontmatter header.
func Body(content string) string {
	if !strings.HasPrefix(content, Delimiter) {
		return content
	}
	parts := strings.SplitN(content, Delimiter, 3)
	if len(parts) < 3 {
		return content
	}
	return strings.TrimLeft(parts[2], "\r\n")
}

package mcpserver

import (
	"fmt"
	"os"

	"github.com/truespec/truespec/specdoc"
)

// specInput represents the two ways an OAS document can reach a tool
// call: inline content, or a path to a file readable on this host.
// Exactly one must be set.
type specInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to an OAS document on disk"`
	Content string `json:"content,omitempty" jsonschema:"Inline OAS document content (JSON or YAML)"`
}

func (s specInput) resolve() (specdoc.Doc, error) {
	count := 0
	if s.File != "" {
		count++
	}
	if s.Content != "" {
		count++
	}
	if count != 1 {
		return nil, fmt.Errorf("exactly one of file or content must be provided (got %d)", count)
	}

	if s.Content != "" {
		if len(s.Content) > cfg.MaxInlineSize {
			return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set TRUESPEC_MCP_MAX_INLINE_SIZE to increase",
				len(s.Content), cfg.MaxInlineSize)
		}
		doc, err := specdoc.Load(s.Content, specdoc.WithSourceName("content"))
		if err != nil {
			return nil, err
		}
		if doc == nil {
			return nil, fmt.Errorf("content did not decode to an OAS document")
		}
		return doc, nil
	}

	data, err := os.ReadFile(s.File)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.File, err)
	}
	doc, err := specdoc.Load(data, specdoc.WithSourceName(s.File))
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fmt.Errorf("%s did not decode to an OAS document", s.File)
	}
	return doc, nil
}

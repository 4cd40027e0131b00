// Package adf converts Atlassian Document Format (ADF) rich text into
// plain text and builds the minimal ADF documents the tracker expects
// for comment bodies.
//
// A document is modeled as a tagged tree: Text leaves carry literal text,
// every other node is a Container with an ordered list of children.
// Parse validates raw JSON into that shape; Extract walks it.
package adf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ctreminiom/go-atlassian/v2/pkg/infra/models"
)

// TypeText is the node type of an ADF text leaf.
const TypeText = "text"

// Node is a parsed ADF node. A nil Node means the value was absent or null.
type Node interface {
	isNode()
}

// Text is a leaf node carrying literal text.
type Text struct {
	Value string
}

// Container is any non-text node. Unknown node types are containers too.
type Container struct {
	Type     string
	Children []Node
}

func (Text) isNode()      {}
func (Container) isNode() {}

// Parse validates raw JSON into a Node tree.
//
//   - null or empty input yields a nil Node
//   - a JSON string yields a Text leaf with that string
//   - an array yields an untyped Container of its elements
//   - an object with type "text" yields a Text leaf ("" when text is missing)
//   - any other object yields a Container of its "content" entries
//   - numbers and booleans carry no text and yield nil
//
// A "content" field that is not an array is treated as empty.
func Parse(raw json.RawMessage) (Node, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, fmt.Errorf("decoding text value: %w", err)
		}
		return Text{Value: s}, nil

	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, fmt.Errorf("decoding node list: %w", err)
		}
		children, err := parseChildren(items)
		if err != nil {
			return nil, err
		}
		return Container{Children: children}, nil

	case '{':
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("decoding node: %w", err)
		}
		var typ string
		_ = json.Unmarshal(fields["type"], &typ)

		if typ == TypeText {
			var text string
			_ = json.Unmarshal(fields["text"], &text)
			return Text{Value: text}, nil
		}

		// Malformed content (object, string, number) is ignored rather than
		// failing the whole document.
		var items []json.RawMessage
		_ = json.Unmarshal(fields["content"], &items)
		children, err := parseChildren(items)
		if err != nil {
			return nil, err
		}
		return Container{Type: typ, Children: children}, nil

	default:
		if !json.Valid(raw) {
			return nil, fmt.Errorf("invalid ADF JSON")
		}
		return nil, nil
	}
}

func parseChildren(items []json.RawMessage) ([]Node, error) {
	if len(items) == 0 {
		return nil, nil
	}
	children := make([]Node, 0, len(items))
	for i, item := range items {
		child, err := Parse(item)
		if err != nil {
			return nil, fmt.Errorf("content[%d]: %w", i, err)
		}
		children = append(children, child)
	}
	return children, nil
}

// Extract flattens a node into plain text. Children of a container are
// joined with a single space and the result is trimmed at both ends.
func Extract(n Node) string {
	switch v := n.(type) {
	case nil:
		return ""
	case Text:
		return v.Value
	case Container:
		parts := make([]string, len(v.Children))
		for i, child := range v.Children {
			parts[i] = Extract(child)
		}
		return strings.TrimSpace(strings.Join(parts, " "))
	default:
		return ""
	}
}

// ExtractRaw parses and flattens raw ADF JSON. Malformed input yields "".
func ExtractRaw(raw json.RawMessage) string {
	n, err := Parse(raw)
	if err != nil {
		return ""
	}
	return Extract(n)
}

// NewParagraphDoc wraps text as a document holding exactly one paragraph
// with exactly one text run. The text is passed through untouched.
func NewParagraphDoc(text string) *models.CommentNodeScheme {
	return &models.CommentNodeScheme{
		Version: 1,
		Type:    "doc",
		Content: []*models.CommentNodeScheme{
			{
				Type: "paragraph",
				Content: []*models.CommentNodeScheme{
					{Type: TypeText, Text: text},
				},
			},
		},
	}
}

// NewCommentPayload builds the request body for the comment endpoint.
func NewCommentPayload(text string) *models.CommentPayloadScheme {
	return &models.CommentPayloadScheme{Body: NewParagraphDoc(text)}
}

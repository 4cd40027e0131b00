package adf

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Parse ---

func TestParse_Shapes(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Node
	}{
		{"null", `null`, nil},
		{"empty", ``, nil},
		{"plain string", `"hello"`, Text{Value: "hello"}},
		{"text leaf", `{"type":"text","text":"hi"}`, Text{Value: "hi"}},
		{"text leaf without text", `{"type":"text"}`, Text{Value: ""}},
		{"number", `42`, nil},
		{"bool", `true`, nil},
		{
			"unknown type without content",
			`{"type":"mention","attrs":{"id":"1"}}`,
			Container{Type: "mention"},
		},
		{
			"content not an array",
			`{"type":"paragraph","content":{"type":"text","text":"x"}}`,
			Container{Type: "paragraph"},
		},
		{
			"array",
			`[{"type":"text","text":"a"},null]`,
			Container{Children: []Node{Text{Value: "a"}, nil}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(json.RawMessage(tt.raw))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse_InvalidJSON(t *testing.T) {
	_, err := Parse(json.RawMessage(`{"type":`))
	assert.Error(t, err)

	_, err = Parse(json.RawMessage(`{"type":"doc","content":[{"type":"text","text":"a"}, {]}`))
	assert.Error(t, err)
}

// --- Extract ---

func TestExtract_Examples(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"null", `null`, ""},
		{"text", `{"type":"text","text":"hi"}`, "hi"},
		{
			"doc with two runs",
			`{"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"a"},{"type":"text","text":"b"}]}]}`,
			"a b",
		},
		{
			"two paragraphs",
			`{"type":"doc","version":1,"content":[
				{"type":"paragraph","content":[{"type":"text","text":"first"}]},
				{"type":"paragraph","content":[{"type":"text","text":"second"}]}
			]}`,
			"first second",
		},
		{
			"unknown node recursed",
			`{"type":"panel","content":[{"type":"bulletList","content":[{"type":"listItem","content":[{"type":"text","text":"item"}]}]}]}`,
			"item",
		},
		{
			"outer whitespace trimmed",
			`{"type":"doc","content":[{"type":"text","text":"  padded  "}]}`,
			"padded",
		},
		{
			// Inner empty strings still contribute a separator, only the ends are trimmed.
			"empty child keeps separator",
			`{"type":"doc","content":[{"type":"text","text":"a"},{"type":"hardBreak"},{"type":"text","text":"b"}]}`,
			"a  b",
		},
		{"plain string returned unchanged", `"raw description"`, "raw description"},
		{"empty object", `{}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractRaw(json.RawMessage(tt.raw)))
		})
	}
}

func TestExtract_NilAndDirectNodes(t *testing.T) {
	assert.Equal(t, "", Extract(nil))
	assert.Equal(t, "hi", Extract(Text{Value: "hi"}))
	assert.Equal(t, "a b", Extract(Container{Type: "doc", Children: []Node{
		Container{Type: "paragraph", Children: []Node{Text{Value: "a"}, Text{Value: "b"}}},
	}}))
}

func TestExtractRaw_MalformedYieldsEmpty(t *testing.T) {
	assert.Equal(t, "", ExtractRaw(json.RawMessage(`{"type":"doc","content":[`)))
}

func TestExtract_DeepTreeTerminates(t *testing.T) {
	// Build a 500-level nested document around a single text leaf.
	var b strings.Builder
	for i := 0; i < 500; i++ {
		b.WriteString(`{"type":"blockquote","content":[`)
	}
	b.WriteString(`{"type":"text","text":"deep"}`)
	for i := 0; i < 500; i++ {
		b.WriteString(`]}`)
	}

	assert.Equal(t, "deep", ExtractRaw(json.RawMessage(b.String())))
}

// --- NewParagraphDoc ---

func TestNewCommentPayload_Shape(t *testing.T) {
	data, err := json.Marshal(NewCommentPayload("hello"))
	require.NoError(t, err)

	want := `{"body":{"version":1,"type":"doc","content":[{"type":"paragraph","content":[{"type":"text","text":"hello"}]}]}}`
	assert.JSONEq(t, want, string(data))
}

func TestNewParagraphDoc_PreservesSpecialCharacters(t *testing.T) {
	inputs := []string{
		`she said "ship it"`,
		"line one\nline two\n",
		`back\slash and {"json": true}`,
		"  leading and trailing  ",
		"emoji ✅ and tabs\t",
	}

	for _, in := range inputs {
		data, err := json.Marshal(NewParagraphDoc(in))
		require.NoError(t, err)

		var doc struct {
			Type    string `json:"type"`
			Version int    `json:"version"`
			Content []struct {
				Type    string `json:"type"`
				Content []struct {
					Type string `json:"type"`
					Text string `json:"text"`
				} `json:"content"`
			} `json:"content"`
		}
		require.NoError(t, json.Unmarshal(data, &doc))

		assert.Equal(t, "doc", doc.Type)
		assert.Equal(t, 1, doc.Version)
		require.Len(t, doc.Content, 1, "exactly one paragraph")
		assert.Equal(t, "paragraph", doc.Content[0].Type)
		require.Len(t, doc.Content[0].Content, 1, "exactly one text run")
		assert.Equal(t, "text", doc.Content[0].Content[0].Type)
		assert.Equal(t, in, doc.Content[0].Content[0].Text)
	}
}

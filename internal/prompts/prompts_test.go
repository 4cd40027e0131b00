package prompts

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func promptReq(args map[string]string) mcp.GetPromptRequest {
	req := mcp.GetPromptRequest{}
	req.Params.Arguments = args
	return req
}

func messageText(t *testing.T, result *mcp.GetPromptResult) string {
	t.Helper()
	require.Len(t, result.Messages, 1)
	tc, ok := result.Messages[0].Content.(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", result.Messages[0].Content)
	return tc.Text
}

func TestClosePrompt_Definition(t *testing.T) {
	def := NewClosePrompt().Definition()
	assert.Equal(t, "jira-close-issue", def.Name)
	require.Len(t, def.Arguments, 2)
	assert.Equal(t, "issue_key", def.Arguments[0].Name)
	assert.True(t, def.Arguments[0].Required)
	assert.False(t, def.Arguments[1].Required)
}

func TestClosePrompt_Handle(t *testing.T) {
	result, err := NewClosePrompt().Handle(context.Background(), promptReq(map[string]string{"issue_key": " DP-8 "}))
	require.NoError(t, err)

	text := messageText(t, result)
	assert.Equal(t, mcp.RoleUser, result.Messages[0].Role)
	assert.Contains(t, text, "jira_add_comment")
	assert.Contains(t, text, "`jira_close_issue` with issue_key DP-8")
	assert.Contains(t, text, "Write a one or two sentence comment")
}

func TestClosePrompt_Handle_WithSummary(t *testing.T) {
	result, err := NewClosePrompt().Handle(context.Background(), promptReq(map[string]string{
		"issue_key": "DP-8",
		"summary":   "Fixed the login redirect.",
	}))
	require.NoError(t, err)
	assert.Contains(t, messageText(t, result), "Fixed the login redirect.")
}

func TestClosePrompt_Handle_MissingKey(t *testing.T) {
	_, err := NewClosePrompt().Handle(context.Background(), promptReq(nil))
	assert.Error(t, err)
}

func TestReviewPrompt(t *testing.T) {
	p := NewReviewPrompt("OPS")
	assert.Contains(t, p.Definition().Description, "project OPS")

	result, err := p.Handle(context.Background(), promptReq(nil))
	require.NoError(t, err)
	assert.Contains(t, messageText(t, result), "`jira_get_issues` with no arguments")

	result, err = p.Handle(context.Background(), promptReq(map[string]string{"search": "login"}))
	require.NoError(t, err)
	assert.Contains(t, messageText(t, result), `search "login"`)
}

package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/jira-mcp/internal/adf"
	"github.com/HendryAvila/jira-mcp/internal/tracker"
)

// AddCommentTool handles the jira_add_comment MCP tool.
type AddCommentTool struct {
	api tracker.API
}

// NewAddCommentTool creates an AddCommentTool.
func NewAddCommentTool(api tracker.API) *AddCommentTool {
	return &AddCommentTool{api: api}
}

type commentResponse struct {
	ID json.RawMessage `json:"id"`
}

type commentResult struct {
	Success   bool            `json:"success"`
	CommentID json.RawMessage `json:"comment_id"`
	Issue     string          `json:"issue"`
}

// Definition returns the MCP tool definition for registration.
func (t *AddCommentTool) Definition() mcp.Tool {
	return mcp.NewTool("jira_add_comment",
		mcp.WithDescription(
			"Post a comment on a Jira issue. The comment is posted as a single "+
				"paragraph of plain text. Returns a confirmation with the comment ID.",
		),
		mcp.WithString("issue_key",
			mcp.Required(),
			mcp.Description("The Jira issue key, e.g. DP-8."),
		),
		mcp.WithString("comment",
			mcp.Required(),
			mcp.Description("The comment text to post on the issue."),
		),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
	)
}

// Handle processes the jira_add_comment tool call.
func (t *AddCommentTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	issueKey, errResult := requireIssueKey(req)
	if errResult != nil {
		return errResult, nil
	}

	// The comment is sent exactly as given, whitespace included.
	comment, err := req.RequireString("comment")
	if err != nil || comment == "" {
		return mcp.NewToolResultError("Error: comment is required"), nil
	}

	body, err := t.api.Post(ctx, tracker.IssuePath(issueKey, "comment"), adf.NewCommentPayload(comment))
	if err != nil {
		return trackerError(err), nil
	}

	var resp commentResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return trackerError(fmt.Errorf("decoding comment response: %w", err)), nil
	}

	return jsonResult(commentResult{
		Success:   true,
		CommentID: resp.ID,
		Issue:     issueKey,
	}), nil
}

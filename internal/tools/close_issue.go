package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/jira-mcp/internal/workflow"
)

// ClosedStatus is reported after a successful close, whatever the
// transition was called.
const ClosedStatus = "Done"

// CloseIssueTool handles the jira_close_issue MCP tool.
// Closing has no direct endpoint: the tool discovers the legal transitions
// and applies the first one named done, closed or resolved.
type CloseIssueTool struct {
	resolver *workflow.Resolver
}

// NewCloseIssueTool creates a CloseIssueTool.
func NewCloseIssueTool(resolver *workflow.Resolver) *CloseIssueTool {
	return &CloseIssueTool{resolver: resolver}
}

type closeResult struct {
	Success bool   `json:"success"`
	Issue   string `json:"issue"`
	Status  string `json:"status"`
}

type closeNotFound struct {
	Error string `json:"error"`
}

// Definition returns the MCP tool definition for registration.
func (t *CloseIssueTool) Definition() mcp.Tool {
	return mcp.NewTool("jira_close_issue",
		mcp.WithDescription(
			"Transition a Jira issue to Done status. Uses the first available "+
				"transition named Done, Closed or Resolved. If none is available, "+
				"returns the names of the transitions that are.",
		),
		mcp.WithString("issue_key",
			mcp.Required(),
			mcp.Description("The Jira issue key, e.g. DP-8."),
		),
		mcp.WithReadOnlyHintAnnotation(false),
		mcp.WithDestructiveHintAnnotation(false),
	)
}

// Handle processes the jira_close_issue tool call.
func (t *CloseIssueTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	issueKey, errResult := requireIssueKey(req)
	if errResult != nil {
		return errResult, nil
	}

	res, err := t.resolver.ResolveClosingTransition(ctx, issueKey)
	if err != nil {
		return trackerError(err), nil
	}
	if !res.Found {
		return jsonResult(closeNotFound{
			Error: fmt.Sprintf("No 'Done' transition found. Available: %s", quotedList(res.Available)),
		}), nil
	}

	if err := t.resolver.ApplyTransition(ctx, issueKey, res.Transition.ID); err != nil {
		return trackerError(err), nil
	}

	return jsonResult(closeResult{
		Success: true,
		Issue:   issueKey,
		Status:  ClosedStatus,
	}), nil
}

// Package prompts implements MCP prompt handlers for the issue tracker.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence of tool calls.
package prompts

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// ClosePrompt handles the jira-close-issue MCP prompt.
// It guides the AI to leave a closing note and then close the issue.
type ClosePrompt struct{}

// NewClosePrompt creates a ClosePrompt.
func NewClosePrompt() *ClosePrompt {
	return &ClosePrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *ClosePrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("jira-close-issue",
		mcp.WithPromptDescription(
			"Close a Jira issue: post a short closing comment explaining what was done, "+
				"then move the issue to Done.",
		),
		mcp.WithArgument("issue_key",
			mcp.ArgumentDescription("The Jira issue key, e.g. DP-8."),
			mcp.RequiredArgument(),
		),
		mcp.WithArgument("summary",
			mcp.ArgumentDescription("What was done. Used as the closing comment when given."),
		),
	)
}

// Handle processes the jira-close-issue prompt request.
func (p *ClosePrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	args := req.Params.Arguments
	issueKey := strings.TrimSpace(args["issue_key"])
	if issueKey == "" {
		return nil, errors.New("issue_key is required")
	}

	comment := "Write a one or two sentence comment summarizing what was done for the issue."
	if summary := strings.TrimSpace(args["summary"]); summary != "" {
		comment = fmt.Sprintf("Use this text as the comment, unchanged:\n\n%s", summary)
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Close %s", issueKey),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(fmt.Sprintf(
					"Please close Jira issue %[1]s.\n\n"+
						"1. Call `jira_add_comment` with issue_key %[1]s. %[2]s\n"+
						"2. Call `jira_close_issue` with issue_key %[1]s.\n"+
						"3. If it reports that no 'Done' transition was found, show me the available "+
						"transitions and ask which one to use instead. Do not retry on your own.\n"+
						"4. Confirm the final status in one line.",
					issueKey, comment,
				)),
			},
		},
	}, nil
}

package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

// ReviewPrompt handles the jira-review-issues MCP prompt.
// It instructs the AI to list the project's recent issues and summarize them.
type ReviewPrompt struct {
	projectKey string
}

// NewReviewPrompt creates a ReviewPrompt for the configured project.
func NewReviewPrompt(projectKey string) *ReviewPrompt {
	return &ReviewPrompt{projectKey: projectKey}
}

// Definition returns the MCP prompt definition for registration.
func (p *ReviewPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("jira-review-issues",
		mcp.WithPromptDescription(
			fmt.Sprintf("Review the most recently updated issues in project %s, ", p.projectKey)+
				"optionally narrowed by a search term.",
		),
		mcp.WithArgument("search",
			mcp.ArgumentDescription("Optional text to search for in issue names/descriptions."),
		),
	)
}

// Handle processes the jira-review-issues prompt request.
func (p *ReviewPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	call := "Please run `jira_get_issues` with no arguments."
	if search := strings.TrimSpace(req.Params.Arguments["search"]); search != "" {
		call = fmt.Sprintf("Please run `jira_get_issues` with search %q.", search)
	}

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Review %s issues", p.projectKey),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(
					call + "\n\n" +
						"Then:\n" +
						"1. Group the issues by theme in a short list, one line per issue with its key\n" +
						"2. Point out issues whose description is empty or unclear\n" +
						"3. Suggest which issues look finished and could be closed with `jira_close_issue`",
				),
			},
		},
	}, nil
}

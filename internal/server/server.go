// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it builds the tracker client and injects it
// into the tools, prompts and resources. No business logic lives here.
package server

import (
	"errors"

	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/HendryAvila/jira-mcp/internal/config"
	"github.com/HendryAvila/jira-mcp/internal/metrics"
	"github.com/HendryAvila/jira-mcp/internal/prompts"
	"github.com/HendryAvila/jira-mcp/internal/resources"
	"github.com/HendryAvila/jira-mcp/internal/tools"
	"github.com/HendryAvila/jira-mcp/internal/tracker"
	"github.com/HendryAvila/jira-mcp/internal/workflow"
)

// Name is the MCP server name reported to clients.
const Name = "jira_mcp"

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts,
// and resources registered. m may be nil to disable metrics.
func New(cfg *config.Config, logger *zap.Logger, m *metrics.Metrics) (*server.MCPServer, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	// --- Create shared dependencies ---

	client := tracker.NewClient(cfg,
		tracker.WithLogger(logger.Named("tracker")),
		tracker.WithMetrics(m),
		tracker.WithUserAgent("jira-mcp/"+Version),
	)
	resolver := workflow.NewResolver(client)

	// --- Create the MCP server ---

	s := server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions(cfg.ProjectKey)),
		server.WithToolHandlerMiddleware(toolMiddleware(logger.Named("tools"), m)),
	)

	// --- Register tools ---

	getIssues := tools.NewGetIssuesTool(client, cfg.ProjectKey)
	s.AddTool(getIssues.Definition(), getIssues.Handle)

	addComment := tools.NewAddCommentTool(client)
	s.AddTool(addComment.Definition(), addComment.Handle)

	closeIssue := tools.NewCloseIssueTool(resolver)
	s.AddTool(closeIssue.Definition(), closeIssue.Handle)

	// --- Register prompts ---

	closePrompt := prompts.NewClosePrompt()
	s.AddPrompt(closePrompt.Definition(), closePrompt.Handle)

	reviewPrompt := prompts.NewReviewPrompt(cfg.ProjectKey)
	s.AddPrompt(reviewPrompt.Definition(), reviewPrompt.Handle)

	// --- Register resources ---

	resourceHandler := resources.NewHandler(resolver)
	s.AddResourceTemplate(resourceHandler.TransitionsTemplate(), resourceHandler.HandleTransitions)

	return s, nil
}

// serverInstructions returns the system instructions that tell the AI
// how to use the tracker tools.
func serverInstructions(projectKey string) string {
	return `You have access to a Jira issue tracker for project ` + projectKey + `.

## TOOLS

- jira_get_issues: list the 25 most recently updated issues in the project.
  Pass "search" to filter by text in names and descriptions.
- jira_add_comment: post a plain-text comment on an issue.
- jira_close_issue: move an issue to Done. It uses the first available
  transition named Done, Closed or Resolved.

## RULES

- Issue keys look like ` + projectKey + `-8. Use the key exactly as returned by jira_get_issues.
- Results are JSON. A result starting with "Error:" means the tracker call failed;
  report it to the user instead of retrying.
- If jira_close_issue answers with "No 'Done' transition found", the issue's workflow
  does not allow closing from its current state. Show the available transitions
  (also readable from the jira://issue/{issue_key}/transitions resource) and ask the user.
- Comment before closing when the user asks you to record what was done.`
}

// Package resources implements MCP resource handlers for the issue tracker.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (jira://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/jira-mcp/internal/tracker"
	"github.com/HendryAvila/jira-mcp/internal/workflow"
)

const (
	issuePrefix       = "jira://issue/"
	transitionsSuffix = "/transitions"

	// TransitionsURITemplate addresses the transitions currently legal for one issue.
	TransitionsURITemplate = issuePrefix + "{issue_key}" + transitionsSuffix
)

// Handler manages tracker resource endpoints.
type Handler struct {
	resolver *workflow.Resolver
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(resolver *workflow.Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// TransitionsTemplate returns the MCP resource template for issue transitions.
func (h *Handler) TransitionsTemplate() mcp.ResourceTemplate {
	return mcp.NewResourceTemplate(
		TransitionsURITemplate,
		"Issue Transitions",
		mcp.WithTemplateDescription("Workflow transitions currently available for a Jira issue, with their ids"),
		mcp.WithTemplateMIMEType("application/json"),
	)
}

// HandleTransitions returns the issue's transitions as JSON. Tracker
// failures are reported inside the resource text, like tool errors.
func (h *Handler) HandleTransitions(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI

	issueKey, err := IssueKeyFromURI(uri)
	if err != nil {
		return nil, err
	}

	transitions, err := h.resolver.Transitions(ctx, issueKey)
	if err != nil {
		return errorResource(uri, tracker.FormatError(err)), nil
	}
	if transitions == nil {
		transitions = []workflow.Transition{}
	}

	data, err := json.MarshalIndent(transitions, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling transitions: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

// IssueKeyFromURI extracts the issue key from jira://issue/<key>/transitions.
func IssueKeyFromURI(uri string) (string, error) {
	rest, ok := strings.CutPrefix(uri, issuePrefix)
	if !ok {
		return "", fmt.Errorf("unsupported resource URI %q", uri)
	}
	key, ok := strings.CutSuffix(rest, transitionsSuffix)
	if !ok || key == "" || strings.Contains(key, "/") {
		return "", fmt.Errorf("unsupported resource URI %q", uri)
	}
	return key, nil
}

// errorResource returns a resource carrying an error message.
func errorResource(uri, message string) []mcp.ResourceContents {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "text/plain",
			Text:     message,
		},
	}
}

package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/jira-mcp/internal/adf"
	"github.com/HendryAvila/jira-mcp/internal/tracker"
)

// Search parameters sent with every jira_get_issues call.
const (
	SearchMaxResults = 25
	SearchFields     = "summary,description"
)

// IssueSummary is one entry of the jira_get_issues result.
type IssueSummary struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type searchResponse struct {
	Issues []struct {
		Key    string `json:"key"`
		Fields struct {
			Summary     string          `json:"summary"`
			Description json.RawMessage `json:"description"`
		} `json:"fields"`
	} `json:"issues"`
}

// GetIssuesTool handles the jira_get_issues MCP tool.
// It lists the most recently updated issues of the configured project.
type GetIssuesTool struct {
	api        tracker.API
	projectKey string
}

// NewGetIssuesTool creates a GetIssuesTool scoped to projectKey.
func NewGetIssuesTool(api tracker.API, projectKey string) *GetIssuesTool {
	return &GetIssuesTool{api: api, projectKey: projectKey}
}

// Definition returns the MCP tool definition for registration.
func (t *GetIssuesTool) Definition() mcp.Tool {
	return mcp.NewTool("jira_get_issues",
		mcp.WithDescription(
			fmt.Sprintf("Get Jira issues from project %s, most recently updated first. ", t.projectKey)+
				"Optionally filter by search text. "+
				"Returns a JSON list of issues with key, name, and description.",
		),
		mcp.WithString("search",
			mcp.Description("Optional text to search for in issue names/descriptions."),
		),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)
}

// Handle processes the jira_get_issues tool call.
func (t *GetIssuesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	search := req.GetString("search", "")

	query := url.Values{}
	query.Set("jql", BuildSearchJQL(t.projectKey, search))
	query.Set("maxResults", strconv.Itoa(SearchMaxResults))
	query.Set("fields", SearchFields)

	body, err := t.api.Get(ctx, "/search/jql", query)
	if err != nil {
		return trackerError(err), nil
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return trackerError(fmt.Errorf("decoding search results: %w", err)), nil
	}

	issues := make([]IssueSummary, 0, len(resp.Issues))
	for _, i := range resp.Issues {
		issues = append(issues, IssueSummary{
			Key:         i.Key,
			Name:        i.Fields.Summary,
			Description: adf.ExtractRaw(i.Fields.Description),
		})
	}

	out, err := indentedJSON(issues)
	if err != nil {
		return trackerError(fmt.Errorf("encoding issues: %w", err)), nil
	}
	return mcp.NewToolResultText(out), nil
}

// BuildSearchJQL returns the query for the project's issues, newest update
// first. A blank search lists everything; otherwise the text is matched
// with the tracker's full-text operator. Quotes and backslashes in search
// are escaped so the text stays inside its string literal.
func BuildSearchJQL(projectKey, search string) string {
	if strings.TrimSpace(search) == "" {
		return fmt.Sprintf("project = %s ORDER BY updated DESC", projectKey)
	}
	return fmt.Sprintf(`project = %s AND text ~ "%s" ORDER BY updated DESC`, projectKey, escapeJQL(search))
}

var jqlEscaper = strings.NewReplacer(`\`, `\\`, `"`, `\"`)

func escapeJQL(s string) string {
	return jqlEscaper.Replace(s)
}

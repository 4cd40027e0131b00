// Package tools implements the MCP tool handlers for the issue tracker.
//
// Each tool is a struct that receives its dependencies through its
// constructor and exposes Definition for registration and Handle for
// execution. Handle never returns a Go error: tracker failures become
// error results whose text starts with "Error:".
package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/HendryAvila/jira-mcp/internal/tracker"
)

// jsonResult renders v as the text body of a successful result.
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Error: encoding result: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// indentedJSON encodes v with two-space indentation and without HTML
// escaping, so summaries keep characters like "<" and "&" readable.
func indentedJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// trackerError converts a tracker failure into an error result.
func trackerError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(tracker.FormatError(err))
}

// requireIssueKey reads and trims the issue_key argument.
func requireIssueKey(req mcp.CallToolRequest) (string, *mcp.CallToolResult) {
	key, err := req.RequireString("issue_key")
	if err != nil {
		return "", mcp.NewToolResultError("Error: issue_key is required")
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return "", mcp.NewToolResultError("Error: issue_key must not be empty")
	}
	return key, nil
}

// quotedList renders names as ['Open', 'In Progress'].
func quotedList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		n = strings.ReplaceAll(n, `\`, `\\`)
		n = strings.ReplaceAll(n, `'`, `\'`)
		quoted[i] = "'" + n + "'"
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
